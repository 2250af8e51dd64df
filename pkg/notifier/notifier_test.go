package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAlert() IssueAlert {
	return IssueAlert{
		LocationName:  "City General Hospital",
		EquipmentName: "X-Ray Machine",
		EquipmentCode: "EQ-XR-001",
		Description:   "Display flickers and shuts down",
		ReportedBy:    "Nurse Joy",
		ReportedAt:    time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC),
	}
}

func TestFormatIssueAlert(t *testing.T) {
	text := FormatIssueAlert(sampleAlert())

	assert.Contains(t, text, "EQUIPMENT ISSUE REPORTED")
	assert.Contains(t, text, "City General Hospital")
	assert.Contains(t, text, "X-Ray Machine (EQ-XR-001)")
	assert.Contains(t, text, "Display flickers and shuts down")
	assert.Contains(t, text, "Nurse Joy")
}

func TestBuildWhatsAppLink(t *testing.T) {
	link := BuildWhatsAppLink("15550000000", sampleAlert())

	assert.True(t, strings.HasPrefix(link, "https://wa.me/15550000000?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "City General Hospital")
	assert.Contains(t, text, "EQ-XR-001")
}

func TestTelegramSendIssueAlert(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers the formatted alert", func(t *testing.T) {
		var gotPath string
		var gotPayload sendMessageRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			json.NewEncoder(w).Encode(telegramResponse{Ok: true})
		}))
		defer server.Close()

		notifier := &TelegramNotifier{
			botToken:   "test-token",
			chatID:     42,
			apiBase:    server.URL,
			httpClient: server.Client(),
		}

		require.NoError(t, notifier.SendIssueAlert(ctx, sampleAlert()))
		assert.Equal(t, "/bottest-token/sendMessage", gotPath)
		assert.Equal(t, int64(42), gotPayload.ChatID)
		assert.Equal(t, "Markdown", gotPayload.ParseMode)
		assert.Contains(t, gotPayload.Text, "EQ-XR-001")
	})

	t.Run("API rejection surfaces as an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(telegramResponse{Ok: false, Description: "chat not found"})
		}))
		defer server.Close()

		notifier := &TelegramNotifier{
			botToken:   "test-token",
			chatID:     42,
			apiBase:    server.URL,
			httpClient: server.Client(),
		}

		err := notifier.SendIssueAlert(ctx, sampleAlert())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chat not found")
	})

	t.Run("unconfigured notifier refuses to send", func(t *testing.T) {
		notifier := &TelegramNotifier{}
		err := notifier.SendIssueAlert(ctx, sampleAlert())
		assert.Error(t, err)
	})
}

func TestWhatsAppLinkUsesEngineerPhone(t *testing.T) {
	notifier := &TelegramNotifier{engineerPhone: "15550000000"}
	link := notifier.WhatsAppLink(sampleAlert())
	assert.True(t, strings.HasPrefix(link, "https://wa.me/15550000000?text="))
}
