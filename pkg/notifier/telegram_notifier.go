package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appconfig "hospital-maintenance/pkg/config"
)

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type telegramResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

// TelegramNotifier delivers issue alerts through the Telegram Bot API and
// exposes the wa.me deep link for the UI to hand off to WhatsApp.
type TelegramNotifier struct {
	botToken      string
	chatID        int64
	engineerPhone string
	apiBase       string
	httpClient    *http.Client
}

func NewTelegramNotifier(cfg appconfig.NotifierConfig) ServiceInterface {
	return &TelegramNotifier{
		botToken:      cfg.TelegramBotToken,
		chatID:        cfg.TelegramChatID,
		engineerPhone: cfg.EngineerPhone,
		apiBase:       "https://api.telegram.org",
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *TelegramNotifier) SendIssueAlert(ctx context.Context, alert IssueAlert) error {
	if s.botToken == "" || s.chatID == 0 {
		return fmt.Errorf("telegram notifier is not configured")
	}

	payload := sendMessageRequest{
		ChatID:    s.chatID,
		Text:      FormatIssueAlert(alert),
		ParseMode: "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var tgResp telegramResponse
	if err := json.Unmarshal(respBody, &tgResp); err != nil {
		return fmt.Errorf("telegram response decode: %w", err)
	}
	if !tgResp.Ok {
		return fmt.Errorf("telegram API error: %s", tgResp.Description)
	}
	return nil
}

func (s *TelegramNotifier) WhatsAppLink(alert IssueAlert) string {
	return BuildWhatsAppLink(s.engineerPhone, alert)
}
