package notifier

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// IssueAlert is the payload for an outbound engineer notification.
type IssueAlert struct {
	LocationName  string
	EquipmentName string
	EquipmentCode string
	Description   string
	ReportedBy    string
	ReportedAt    time.Time
}

// ServiceInterface sends issue alerts to the on-call service engineer.
// Delivery is fire-and-forget: no delivery status is tracked.
type ServiceInterface interface {
	SendIssueAlert(ctx context.Context, alert IssueAlert) error
	WhatsAppLink(alert IssueAlert) string
}

// FormatIssueAlert renders the human-readable notification text.
func FormatIssueAlert(alert IssueAlert) string {
	return fmt.Sprintf(`🚨 *EQUIPMENT ISSUE REPORTED*

📍 *Location:* %s
🔧 *Equipment:* %s (%s)
⚠️ *Issue:* %s
👤 *Reported By:* %s
🕐 *Time:* %s

Please attend to this issue at the earliest.

- Hospital Maintenance System`,
		alert.LocationName,
		alert.EquipmentName,
		alert.EquipmentCode,
		alert.Description,
		alert.ReportedBy,
		alert.ReportedAt.Local().Format("2006-01-02 15:04:05"),
	)
}

// BuildWhatsAppLink builds a wa.me deep link carrying the alert text.
func BuildWhatsAppLink(phoneNumber string, alert IssueAlert) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phoneNumber, url.QueryEscape(FormatIssueAlert(alert)))
}
