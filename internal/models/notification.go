// internal/models/notification.go
package models

import "time"

type Notification struct {
	ID            string                 `json:"id"`
	RecipientID   string                 `json:"recipientId"`
	RecipientType string                 `json:"recipientType"` // "athlete", "guardian", or "brand"
	Type          string                 `json:"type"`          // "score_ready", "score_overridden", "fmv_updated"
	Channel       string                 `json:"channel"`       // "email", "sms"
	Status        string                 `json:"status"`        // "sent", "failed", "disabled"
	Payload       map[string]interface{} `json:"payload"`
	SentAt        time.Time              `json:"sentAt,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}
