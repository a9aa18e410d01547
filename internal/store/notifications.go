// internal/store/notifications.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/google/uuid"
)

// ==========================
// Notification Store
// ==========================

// NotificationStore records delivery attempts. Like the audit log,
// writes are best-effort and never fail the calling operation.
type NotificationStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewNotificationStore(db *sql.DB, log logger.Logger) *NotificationStore {
	return &NotificationStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "notifications"}),
	}
}

// Record persists one notification attempt.
func (s *NotificationStore) Record(ctx context.Context, n *models.Notification) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	payloadJSON, err := json.Marshal(n.Payload)
	if err != nil {
		s.logger.Warn("failed to marshal notification payload", map[string]interface{}{
			"type":  n.Type,
			"error": err.Error(),
		})
		payloadJSON = []byte("{}")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, recipient_id, recipient_type, type, channel, status, payload,
			sent_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.RecipientID, n.RecipientType, n.Type, n.Channel, n.Status,
		payloadJSON, nullTime(n.SentAt), n.CreatedAt,
	)
	if err != nil {
		s.logger.Warn("notification record insert failed", map[string]interface{}{
			"type":        n.Type,
			"recipientId": n.RecipientID,
			"error":       err.Error(),
		})
	}
}
