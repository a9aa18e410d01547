// internal/store/audit.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"chatnil/internal/common/logger"

	"github.com/google/uuid"
)

// ==========================
// Audit Log Store
// ==========================

// AuditStore appends to the compliance audit log. Writes are
// best-effort: a failed insert is logged and never fails the calling
// operation.
type AuditStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAuditStore(db *sql.DB, log logger.Logger) *AuditStore {
	return &AuditStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "audit"}),
	}
}

// Record appends one audit entry.
func (s *AuditStore) Record(ctx context.Context, actorID, action, entityType, entityID string, detail map[string]interface{}) {
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		s.logger.Warn("failed to marshal audit detail", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
		detailJSON = []byte("{}")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, actor_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New().String(), actorID, action, entityType, entityID, detailJSON,
		time.Now().UTC(),
	)
	if err != nil {
		s.logger.Warn("audit log insert failed", map[string]interface{}{
			"action":   action,
			"entityId": entityID,
			"error":    err.Error(),
		})
	}
}
