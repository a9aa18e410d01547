// internal/common/auth/session.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chatnil/internal/common/database"
	"chatnil/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// Role values carried on sessions.
const (
	RoleAthlete           = "athlete"
	RoleGuardian          = "guardian"
	RoleBrand             = "brand"
	RoleComplianceOfficer = "compliance_officer"
	RoleAdmin             = "admin"
)

// Session is the authenticated principal attached to a request.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	AthleteID string    `json:"athleteId,omitempty"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsOfficer reports whether the session may perform compliance overrides.
func (s *Session) IsOfficer(officerRoles []string) bool {
	for _, role := range officerRoles {
		if s.Role == role {
			return true
		}
	}
	return false
}

// SessionStore validates bearer tokens against Redis-backed sessions.
type SessionStore struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewSessionStore(redis *database.RedisClient, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: redis, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Validate resolves a bearer token to its session. Expired or unknown
// tokens return an authentication error.
func (s *SessionStore) Validate(ctx context.Context, authHeader string) (*Session, error) {
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return nil, errors.NewUnauthenticatedError("missing bearer token")
	}

	raw, err := s.redis.Get(ctx, sessionKey(token))
	if err == redis.Nil {
		return nil, errors.NewUnauthenticatedError("unknown or expired session token")
	}
	if err != nil {
		return nil, errors.NewExternalServiceError("redis", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, errors.NewUnauthenticatedError("malformed session record")
	}

	if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(time.Now()) {
		return nil, errors.NewUnauthenticatedError("session expired")
	}

	session.Token = token
	return &session, nil
}

// Create stores a session under its token with the store TTL.
func (s *SessionStore) Create(ctx context.Context, session *Session) error {
	if session.Token == "" {
		return fmt.Errorf("session token is required")
	}
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = time.Now().Add(s.ttl)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.redis.Set(ctx, sessionKey(session.Token), payload, s.ttl)
}

// Revoke deletes a session token.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	return s.redis.Del(ctx, sessionKey(token))
}
