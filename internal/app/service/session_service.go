package service

import (
	"context"
	"fmt"
	"time"

	"career_path/internal/common/security"
	"career_path/internal/domain/model"
)

// RevocationStore remembers revoked token ids until the tokens expire.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// SessionService binds identities to bearer tokens. Logout works by
// revoking the token's jti rather than by forgetting server-side state,
// so the browser-session state machine is: anonymous, then active after
// a successful login, then anonymous again after logout or when the
// identity can no longer be resolved.
type SessionService struct {
	revocations RevocationStore
}

func NewSessionService(revocations RevocationStore) *SessionService {
	return &SessionService{revocations: revocations}
}

func (s *SessionService) Issue(user *model.User) (string, error) {
	return security.GenerateToken(user.ID)
}

func (s *SessionService) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := s.revocations.Revoke(ctx, jti, time.Until(expiresAt)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *SessionService) Revoked(ctx context.Context, jti string) (bool, error) {
	return s.revocations.IsRevoked(ctx, jti)
}
