package audit

import (
	"context"

	"skybook/internal/backend"
	"skybook/internal/session"
)

// AdminVerifier is any admin-only backend call. The ledger lives in the BFF,
// so reading it is gated on the backend accepting the caller's token for an
// admin resource rather than on the unverified role claim.
type AdminVerifier interface {
	ListUsers(ctx context.Context, token string) ([]backend.User, error)
}

type Service interface {
	List(ctx context.Context, sess *session.Session, q ListQuery) ([]AuditEntry, error)
}

type service struct {
	repo     Repository
	verifier AdminVerifier
}

func NewService(repo Repository, verifier AdminVerifier) Service {
	return &service{repo: repo, verifier: verifier}
}

func (s *service) List(ctx context.Context, sess *session.Session, q ListQuery) ([]AuditEntry, error) {
	if _, err := s.verifier.ListUsers(ctx, sess.Token); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, q)
}
