package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/shared/constants"
	"skybook/pkg/cache"
	"skybook/pkg/logger"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Store persists sessions between requests
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	New() *Session
}

type store struct {
	cache cache.Service
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(c cache.Service, ttl time.Duration) Store {
	return &store{cache: c, ttl: ttl, now: time.Now}
}

func (s *store) New() *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: s.now()}
}

// Load reads a session. A session whose token has expired comes back
// anonymous and is re-saved that way. Tokens that do not decode are left
// for the backend to reject.
func (s *store) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	var sess Session
	if err := s.cache.Get(ctx, constants.SessionKey(id), &sess); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if sess.IsAuthenticated() {
		claims, err := DecodeToken(sess.Token)
		if err == nil && claims.Expired(s.now()) {
			logger.GetDefault().InfoContext(ctx, "Session identity expired", "session_id", id)
			sess.ClearIdentity()
			if err := s.Save(ctx, &sess); err != nil {
				return nil, err
			}
		}
	}
	return &sess, nil
}

func (s *store) Save(ctx context.Context, sess *Session) error {
	if err := s.cache.Set(ctx, constants.SessionKey(sess.ID), sess, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, constants.SessionKey(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
