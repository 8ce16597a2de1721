package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"cat-registry/internal/ports/session"
)

const (
	DefaultCleanupInterval = 10 * time.Minute
)

// Store implementa session.Store sobre go-cache (TTL por entrada + janitor).
type Store struct {
	c   *gocache.Cache
	now func() time.Time
}

func New(defaultTTL, cleanupInterval time.Duration) *Store {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &Store{
		c:   gocache.New(defaultTTL, cleanupInterval),
		now: time.Now,
	}
}

func (s *Store) Put(ctx context.Context, sess session.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return errors.New("session token required")
	}

	ttl := gocache.DefaultExpiration
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return errors.New("session already expired")
		}
	}

	s.c.Set(sess.Token, sess, ttl)
	return nil
}

func (s *Store) Get(ctx context.Context, token string) (session.Session, error) {
	v, ok := s.c.Get(token)
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	sess, ok := v.(session.Session)
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	// El janitor corre cada cleanupInterval; go-cache ya filtra expirados en Get,
	// pero respetamos también nuestro reloj (tests).
	if !sess.ExpiresAt.IsZero() && !s.now().Before(sess.ExpiresAt) {
		s.c.Delete(token)
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	s.c.Delete(token)
	return nil
}

func (s *Store) DeleteByOwner(ctx context.Context, ownerID int64) (int, error) {
	n := 0
	for token, item := range s.c.Items() {
		sess, ok := item.Object.(session.Session)
		if !ok || sess.OwnerID != ownerID {
			continue
		}
		s.c.Delete(token)
		n++
	}
	return n, nil
}
