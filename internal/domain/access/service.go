package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cat-registry/internal/domain/owners"
	"cat-registry/internal/ports/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authenticator es lo que necesitamos de owners para el login.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (owners.Owner, error)
}

type Service struct {
	owners Authenticator
	store  session.Store
	ttl    time.Duration
	now    func() time.Time
}

func NewService(ownersSvc Authenticator, store session.Store, ttl time.Duration) *Service {
	return &Service{
		owners: ownersSvc,
		store:  store,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Login valida credenciales y abre una sesión nueva con token aleatorio.
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, owners.Owner, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return session.Session{}, owners.Owner{}, ErrInvalidCredentials
	}

	o, err := s.owners.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, owners.ErrInvalidCredentials) {
			return session.Session{}, owners.Owner{}, ErrInvalidCredentials
		}
		return session.Session{}, owners.Owner{}, err
	}

	now := s.now()
	sess := session.Session{
		Token:      uuid.NewString(),
		OwnerID:    o.ID,
		Email:      o.Email,
		Permission: o.Permission,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return session.Session{}, owners.Owner{}, fmt.Errorf("store session: %w", err)
	}
	return sess, o, nil
}

// Logout es idempotente: un token desconocido no es error.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}
