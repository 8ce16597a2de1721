package cookieauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cat-registry/internal/ports/auth"
	"cat-registry/internal/ports/session"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier contra el session.Store.
type Verifier struct {
	store session.Store
}

func NewVerifier(store session.Store) *Verifier {
	return &Verifier{store: store}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.store == nil {
		return auth.Claims{}, errors.New("session verifier not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	s, err := v.store.Get(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("session lookup failed: %w", err)
	}
	if s.OwnerID <= 0 || !s.Permission.Valid() {
		return auth.Claims{}, errors.New("session has no valid owner")
	}

	return auth.Claims{
		OwnerID:    s.OwnerID,
		Email:      s.Email,
		Permission: s.Permission,
	}, nil
}
