package session

import (
	"context"
	"errors"
	"time"

	"cat-registry/internal/ports/auth"
)

var (
	ErrNotFound = errors.New("session not found")
)

type Session struct {
	Token      string
	OwnerID    int64
	Email      string
	Permission auth.Permission

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store guarda sesiones autenticadas con expiración.
// Reemplaza el diccionario global de sesiones: se inyecta en los handlers.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByOwner(ctx context.Context, ownerID int64) (int, error)
}
