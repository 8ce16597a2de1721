package owners

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cat-registry/internal/ports/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("owner not found")
	ErrConflict           = errors.New("owner conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLen = 8

// SessionRevoker permite cerrar las sesiones de un owner sin importar el adapter.
type SessionRevoker interface {
	DeleteByOwner(ctx context.Context, ownerID int64) (int, error)
}

type Service struct {
	repo     Repository
	sessions SessionRevoker
	now      func() time.Time
	cost     int
}

func NewService(repo Repository, sessions SessionRevoker) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		now:      time.Now,
		cost:     bcrypt.DefaultCost,
	}
}

type CreateInput struct {
	Firstname  string
	Surname    string
	Email      string
	Phone      string
	Address    string
	City       string
	Country    string
	Permission auth.Permission
	Password   string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return Owner{}, fmt.Errorf("%w: email required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Firstname) == "" && strings.TrimSpace(in.Surname) == "" {
		return Owner{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	perm := in.Permission
	if perm == 0 {
		perm = auth.PermissionOwner
	}
	if !perm.Valid() {
		return Owner{}, fmt.Errorf("%w: permission must be 1 or 2", ErrInvalidInput)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Owner{}, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return Owner{}, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return Owner{}, err
	}

	now := s.now()
	o := Owner{
		Firstname:    strings.TrimSpace(in.Firstname),
		Surname:      strings.TrimSpace(in.Surname),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		City:         strings.TrimSpace(in.City),
		Country:      strings.TrimSpace(in.Country),
		Permission:   perm,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.repo.Create(ctx, o)
	if err != nil {
		return Owner{}, err
	}
	o.ID = id
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Owner, error) {
	if id <= 0 {
		return Owner{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Exists se usa desde cats para validar owner_id sin importar este paquete al revés.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Owner, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Firstname  *string
	Surname    *string
	Email      *string
	Phone      *string
	Address    *string
	City       *string
	Country    *string
	Permission *auth.Permission
	Password   *string
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Owner, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	permChanged := false

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return Owner{}, fmt.Errorf("%w: email required", ErrInvalidInput)
		}
		if email != o.Email {
			if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != o.ID {
				return Owner{}, fmt.Errorf("%w: email already registered", ErrConflict)
			} else if err != nil && !errors.Is(err, ErrNotFound) {
				return Owner{}, err
			}
			o.Email = email
		}
	}
	applyTrimmed(&o.Firstname, in.Firstname)
	applyTrimmed(&o.Surname, in.Surname)
	applyTrimmed(&o.Phone, in.Phone)
	applyTrimmed(&o.Address, in.Address)
	applyTrimmed(&o.City, in.City)
	applyTrimmed(&o.Country, in.Country)

	if o.Firstname == "" && o.Surname == "" {
		return Owner{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}

	if in.Permission != nil {
		if !in.Permission.Valid() {
			return Owner{}, fmt.Errorf("%w: permission must be 1 or 2", ErrInvalidInput)
		}
		permChanged = *in.Permission != o.Permission
		o.Permission = *in.Permission
	}

	if in.Password != nil {
		hash, err := s.hashPassword(*in.Password)
		if err != nil {
			return Owner{}, err
		}
		o.PasswordHash = hash
		permChanged = true
	}

	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, err
	}

	// Sesiones activas llevan la permission vieja; se fuerzan a re-login.
	if permChanged {
		s.revokeSessions(ctx, o.ID)
	}
	return o, nil
}

// Delete rechaza borrar owners que todavía tienen gatos (no hay cascade).
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountCats(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: owner still has %d cats", ErrConflict, n)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.revokeSessions(ctx, id)
	return nil
}

// Authenticate valida email + password. Mismo error para email inexistente y password
// incorrecta.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Owner, error) {
	o, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Owner{}, ErrInvalidCredentials
		}
		return Owner{}, err
	}
	if o.PasswordHash == "" {
		return Owner{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password)); err != nil {
		return Owner{}, ErrInvalidCredentials
	}
	return o, nil
}

// EnsureAdmin crea el admin inicial si el email no existe. Si existe, no lo toca.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (Owner, bool, error) {
	o, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return o, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Owner{}, false, err
	}
	o, err = s.Create(ctx, CreateInput{
		Firstname:  "Admin",
		Email:      email,
		Permission: auth.PermissionAdmin,
		Password:   password,
	})
	if err != nil {
		return Owner{}, false, err
	}
	return o, true, nil
}

func (s *Service) hashPassword(pw string) (string, error) {
	if len(pw) < minPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (s *Service) revokeSessions(ctx context.Context, ownerID int64) {
	if s.sessions == nil {
		return
	}
	_, _ = s.sessions.DeleteByOwner(ctx, ownerID) // best-effort
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func applyTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
