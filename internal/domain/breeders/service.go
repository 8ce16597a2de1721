package breeders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("breeder not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	City        string
	Country     string
	Website     string
	Notes       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Breeder, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Breeder{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}

	now := s.now()
	b := Breeder{
		Name:        name,
		ContactName: strings.TrimSpace(in.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		Country:     strings.TrimSpace(in.Country),
		Website:     strings.TrimSpace(in.Website),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, b)
	if err != nil {
		return Breeder{}, err
	}
	b.ID = id
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Breeder, error) {
	if id <= 0 {
		return Breeder{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Breeder, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Country = strings.TrimSpace(filter.Country)
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name        *string
	ContactName *string
	Email       *string
	Phone       *string
	Address     *string
	City        *string
	Country     *string
	Website     *string
	Notes       *string
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Breeder, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return Breeder{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Breeder{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		b.Name = name
	}
	if in.Email != nil {
		b.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	applyTrimmed(&b.ContactName, in.ContactName)
	applyTrimmed(&b.Phone, in.Phone)
	applyTrimmed(&b.Address, in.Address)
	applyTrimmed(&b.City, in.City)
	applyTrimmed(&b.Country, in.Country)
	applyTrimmed(&b.Website, in.Website)
	applyTrimmed(&b.Notes, in.Notes)

	b.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, b); err != nil {
		return Breeder{}, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func applyTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
