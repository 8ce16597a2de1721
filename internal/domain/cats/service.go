package cats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cat-registry/internal/platform/patch"
	"cat-registry/internal/ports/auth"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("cat not found")
	ErrInvalidParent = errors.New("invalid parent")
	ErrForbidden     = errors.New("forbidden")
)

// OwnerDirectory y BreederDirectory evitan importar owners/breeders desde acá.
type OwnerDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type BreederDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo     Repository
	owners   OwnerDirectory
	breeders BreederDirectory
	now      func() time.Time
}

func NewService(repo Repository, owners OwnerDirectory, breeders BreederDirectory) *Service {
	return &Service{
		repo:     repo,
		owners:   owners,
		breeders: breeders,
		now:      time.Now,
	}
}

type CreateInput struct {
	Firstname string
	Surname   string
	Callname  string
	Gender    Gender
	Birthday  time.Time
	Microchip string

	DamID     *int64
	SireID    *int64
	BreederID *int64
	OwnerID   int64

	Colour             string
	LitterCode         string
	Titles             string
	Status             Status
	Neutered           bool
	HCMTested          bool
	PKDTested          bool
	BirthWeightGrams   *int
	CurrentWeightGrams *int
	Notes              string
	PhotoPaths         []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Cat, error) {
	now := s.now()
	c := Cat{
		Firstname:          strings.TrimSpace(in.Firstname),
		Surname:            strings.TrimSpace(in.Surname),
		Callname:           strings.TrimSpace(in.Callname),
		Gender:             in.Gender,
		Birthday:           dateOnly(in.Birthday),
		Microchip:          strings.TrimSpace(in.Microchip),
		DamID:              in.DamID,
		SireID:             in.SireID,
		BreederID:          in.BreederID,
		OwnerID:            in.OwnerID,
		Colour:             strings.TrimSpace(in.Colour),
		LitterCode:         strings.TrimSpace(in.LitterCode),
		Titles:             strings.TrimSpace(in.Titles),
		Status:             in.Status,
		Neutered:           in.Neutered,
		HCMTested:          in.HCMTested,
		PKDTested:          in.PKDTested,
		BirthWeightGrams:   in.BirthWeightGrams,
		CurrentWeightGrams: in.CurrentWeightGrams,
		Notes:              strings.TrimSpace(in.Notes),
		PhotoPaths:         cleanPaths(in.PhotoPaths),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if c.Status == "" {
		c.Status = StatusActive
	}

	if err := s.validate(ctx, c); err != nil {
		return Cat{}, err
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return Cat{}, err
	}
	c.ID = id
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Cat, error) {
	if id <= 0 {
		return Cat{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetVisible aplica el scoping por permiso: un owner solo ve sus gatos.
// Para el resto responde ErrNotFound (no revelamos existencia).
func (s *Service) GetVisible(ctx context.Context, claims auth.Claims, id int64) (Cat, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}
	if !CanView(claims, c) {
		return Cat{}, ErrNotFound
	}
	return c, nil
}

func CanView(claims auth.Claims, c Cat) bool {
	return claims.IsAdmin() || (claims.OwnerID > 0 && c.OwnerID == claims.OwnerID)
}

// List normaliza el filtro y, si el viewer no es admin, lo restringe a sus gatos.
func (s *Service) List(ctx context.Context, claims auth.Claims, filter ListFilter) ([]Cat, error) {
	filter.Text = strings.TrimSpace(filter.Text)
	if filter.Limit <= 0 || filter.Limit > MaxListLimit {
		filter.Limit = DefaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Gender != "" && !filter.Gender.Valid() {
		return nil, fmt.Errorf("%w: gender must be Male or Female", ErrInvalidInput)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if filter.BornFrom != nil && filter.BornTo != nil && filter.BornTo.Before(*filter.BornFrom) {
		return nil, fmt.Errorf("%w: born_to before born_from", ErrInvalidInput)
	}
	if !claims.IsAdmin() {
		if claims.OwnerID <= 0 {
			return nil, ErrForbidden
		}
		filter.OwnerID = claims.OwnerID
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) ListOffspring(ctx context.Context, claims auth.Claims, parentID int64) ([]Cat, error) {
	if _, err := s.GetVisible(ctx, claims, parentID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListOffspring(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if claims.IsAdmin() {
		return items, nil
	}
	out := items[:0]
	for _, c := range items {
		if CanView(claims, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// UpdateInput: punteros nil = no tocar. Los campos referenciales usan
// patch.Nullable para poder limpiarse con null.
type UpdateInput struct {
	Firstname *string
	Surname   *string
	Callname  *string
	Gender    *Gender
	Birthday  *time.Time
	Microchip *string

	DamID     patch.Nullable[int64]
	SireID    patch.Nullable[int64]
	BreederID patch.Nullable[int64]
	OwnerID   *int64

	Colour             *string
	LitterCode         *string
	Titles             *string
	Status             *Status
	Neutered           *bool
	HCMTested          *bool
	PKDTested          *bool
	BirthWeightGrams   patch.Nullable[int]
	CurrentWeightGrams patch.Nullable[int]
	Notes              *string
	PhotoPaths         *[]string
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Cat, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}

	applyTrimmed(&c.Firstname, in.Firstname)
	applyTrimmed(&c.Surname, in.Surname)
	applyTrimmed(&c.Callname, in.Callname)
	applyTrimmed(&c.Microchip, in.Microchip)
	applyTrimmed(&c.Colour, in.Colour)
	applyTrimmed(&c.LitterCode, in.LitterCode)
	applyTrimmed(&c.Titles, in.Titles)
	applyTrimmed(&c.Notes, in.Notes)

	prevGender := c.Gender
	if in.Gender != nil {
		c.Gender = *in.Gender
	}
	if in.Birthday != nil {
		c.Birthday = dateOnly(*in.Birthday)
	}
	if in.OwnerID != nil {
		c.OwnerID = *in.OwnerID
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.Neutered != nil {
		c.Neutered = *in.Neutered
	}
	if in.HCMTested != nil {
		c.HCMTested = *in.HCMTested
	}
	if in.PKDTested != nil {
		c.PKDTested = *in.PKDTested
	}
	if in.PhotoPaths != nil {
		c.PhotoPaths = cleanPaths(*in.PhotoPaths)
	}

	c.DamID = in.DamID.Apply(c.DamID)
	c.SireID = in.SireID.Apply(c.SireID)
	c.BreederID = in.BreederID.Apply(c.BreederID)
	c.BirthWeightGrams = in.BirthWeightGrams.Apply(c.BirthWeightGrams)
	c.CurrentWeightGrams = in.CurrentWeightGrams.Apply(c.CurrentWeightGrams)

	if err := s.validate(ctx, c); err != nil {
		return Cat{}, err
	}
	if c.Gender != prevGender {
		if err := s.checkOffspringRoles(ctx, c); err != nil {
			return Cat{}, err
		}
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Cat{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// validate corre las reglas de campos y luego las referenciales (owner, breeder, padres).
func (s *Service) validate(ctx context.Context, c Cat) error {
	if c.Firstname == "" && c.Surname == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if !c.Gender.Valid() {
		return fmt.Errorf("%w: gender must be Male or Female", ErrInvalidInput)
	}
	if c.Birthday.IsZero() {
		return fmt.Errorf("%w: birthday required", ErrInvalidInput)
	}
	if c.Birthday.After(s.now()) {
		return fmt.Errorf("%w: birthday in the future", ErrInvalidInput)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, c.Status)
	}
	for _, w := range []*int{c.BirthWeightGrams, c.CurrentWeightGrams} {
		if w != nil && *w <= 0 {
			return fmt.Errorf("%w: weights must be positive grams", ErrInvalidInput)
		}
	}

	if c.OwnerID <= 0 {
		return fmt.Errorf("%w: owner_id required", ErrInvalidInput)
	}
	if ok, err := s.owners.Exists(ctx, c.OwnerID); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%w: owner %d not found", ErrInvalidInput, c.OwnerID)
	}
	if c.BreederID != nil {
		if ok, err := s.breeders.Exists(ctx, *c.BreederID); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: breeder %d not found", ErrInvalidInput, *c.BreederID)
		}
	}

	return s.checkParents(ctx, c)
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cleanPaths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func applyTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
