package memory

import (
	"context"
	"sort"
	"strings"

	"cat-registry/internal/domain/cats"
)

type catRepo struct {
	s *Store
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextCatID++
	c.ID = r.s.nextCatID
	r.s.cats[c.ID] = clone(c)
	return c.ID, nil
}

func (r *catRepo) Update(ctx context.Context, c cats.Cat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cats[c.ID]; !ok {
		return cats.ErrNotFound
	}
	r.s.cats[c.ID] = clone(c)
	return nil
}

func (r *catRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cats[id]; !ok {
		return cats.ErrNotFound
	}
	delete(r.s.cats, id)

	// hijos quedan sin dam/sire en vez de apuntar a un id borrado
	for cid, c := range r.s.cats {
		changed := false
		if c.DamID != nil && *c.DamID == id {
			c.DamID = nil
			changed = true
		}
		if c.SireID != nil && *c.SireID == id {
			c.SireID = nil
			changed = true
		}
		if changed {
			r.s.cats[cid] = c
		}
	}
	return nil
}

func (r *catRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cats[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return clone(c), nil
}

func (r *catRepo) List(ctx context.Context, filter cats.ListFilter) ([]cats.Cat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, c := range r.s.cats {
		if matches(c, filter) {
			out = append(out, clone(c))
		}
	}
	sortCats(out)
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *catRepo) ListOffspring(ctx context.Context, parentID int64) ([]cats.Cat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, c := range r.s.cats {
		if isRef(c.DamID, parentID) || isRef(c.SireID, parentID) {
			out = append(out, clone(c))
		}
	}
	// hijos por fecha de nacimiento
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Birthday.Equal(out[j].Birthday) {
			return out[i].Birthday.Before(out[j].Birthday)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matches(c cats.Cat, f cats.ListFilter) bool {
	if f.OwnerID > 0 && c.OwnerID != f.OwnerID {
		return false
	}
	if f.BreederID > 0 && !isRef(c.BreederID, f.BreederID) {
		return false
	}
	if f.DamID > 0 && !isRef(c.DamID, f.DamID) {
		return false
	}
	if f.SireID > 0 && !isRef(c.SireID, f.SireID) {
		return false
	}
	if f.Gender != "" && c.Gender != f.Gender {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.BornFrom != nil && c.Birthday.Before(*f.BornFrom) {
		return false
	}
	if f.BornTo != nil && c.Birthday.After(*f.BornTo) {
		return false
	}
	if q := strings.ToLower(f.Text); q != "" && !containsAny(q, c.Firstname, c.Surname, c.Callname, c.Microchip) {
		return false
	}
	return true
}

func sortCats(out []cats.Cat) {
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !strings.EqualFold(a.Surname, b.Surname) {
			return strings.ToLower(a.Surname) < strings.ToLower(b.Surname)
		}
		if !strings.EqualFold(a.Firstname, b.Firstname) {
			return strings.ToLower(a.Firstname) < strings.ToLower(b.Firstname)
		}
		return a.ID < b.ID
	})
}

func isRef(p *int64, id int64) bool {
	return p != nil && *p == id
}

// clone evita compartir punteros y slices con el caller.
func clone(c cats.Cat) cats.Cat {
	c.DamID = cloneInt64(c.DamID)
	c.SireID = cloneInt64(c.SireID)
	c.BreederID = cloneInt64(c.BreederID)
	if c.BirthWeightGrams != nil {
		v := *c.BirthWeightGrams
		c.BirthWeightGrams = &v
	}
	if c.CurrentWeightGrams != nil {
		v := *c.CurrentWeightGrams
		c.CurrentWeightGrams = &v
	}
	if c.PhotoPaths != nil {
		c.PhotoPaths = append([]string(nil), c.PhotoPaths...)
	}
	return c
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
