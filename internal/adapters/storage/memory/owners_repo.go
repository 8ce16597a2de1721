package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cat-registry/internal/domain/owners"
)

type ownerRepo struct {
	s *Store
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.owners {
		if other.Email == o.Email {
			return 0, errors.New("owner email already exists")
		}
	}
	r.s.nextOwnerID++
	o.ID = r.s.nextOwnerID
	r.s.owners[o.ID] = o
	return o.ID, nil
}

func (r *ownerRepo) Update(ctx context.Context, o owners.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[o.ID]; !ok {
		return owners.ErrNotFound
	}
	r.s.owners[o.ID] = o
	return nil
}

func (r *ownerRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[id]; !ok {
		return owners.ErrNotFound
	}
	delete(r.s.owners, id)
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.owners[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) GetByEmail(ctx context.Context, email string) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if o.Email == email {
			return o, nil
		}
	}
	return owners.Owner{}, owners.ErrNotFound
}

func (r *ownerRepo) List(ctx context.Context, filter owners.ListFilter) ([]owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(filter.Query)
	out := make([]owners.Owner, 0)
	for _, o := range r.s.owners {
		if filter.Permission != 0 && o.Permission != filter.Permission {
			continue
		}
		if q != "" && !containsAny(q, o.Firstname, o.Surname, o.Email) {
			continue
		}
		out = append(out, o)
	}

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

	return page(out, filter.Limit, filter.Offset), nil
}

func (r *ownerRepo) CountCats(ctx context.Context, ownerID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, c := range r.s.cats {
		if c.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// containsAny: q ya viene en minúsculas.
func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
