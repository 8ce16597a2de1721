package memory

import (
	"context"
	"sort"
	"strings"

	"cat-registry/internal/domain/breeders"
)

type breederRepo struct {
	s *Store
}

func (r *breederRepo) Create(ctx context.Context, b breeders.Breeder) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextBreederID++
	b.ID = r.s.nextBreederID
	r.s.breeders[b.ID] = b
	return b.ID, nil
}

func (r *breederRepo) Update(ctx context.Context, b breeders.Breeder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.breeders[b.ID]; !ok {
		return breeders.ErrNotFound
	}
	r.s.breeders[b.ID] = b
	return nil
}

func (r *breederRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.breeders[id]; !ok {
		return breeders.ErrNotFound
	}
	delete(r.s.breeders, id)

	// ON DELETE SET NULL
	for cid, c := range r.s.cats {
		if c.BreederID != nil && *c.BreederID == id {
			c.BreederID = nil
			r.s.cats[cid] = c
		}
	}
	return nil
}

func (r *breederRepo) GetByID(ctx context.Context, id int64) (breeders.Breeder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.breeders[id]
	if !ok {
		return breeders.Breeder{}, breeders.ErrNotFound
	}
	return b, nil
}

func (r *breederRepo) List(ctx context.Context, filter breeders.ListFilter) ([]breeders.Breeder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(filter.Query)
	out := make([]breeders.Breeder, 0)
	for _, b := range r.s.breeders {
		if filter.Country != "" && !strings.EqualFold(b.Country, filter.Country) {
			continue
		}
		if q != "" && !containsAny(q, b.Name, b.ContactName, b.Email) {
			continue
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		if !strings.EqualFold(out[i].Name, out[j].Name) {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
		return out[i].ID < out[j].ID
	})

	return page(out, filter.Limit, filter.Offset), nil
}
