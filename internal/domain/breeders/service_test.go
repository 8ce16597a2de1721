package breeders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	nextID int64
	byID   map[int64]Breeder
}

func newTestRepo() *testRepo { return &testRepo{byID: map[int64]Breeder{}} }

func (r *testRepo) Create(_ context.Context, b Breeder) (int64, error) {
	r.nextID++
	b.ID = r.nextID
	r.byID[b.ID] = b
	return b.ID, nil
}

func (r *testRepo) Update(_ context.Context, b Breeder) error {
	if _, ok := r.byID[b.ID]; !ok {
		return ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Breeder, error) {
	b, ok := r.byID[id]
	if !ok {
		return Breeder{}, ErrNotFound
	}
	return b, nil
}

func (r *testRepo) List(_ context.Context, f ListFilter) ([]Breeder, error) {
	out := make([]Breeder, 0)
	for _, b := range r.byID {
		if f.Country != "" && b.Country != f.Country {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func TestService_CreateUpdateDelete(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	b, err := svc.Create(ctx, CreateInput{Name: " Cattery du Nord ", Email: "INFO@nord.fr", Country: "FR"})
	require.NoError(t, err)
	assert.Equal(t, "Cattery du Nord", b.Name)
	assert.Equal(t, "info@nord.fr", b.Email)
	assert.Equal(t, fixed, b.CreatedAt)

	later := fixed.Add(time.Hour)
	svc.now = func() time.Time { return later }

	city := "Lille"
	b, err = svc.Update(ctx, b.ID, UpdateInput{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Lille", b.City)
	assert.Equal(t, "FR", b.Country)
	assert.Equal(t, later, b.UpdatedAt)

	empty := ""
	_, err = svc.Update(ctx, b.ID, UpdateInput{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	ok, err := svc.Exists(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Delete(ctx, b.ID))
	ok, err = svc.Exists(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrNotFound)
}

func TestService_List_DefaultsLimit(t *testing.T) {
	repo := &limitSpy{testRepo: newTestRepo()}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), ListFilter{Limit: 10000, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.last.Limit)
	assert.Equal(t, 0, repo.last.Offset)
}

type limitSpy struct {
	*testRepo
	last ListFilter
}

func (s *limitSpy) List(ctx context.Context, f ListFilter) ([]Breeder, error) {
	s.last = f
	return s.testRepo.List(ctx, f)
}
