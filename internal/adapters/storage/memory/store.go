package memory

import (
	"sync"

	"cat-registry/internal/domain/breeders"
	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/owners"
)

// Store es el storage in-memory (dev y tests). Un solo mutex para las tres
// tablas: los borrados tocan referencias cruzadas (breeder_id, dam_id/sire_id).
type Store struct {
	mu sync.RWMutex

	nextOwnerID   int64
	nextBreederID int64
	nextCatID     int64

	owners   map[int64]owners.Owner
	breeders map[int64]breeders.Breeder
	cats     map[int64]cats.Cat
}

func NewStore() *Store {
	return &Store{
		owners:   make(map[int64]owners.Owner),
		breeders: make(map[int64]breeders.Breeder),
		cats:     make(map[int64]cats.Cat),
	}
}

func (s *Store) Owners() owners.Repository     { return &ownerRepo{s: s} }
func (s *Store) Breeders() breeders.Repository { return &breederRepo{s: s} }
func (s *Store) Cats() cats.Repository         { return &catRepo{s: s} }

// Filtro de paginación compartido.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return make([]T, 0)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
