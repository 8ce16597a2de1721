package breeders

import "context"

type Repository interface {
	Create(ctx context.Context, b Breeder) (int64, error)
	Update(ctx context.Context, b Breeder) error
	// Delete deja breeder_id en NULL en los gatos que lo referencian.
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Breeder, error)
	List(ctx context.Context, filter ListFilter) ([]Breeder, error)
}
