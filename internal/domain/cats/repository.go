package cats

import "context"

type Repository interface {
	Create(ctx context.Context, c Cat) (int64, error)
	Update(ctx context.Context, c Cat) error
	// Delete borra el gato y deja dam_id/sire_id en NULL en sus hijos.
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Cat, error)
	List(ctx context.Context, filter ListFilter) ([]Cat, error)
	// ListOffspring devuelve los gatos con dam_id o sire_id = parentID.
	ListOffspring(ctx context.Context, parentID int64) ([]Cat, error)
}
