package owners

import "context"

type Repository interface {
	Create(ctx context.Context, o Owner) (int64, error)
	Update(ctx context.Context, o Owner) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Owner, error)
	GetByEmail(ctx context.Context, email string) (Owner, error)
	List(ctx context.Context, filter ListFilter) ([]Owner, error)
	CountCats(ctx context.Context, ownerID int64) (int, error)
}
