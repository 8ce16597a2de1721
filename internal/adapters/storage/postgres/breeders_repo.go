package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cat-registry/internal/domain/breeders"
)

type BreedersRepo struct {
	db *sql.DB
}

func NewBreedersRepo(db *sql.DB) *BreedersRepo {
	return &BreedersRepo{db: db}
}

const breederColumns = `
	id, name, contact_name, email, phone,
	address, city, country, website, notes,
	created_at, updated_at`

func (r *BreedersRepo) Create(ctx context.Context, b breeders.Breeder) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO breeders (
			name, contact_name, email, phone,
			address, city, country, website, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		b.Name,
		b.ContactName,
		b.Email,
		b.Phone,
		b.Address,
		b.City,
		b.Country,
		b.Website,
		b.Notes,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&id)
	return id, err
}

func (r *BreedersRepo) Update(ctx context.Context, b breeders.Breeder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE breeders
		SET
			name = $2,
			contact_name = $3,
			email = $4,
			phone = $5,
			address = $6,
			city = $7,
			country = $8,
			website = $9,
			notes = $10,
			updated_at = $11
		WHERE id = $1
	`,
		b.ID,
		b.Name,
		b.ContactName,
		b.Email,
		b.Phone,
		b.Address,
		b.City,
		b.Country,
		b.Website,
		b.Notes,
		b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return breeders.ErrNotFound
	}
	return nil
}

// Delete: cats.breeder_id es ON DELETE SET NULL.
func (r *BreedersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM breeders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return breeders.ErrNotFound
	}
	return nil
}

func (r *BreedersRepo) GetByID(ctx context.Context, id int64) (breeders.Breeder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+breederColumns+` FROM breeders WHERE id = $1`, id)
	return scanBreeder(row)
}

func (r *BreedersRepo) List(ctx context.Context, filter breeders.ListFilter) ([]breeders.Breeder, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + breederColumns + ` FROM breeders WHERE 1=1`)

	args := []any{}
	argN := 1

	if c := strings.TrimSpace(filter.Country); c != "" {
		sb.WriteString(fmt.Sprintf(" AND lower(country) = lower($%d)", argN))
		args = append(args, c)
		argN++
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d ESCAPE '\\' OR contact_name ILIKE $%d ESCAPE '\\' OR email ILIKE $%d ESCAPE '\\')", argN, argN, argN))
		args = append(args, containsPattern(q))
		argN++
	}

	sb.WriteString(" ORDER BY lower(name), id")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argN, argN+1))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeders.Breeder, 0)
	for rows.Next() {
		b, err := scanBreeder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBreeder(s rowScanner) (breeders.Breeder, error) {
	var b breeders.Breeder
	if err := s.Scan(
		&b.ID,
		&b.Name,
		&b.ContactName,
		&b.Email,
		&b.Phone,
		&b.Address,
		&b.City,
		&b.Country,
		&b.Website,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return breeders.Breeder{}, breeders.ErrNotFound
		}
		return breeders.Breeder{}, err
	}
	return b, nil
}
