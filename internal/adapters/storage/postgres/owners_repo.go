package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cat-registry/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

const ownerColumns = `
	id, firstname, surname, email,
	phone, address, city, country,
	permission, password_hash,
	created_at, updated_at`

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO owners (
			firstname, surname, email,
			phone, address, city, country,
			permission, password_hash,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		o.Firstname,
		o.Surname,
		o.Email,
		o.Phone,
		o.Address,
		o.City,
		o.Country,
		int(o.Permission),
		o.PasswordHash,
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return 0, fmt.Errorf("%w: email already registered", owners.ErrConflict)
		}
		return 0, err
	}
	return id, nil
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET
			firstname = $2,
			surname = $3,
			email = $4,
			phone = $5,
			address = $6,
			city = $7,
			country = $8,
			permission = $9,
			password_hash = $10,
			updated_at = $11
		WHERE id = $1
	`,
		o.ID,
		o.Firstname,
		o.Surname,
		o.Email,
		o.Phone,
		o.Address,
		o.City,
		o.Country,
		int(o.Permission),
		o.PasswordHash,
		o.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return fmt.Errorf("%w: email already registered", owners.ErrConflict)
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		// owner_id es RESTRICT: todavía tiene gatos
		if pgCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%w: owner still has cats", owners.ErrConflict)
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id)
	return scanOwner(row)
}

func (r *OwnersRepo) GetByEmail(ctx context.Context, email string) (owners.Owner, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return owners.Owner{}, owners.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM owners WHERE email = $1`, email)
	return scanOwner(row)
}

func (r *OwnersRepo) List(ctx context.Context, filter owners.ListFilter) ([]owners.Owner, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + ownerColumns + ` FROM owners WHERE 1=1`)

	args := []any{}
	argN := 1

	if filter.Permission != 0 {
		sb.WriteString(fmt.Sprintf(" AND permission = $%d", argN))
		args = append(args, int(filter.Permission))
		argN++
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (firstname ILIKE $%d ESCAPE '\\' OR surname ILIKE $%d ESCAPE '\\' OR email ILIKE $%d ESCAPE '\\')", argN, argN, argN))
		args = append(args, containsPattern(q))
		argN++
	}

	sb.WriteString(" ORDER BY lower(surname), lower(firstname), id")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argN, argN+1))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OwnersRepo) CountCats(ctx context.Context, ownerID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM cats WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

// rowScanner cubre *sql.Row y *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(s rowScanner) (owners.Owner, error) {
	var o owners.Owner
	if err := s.Scan(
		&o.ID,
		&o.Firstname,
		&o.Surname,
		&o.Email,
		&o.Phone,
		&o.Address,
		&o.City,
		&o.Country,
		&o.Permission,
		&o.PasswordHash,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return o, nil
}
