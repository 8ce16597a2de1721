package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"cat-registry/internal/domain/cats"
)

type CatsRepo struct {
	db *sql.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: db}
}

const catColumns = `
	id, firstname, surname, callname, gender, birthday, microchip,
	dam_id, sire_id, breeder_id, owner_id,
	colour, litter_code, titles, status, neutered, hcm_tested, pkd_tested,
	birth_weight_g, current_weight_g, notes, photo_paths,
	created_at, updated_at`

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cats (
			firstname, surname, callname, gender, birthday, microchip,
			dam_id, sire_id, breeder_id, owner_id,
			colour, litter_code, titles, status, neutered, hcm_tested, pkd_tested,
			birth_weight_g, current_weight_g, notes, photo_paths,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
		RETURNING id
	`,
		c.Firstname,
		c.Surname,
		c.Callname,
		string(c.Gender),
		c.Birthday,
		c.Microchip,
		nullInt64(c.DamID),
		nullInt64(c.SireID),
		nullInt64(c.BreederID),
		c.OwnerID,
		c.Colour,
		c.LitterCode,
		c.Titles,
		string(c.Status),
		c.Neutered,
		c.HCMTested,
		c.PKDTested,
		nullInt(c.BirthWeightGrams),
		nullInt(c.CurrentWeightGrams),
		c.Notes,
		photoPaths(c.PhotoPaths),
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, mapCatWriteErr(err)
	}
	return id, nil
}

func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cats
		SET
			firstname = $2,
			surname = $3,
			callname = $4,
			gender = $5,
			birthday = $6,
			microchip = $7,
			dam_id = $8,
			sire_id = $9,
			breeder_id = $10,
			owner_id = $11,
			colour = $12,
			litter_code = $13,
			titles = $14,
			status = $15,
			neutered = $16,
			hcm_tested = $17,
			pkd_tested = $18,
			birth_weight_g = $19,
			current_weight_g = $20,
			notes = $21,
			photo_paths = $22,
			updated_at = $23
		WHERE id = $1
	`,
		c.ID,
		c.Firstname,
		c.Surname,
		c.Callname,
		string(c.Gender),
		c.Birthday,
		c.Microchip,
		nullInt64(c.DamID),
		nullInt64(c.SireID),
		nullInt64(c.BreederID),
		c.OwnerID,
		c.Colour,
		c.LitterCode,
		c.Titles,
		string(c.Status),
		c.Neutered,
		c.HCMTested,
		c.PKDTested,
		nullInt(c.BirthWeightGrams),
		nullInt(c.CurrentWeightGrams),
		c.Notes,
		photoPaths(c.PhotoPaths),
		c.UpdatedAt,
	)
	if err != nil {
		return mapCatWriteErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

// Delete: dam_id/sire_id de los hijos son ON DELETE SET NULL.
func (r *CatsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func (r *CatsRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+catColumns+` FROM cats WHERE id = $1`, id)
	return scanCat(row, pgtype.NewMap())
}

func (r *CatsRepo) List(ctx context.Context, filter cats.ListFilter) ([]cats.Cat, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + catColumns + ` FROM cats WHERE 1=1`)

	args := []any{}
	argN := 1
	eq := func(col string, v any) {
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", col, argN))
		args = append(args, v)
		argN++
	}

	if filter.OwnerID > 0 {
		eq("owner_id", filter.OwnerID)
	}
	if filter.BreederID > 0 {
		eq("breeder_id", filter.BreederID)
	}
	if filter.DamID > 0 {
		eq("dam_id", filter.DamID)
	}
	if filter.SireID > 0 {
		eq("sire_id", filter.SireID)
	}
	if filter.Gender != "" {
		eq("gender", string(filter.Gender))
	}
	if filter.Status != "" {
		eq("status", string(filter.Status))
	}
	if filter.BornFrom != nil {
		sb.WriteString(fmt.Sprintf(" AND birthday >= $%d", argN))
		args = append(args, *filter.BornFrom)
		argN++
	}
	if filter.BornTo != nil {
		sb.WriteString(fmt.Sprintf(" AND birthday <= $%d", argN))
		args = append(args, *filter.BornTo)
		argN++
	}
	if q := strings.TrimSpace(filter.Text); q != "" {
		sb.WriteString(fmt.Sprintf(
			" AND (firstname ILIKE $%d ESCAPE '\\' OR surname ILIKE $%d ESCAPE '\\' OR callname ILIKE $%d ESCAPE '\\' OR microchip ILIKE $%d ESCAPE '\\')",
			argN, argN, argN, argN))
		args = append(args, containsPattern(q))
		argN++
	}

	sb.WriteString(" ORDER BY lower(surname), lower(firstname), id")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argN, argN+1))
	args = append(args, filter.Limit, filter.Offset)

	return r.query(ctx, sb.String(), args...)
}

func (r *CatsRepo) ListOffspring(ctx context.Context, parentID int64) ([]cats.Cat, error) {
	return r.query(ctx, `
		SELECT `+catColumns+`
		FROM cats
		WHERE dam_id = $1 OR sire_id = $1
		ORDER BY birthday ASC, id ASC
	`, parentID)
}

func (r *CatsRepo) query(ctx context.Context, q string, args ...any) ([]cats.Cat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// pgtype.Map no es seguro para uso concurrente: uno por query.
	types := pgtype.NewMap()
	out := make([]cats.Cat, 0)
	for rows.Next() {
		c, err := scanCat(rows, types)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// scanCat usa types para text[] (photo_paths) vía database/sql.
func scanCat(s rowScanner, types *pgtype.Map) (cats.Cat, error) {
	var (
		c                  cats.Cat
		dam, sire, breeder sql.NullInt64
		birthW, currentW   sql.NullInt32
	)
	if err := s.Scan(
		&c.ID,
		&c.Firstname,
		&c.Surname,
		&c.Callname,
		&c.Gender,
		&c.Birthday,
		&c.Microchip,
		&dam,
		&sire,
		&breeder,
		&c.OwnerID,
		&c.Colour,
		&c.LitterCode,
		&c.Titles,
		&c.Status,
		&c.Neutered,
		&c.HCMTested,
		&c.PKDTested,
		&birthW,
		&currentW,
		&c.Notes,
		types.SQLScanner(&c.PhotoPaths),
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, err
	}

	c.DamID = int64Ptr(dam)
	c.SireID = int64Ptr(sire)
	c.BreederID = int64Ptr(breeder)
	c.BirthWeightGrams = intPtr(birthW)
	c.CurrentWeightGrams = intPtr(currentW)
	return c, nil
}

// photoPaths: text[] NOT NULL, nil se guarda como '{}'.
func photoPaths(p []string) []string {
	if p == nil {
		return []string{}
	}
	return p
}

// mapCatWriteErr: una FK rota (padre/owner/breeder borrado entre la validación
// y el write) se reporta como input inválido.
func mapCatWriteErr(err error) error {
	if pgCode(err) == codeForeignKeyViolation {
		return fmt.Errorf("%w: referenced row no longer exists", cats.ErrInvalidInput)
	}
	return err
}
