//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"cat-registry/internal/domain/breeders"
	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/owners"
	"cat-registry/internal/domain/pedigree"
	"cat-registry/internal/ports/auth"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("catreg"),
		tcpostgres.WithUsername("catreg"),
		tcpostgres.WithPassword("catreg"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "migrate es idempotente")
	return db
}

func TestPostgres_Repositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	ownersRepo := NewOwnersRepo(db)
	breedersRepo := NewBreedersRepo(db)
	catsRepo := NewCatsRepo(db)

	ownerID, err := ownersRepo.Create(ctx, owners.Owner{
		Firstname: "Ana", Email: "ana@example.com", Permission: auth.PermissionOwner,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	_, err = ownersRepo.Create(ctx, owners.Owner{Firstname: "Dup", Email: "ana@example.com", Permission: auth.PermissionOwner, CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, owners.ErrConflict)

	o, err := ownersRepo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, auth.PermissionOwner, o.Permission)

	breederID, err := breedersRepo.Create(ctx, breeders.Breeder{Name: "Lac", Country: "FR", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	day := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	newCat := func(name string, g cats.Gender, dam, sire *int64) int64 {
		id, err := catsRepo.Create(ctx, cats.Cat{
			Firstname: name, Gender: g, Birthday: day, OwnerID: ownerID,
			DamID: dam, SireID: sire, BreederID: &breederID, Status: cats.StatusActive,
			PhotoPaths: []string{name + ".jpg"},
			CreatedAt:  now, UpdatedAt: now,
		})
		require.NoError(t, err)
		return id
	}

	dam := newCat("Mum", cats.GenderFemale, nil, nil)
	sire := newCat("Dad", cats.GenderMale, nil, nil)
	kit := newCat("Kit", cats.GenderMale, &dam, &sire)

	got, err := catsRepo.GetByID(ctx, kit)
	require.NoError(t, err)
	assert.Equal(t, dam, *got.DamID)
	assert.Equal(t, []string{"Kit.jpg"}, got.PhotoPaths)
	assert.True(t, got.Birthday.Equal(day))

	tree, err := pedigree.NewResolver(catsRepo).ResolveAncestry(ctx, kit, 2)
	require.NoError(t, err)
	require.NotNil(t, tree.Root.Dam)
	assert.Equal(t, "Mum", tree.Root.Dam.Cat.Name)
	assert.Equal(t, 3, tree.Lookups)

	males, err := catsRepo.List(ctx, cats.ListFilter{Gender: cats.GenderMale, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, males, 2)

	// q literal: "_" no es comodín (mismo resultado que memory)
	byText, err := catsRepo.List(ctx, cats.ListFilter{Text: "_", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, byText)
	byText, err = catsRepo.List(ctx, cats.ListFilter{Text: "UM", Limit: 10})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, dam, byText[0].ID)

	off, err := catsRepo.ListOffspring(ctx, sire)
	require.NoError(t, err)
	require.Len(t, off, 1)

	n, err := ownersRepo.CountCats(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, ownersRepo.Delete(ctx, ownerID), owners.ErrConflict)

	require.NoError(t, catsRepo.Delete(ctx, dam))
	got, err = catsRepo.GetByID(ctx, kit)
	require.NoError(t, err)
	assert.Nil(t, got.DamID)

	require.NoError(t, breedersRepo.Delete(ctx, breederID))
	got, err = catsRepo.GetByID(ctx, kit)
	require.NoError(t, err)
	assert.Nil(t, got.BreederID)

	_, err = catsRepo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, cats.ErrNotFound)
}
