package cats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-registry/internal/platform/patch"
	"cat-registry/internal/ports/auth"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	nextID int64
	byID   map[int64]Cat
}

func newTestRepo() *testRepo { return &testRepo{byID: map[int64]Cat{}} }

func (r *testRepo) Create(_ context.Context, c Cat) (int64, error) {
	r.nextID++
	c.ID = r.nextID
	r.byID[c.ID] = c
	return c.ID, nil
}

func (r *testRepo) Update(_ context.Context, c Cat) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	for cid, c := range r.byID {
		if c.DamID != nil && *c.DamID == id {
			c.DamID = nil
		}
		if c.SireID != nil && *c.SireID == id {
			c.SireID = nil
		}
		r.byID[cid] = c
	}
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Cat, error) {
	c, ok := r.byID[id]
	if !ok {
		return Cat{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) List(_ context.Context, f ListFilter) ([]Cat, error) {
	out := make([]Cat, 0)
	for _, c := range r.byID {
		if f.OwnerID > 0 && c.OwnerID != f.OwnerID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *testRepo) ListOffspring(_ context.Context, parentID int64) ([]Cat, error) {
	out := make([]Cat, 0)
	for _, c := range r.byID {
		if (c.DamID != nil && *c.DamID == parentID) || (c.SireID != nil && *c.SireID == parentID) {
			out = append(out, c)
		}
	}
	return out, nil
}

type directory map[int64]bool

func (d directory) Exists(_ context.Context, id int64) (bool, error) { return d[id], nil }

var (
	admin  = auth.Claims{OwnerID: 1, Permission: auth.PermissionAdmin}
	owner7 = auth.Claims{OwnerID: 7, Permission: auth.PermissionOwner}
)

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, directory{1: true, 7: true}, directory{3: true})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func mustCreate(t *testing.T, svc *Service, name string, g Gender, mods ...func(*CreateInput)) Cat {
	t.Helper()
	in := CreateInput{
		Firstname: name,
		Gender:    g,
		Birthday:  time.Date(2020, 4, 10, 15, 30, 0, 0, time.UTC),
		OwnerID:   7,
	}
	for _, m := range mods {
		m(&in)
	}
	c, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }

// -------------------------
// Tests
// -------------------------

func TestService_Create_Defaults(t *testing.T) {
	svc, _ := newTestService()

	c := mustCreate(t, svc, " Luna ", GenderFemale, func(in *CreateInput) {
		in.PhotoPaths = []string{" a.jpg ", ""}
	})
	assert.Equal(t, "Luna", c.Firstname)
	assert.Equal(t, StatusActive, c.Status)
	assert.Equal(t, time.Date(2020, 4, 10, 0, 0, 0, 0, time.UTC), c.Birthday)
	assert.Equal(t, []string{"a.jpg"}, c.PhotoPaths)
}

func TestService_Create_ValidatesFieldsAndReferences(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	base := CreateInput{Firstname: "Tom", Gender: GenderMale, Birthday: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), OwnerID: 7}

	cases := []struct {
		name string
		mod  func(*CreateInput)
		want error
	}{
		{"no name", func(in *CreateInput) { in.Firstname = "" }, ErrInvalidInput},
		{"bad gender", func(in *CreateInput) { in.Gender = "Other" }, ErrInvalidInput},
		{"future birthday", func(in *CreateInput) { in.Birthday = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }, ErrInvalidInput},
		{"unknown owner", func(in *CreateInput) { in.OwnerID = 99 }, ErrInvalidInput},
		{"unknown breeder", func(in *CreateInput) { in.BreederID = ptr(int64(42)) }, ErrInvalidInput},
		{"negative weight", func(in *CreateInput) { in.CurrentWeightGrams = ptr(-5) }, ErrInvalidInput},
		{"missing dam", func(in *CreateInput) { in.DamID = ptr(int64(500)) }, ErrInvalidParent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mod(&in)
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_Create_ParentGenders(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	queen := mustCreate(t, svc, "Queen", GenderFemale)
	tom := mustCreate(t, svc, "Tom", GenderMale)

	_, err := svc.Create(ctx, CreateInput{Firstname: "Kit", Gender: GenderMale, Birthday: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), OwnerID: 7, DamID: &tom.ID})
	assert.ErrorIs(t, err, ErrInvalidParent)

	_, err = svc.Create(ctx, CreateInput{Firstname: "Kit", Gender: GenderMale, Birthday: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), OwnerID: 7, SireID: &queen.ID})
	assert.ErrorIs(t, err, ErrInvalidParent)

	kit := mustCreate(t, svc, "Kit", GenderMale, func(in *CreateInput) {
		in.DamID = &queen.ID
		in.SireID = &tom.ID
	})
	assert.Equal(t, queen.ID, *kit.DamID)
	assert.Equal(t, tom.ID, *kit.SireID)
}

func TestService_Update_RejectsSelfAndDescendantParents(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	grandpa := mustCreate(t, svc, "Grandpa", GenderMale)
	father := mustCreate(t, svc, "Father", GenderMale, func(in *CreateInput) { in.SireID = &grandpa.ID })
	son := mustCreate(t, svc, "Son", GenderMale, func(in *CreateInput) { in.SireID = &father.ID })

	_, err := svc.Update(ctx, grandpa.ID, UpdateInput{SireID: patch.Set(grandpa.ID)})
	assert.ErrorIs(t, err, ErrInvalidParent)

	_, err = svc.Update(ctx, grandpa.ID, UpdateInput{SireID: patch.Set(son.ID)})
	assert.ErrorIs(t, err, ErrInvalidParent, "el nieto no puede ser padre del abuelo")

	unrelated := mustCreate(t, svc, "Stranger", GenderMale)
	updated, err := svc.Update(ctx, grandpa.ID, UpdateInput{SireID: patch.Set(unrelated.ID)})
	require.NoError(t, err)
	assert.Equal(t, unrelated.ID, *updated.SireID)
}

func TestService_Update_GenderMustMatchRoleInOffspring(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	mum := mustCreate(t, svc, "Mum", GenderFemale)
	dad := mustCreate(t, svc, "Dad", GenderMale)
	mustCreate(t, svc, "Kit", GenderFemale, func(in *CreateInput) {
		in.DamID = &mum.ID
		in.SireID = &dad.ID
	})

	_, err := svc.Update(ctx, mum.ID, UpdateInput{Gender: ptr(GenderMale)})
	assert.ErrorIs(t, err, ErrInvalidParent)
	assert.Equal(t, GenderFemale, repo.byID[mum.ID].Gender)

	_, err = svc.Update(ctx, dad.ID, UpdateInput{Gender: ptr(GenderFemale)})
	assert.ErrorIs(t, err, ErrInvalidParent)
	assert.Equal(t, GenderMale, repo.byID[dad.ID].Gender)

	// Sin hijos el cambio de género es libre; mismo género tampoco molesta.
	lone := mustCreate(t, svc, "Lone", GenderFemale)
	updated, err := svc.Update(ctx, lone.ID, UpdateInput{Gender: ptr(GenderMale)})
	require.NoError(t, err)
	assert.Equal(t, GenderMale, updated.Gender)

	_, err = svc.Update(ctx, mum.ID, UpdateInput{Gender: ptr(GenderFemale)})
	require.NoError(t, err)
}

func TestService_Update_NullableClearsAndAbsentKeeps(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	queen := mustCreate(t, svc, "Queen", GenderFemale)
	kit := mustCreate(t, svc, "Kit", GenderFemale, func(in *CreateInput) {
		in.DamID = &queen.ID
		in.BreederID = ptr(int64(3))
		in.Colour = "seal point"
	})

	notes := "vacunada"
	updated, err := svc.Update(ctx, kit.ID, UpdateInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, queen.ID, *updated.DamID)
	assert.Equal(t, "seal point", updated.Colour)
	assert.Equal(t, "vacunada", updated.Notes)

	updated, err = svc.Update(ctx, kit.ID, UpdateInput{DamID: patch.Null[int64](), BreederID: patch.Null[int64]()})
	require.NoError(t, err)
	assert.Nil(t, updated.DamID)
	assert.Nil(t, updated.BreederID)
}

func TestService_Delete_ClearsChildReferences(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	queen := mustCreate(t, svc, "Queen", GenderFemale)
	kit := mustCreate(t, svc, "Kit", GenderMale, func(in *CreateInput) { in.DamID = &queen.ID })

	require.NoError(t, svc.Delete(ctx, queen.ID))
	assert.Nil(t, repo.byID[kit.ID].DamID)
	assert.ErrorIs(t, svc.Delete(ctx, queen.ID), ErrNotFound)
}

func TestService_Visibility(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mine := mustCreate(t, svc, "Mine", GenderFemale)
	other := mustCreate(t, svc, "Other", GenderMale, func(in *CreateInput) { in.OwnerID = 1 })

	_, err := svc.GetVisible(ctx, owner7, mine.ID)
	require.NoError(t, err)

	_, err = svc.GetVisible(ctx, owner7, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetVisible(ctx, admin, other.ID)
	require.NoError(t, err)

	items, err := svc.List(ctx, owner7, ListFilter{OwnerID: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].ID)

	items, err = svc.List(ctx, admin, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.List(ctx, auth.Claims{}, ListFilter{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_ListOffspring_ScopedToViewer(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	queen := mustCreate(t, svc, "Queen", GenderFemale)
	mustCreate(t, svc, "Kit A", GenderMale, func(in *CreateInput) { in.DamID = &queen.ID })
	mustCreate(t, svc, "Kit B", GenderFemale, func(in *CreateInput) {
		in.DamID = &queen.ID
		in.OwnerID = 1
	})

	items, err := svc.ListOffspring(ctx, admin, queen.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.ListOffspring(ctx, owner7, queen.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Kit A", items[0].Firstname)
}

func TestParseListFilter(t *testing.T) {
	q := map[string][]string{
		"q":         {"luna"},
		"gender":    {"Female"},
		"owner_id":  {"7"},
		"born_from": {"2020-01-01"},
		"limit":     {"20"},
	}
	f, err := ParseListFilter(q)
	require.NoError(t, err)
	assert.Equal(t, "luna", f.Text)
	assert.Equal(t, GenderFemale, f.Gender)
	assert.Equal(t, int64(7), f.OwnerID)
	require.NotNil(t, f.BornFrom)
	assert.Equal(t, 2020, f.BornFrom.Year())
	assert.Equal(t, 20, f.Limit)

	_, err = ParseListFilter(map[string][]string{"dam_id": {"x"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseListFilter(map[string][]string{"born_to": {"01/02/2020"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCat_DisplayName(t *testing.T) {
	assert.Equal(t, `Luna Blanca "Lulu"`, Cat{Firstname: "Luna", Surname: "Blanca", Callname: "Lulu"}.DisplayName())
	assert.Equal(t, "Luna", Cat{Firstname: "Luna"}.DisplayName())
}
