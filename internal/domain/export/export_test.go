package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cat-registry/internal/domain/breeders"
	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/owners"
	"cat-registry/internal/domain/pedigree"
	"cat-registry/internal/ports/auth"
)

type fakeCats map[int64]cats.Cat

func (f fakeCats) List(_ context.Context, claims auth.Claims, _ cats.ListFilter) ([]cats.Cat, error) {
	out := []cats.Cat{}
	for i := int64(1); i <= int64(len(f))+10; i++ {
		if c, ok := f[i]; ok && cats.CanView(claims, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f fakeCats) GetVisible(ctx context.Context, claims auth.Claims, id int64) (cats.Cat, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return cats.Cat{}, err
	}
	if !cats.CanView(claims, c) {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, nil
}

func (f fakeCats) GetByID(_ context.Context, id int64) (cats.Cat, error) {
	c, ok := f[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, nil
}

type fakeOwners map[int64]owners.Owner

func (f fakeOwners) GetByID(_ context.Context, id int64) (owners.Owner, error) {
	o, ok := f[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

type fakeBreeders map[int64]breeders.Breeder

func (f fakeBreeders) GetByID(_ context.Context, id int64) (breeders.Breeder, error) {
	b, ok := f[id]
	if !ok {
		return breeders.Breeder{}, breeders.ErrNotFound
	}
	return b, nil
}

func id(v int64) *int64 { return &v }

func fixture(t *testing.T) *Service {
	t.Helper()
	day := func(y int) time.Time { return time.Date(y, 2, 14, 0, 0, 0, 0, time.UTC) }
	cs := fakeCats{
		1: {ID: 1, Firstname: "Kit", Surname: "Núñez", Gender: cats.GenderMale, Birthday: day(2023), OwnerID: 7, DamID: id(2), SireID: id(3), BreederID: id(1), Status: cats.StatusActive},
		2: {ID: 2, Firstname: "Mum", Gender: cats.GenderFemale, Birthday: day(2019), OwnerID: 7, SireID: id(99)},
		3: {ID: 3, Firstname: "Dad", Gender: cats.GenderMale, Birthday: day(2018), OwnerID: 8},
	}
	ow := fakeOwners{7: {ID: 7, Firstname: "Ana", Surname: "Pérez"}, 8: {ID: 8, Firstname: "Bo"}}
	bs := fakeBreeders{1: {ID: 1, Name: "Chatterie du Lac"}}
	svc, err := NewService(cs, ow, bs, pedigree.NewResolver(cs), DefaultPDFDepth)
	require.NoError(t, err)
	return svc
}

func TestWriteCatsXLSX(t *testing.T) {
	svc := fixture(t)
	var buf bytes.Buffer

	n, err := svc.WriteCatsXLSX(context.Background(), &buf, auth.Claims{OwnerID: 1, Permission: auth.PermissionAdmin}, cats.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(catsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Dam", rows[0][13])

	kit := rows[1]
	assert.Equal(t, "Kit Núñez", kit[1])
	assert.Equal(t, "Male", kit[3])
	assert.Equal(t, "2023-02-14", kit[4])
	assert.Equal(t, "Mum", kit[13])
	assert.Equal(t, "Dad", kit[14])
	assert.Equal(t, "Ana Pérez", kit[15])
	assert.Equal(t, "Chatterie du Lac", kit[16])
}

func TestWriteCatsXLSX_ScopedToOwner(t *testing.T) {
	svc := fixture(t)
	var buf bytes.Buffer

	n, err := svc.WriteCatsXLSX(context.Background(), &buf, auth.Claims{OwnerID: 8, Permission: auth.PermissionOwner}, cats.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWritePedigreePDF(t *testing.T) {
	svc := fixture(t)
	var buf bytes.Buffer

	tree, err := svc.WritePedigreePDF(context.Background(), &buf, auth.Claims{OwnerID: 7, Permission: auth.PermissionOwner}, 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	require.Len(t, tree.Issues, 1, "sire 99 de Mum no existe")
	assert.Equal(t, pedigree.IssueDangling, tree.Issues[0].Kind)

	_, err = svc.WritePedigreePDF(context.Background(), &bytes.Buffer{}, auth.Claims{OwnerID: 8, Permission: auth.PermissionOwner}, 1)
	assert.ErrorIs(t, err, cats.ErrNotFound)
}

func TestPedigreeLayout_FourGenerationsBySlot(t *testing.T) {
	svc := fixture(t)
	tree, err := svc.WritePedigreePDF(context.Background(), &bytes.Buffer{}, auth.Claims{OwnerID: 1, Permission: auth.PermissionAdmin}, 1)
	require.NoError(t, err)

	l := buildLayout(svc.Depth(), pedigree.FlattenByGeneration(tree.Root))
	require.Len(t, l.columns, 4)
	assert.Equal(t, "Great-grandparents", l.columns[3].title)

	for g, col := range l.columns {
		assert.Len(t, col.cells, 1<<g)
	}

	parents := l.columns[1].cells
	require.NotNil(t, parents[0].entry)
	require.NotNil(t, parents[1].entry)
	assert.Equal(t, int64(2), parents[0].entry.ID, "dam arriba")
	assert.Equal(t, int64(3), parents[1].entry.ID, "sire abajo")
	assert.Less(t, parents[0].y, parents[1].y)

	// Mum y Dad no tienen padres conocidos: abuelos y bisabuelos vacíos.
	for _, col := range l.columns[2:] {
		for _, c := range col.cells {
			assert.Nil(t, c.entry)
		}
	}
}

func TestNewService_RejectsDepthOutOfRange(t *testing.T) {
	cs := fakeCats{}
	_, err := NewService(cs, fakeOwners{}, fakeBreeders{}, pedigree.NewResolver(cs), MaxPDFDepth+1)
	assert.ErrorIs(t, err, ErrInvalidDepth)

	_, err = NewService(cs, fakeOwners{}, fakeBreeders{}, pedigree.NewResolver(cs), -1)
	assert.ErrorIs(t, err, ErrInvalidDepth)

	svc, err := NewService(cs, fakeOwners{}, fakeBreeders{}, pedigree.NewResolver(cs), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Depth())
}

func TestGenerationTitle(t *testing.T) {
	assert.Equal(t, "Grandparents", generationTitle(2))
	assert.Equal(t, "Great-grandparents", generationTitle(3))
	assert.Equal(t, "Great-Great-grandparents", generationTitle(4))
}
