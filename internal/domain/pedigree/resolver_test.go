package pedigree

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-registry/internal/domain/cats"
)

// fakeStore cuenta lookups y permite inyectar fallas.
type fakeStore struct {
	byID  map[int64]cats.Cat
	calls int
	fail  error
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (cats.Cat, error) {
	s.calls++
	if s.fail != nil {
		return cats.Cat{}, s.fail
	}
	c, ok := s.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, nil
}

func newStore(cs ...cats.Cat) *fakeStore {
	s := &fakeStore{byID: map[int64]cats.Cat{}}
	for _, c := range cs {
		s.byID[c.ID] = c
	}
	return s
}

func cat(id int64, name string, g cats.Gender, dam, sire int64) cats.Cat {
	c := cats.Cat{
		ID:        id,
		Firstname: name,
		Gender:    g,
		Birthday:  time.Date(2015+int(id), 3, 1, 0, 0, 0, 0, time.UTC),
		Microchip: "chip-" + name,
	}
	if dam > 0 {
		c.DamID = &dam
	}
	if sire > 0 {
		c.SireID = &sire
	}
	return c
}

func TestResolve_UnknownCatIsAbsent(t *testing.T) {
	r := NewResolver(newStore())

	for _, depth := range []int{0, 2, 5} {
		tree, err := r.ResolveAncestry(context.Background(), 404, depth)
		require.NoError(t, err)
		assert.False(t, tree.Found())
		assert.Nil(t, tree.Root)
	}
}

func TestResolve_NoParentsIsSingleNode(t *testing.T) {
	r := NewResolver(newStore(cat(1, "Solo", cats.GenderFemale, 0, 0)))

	for _, depth := range []int{0, 1, 2, 6} {
		tree, err := r.ResolveAncestry(context.Background(), 1, depth)
		require.NoError(t, err)
		require.NotNil(t, tree.Root)
		assert.Nil(t, tree.Root.Dam)
		assert.Nil(t, tree.Root.Sire)
		assert.Empty(t, tree.Issues)
	}
}

func TestResolve_DepthZeroOnlyRoot(t *testing.T) {
	store := newStore(
		cat(1, "X", cats.GenderMale, 2, 3),
		cat(2, "Y", cats.GenderFemale, 0, 0),
		cat(3, "Z", cats.GenderMale, 0, 0),
	)
	r := NewResolver(store)

	tree, err := r.ResolveAncestry(context.Background(), 1, 0)
	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	assert.Equal(t, "X", tree.Root.Cat.Name)
	assert.Equal(t, "chip-X", tree.Root.Cat.Microchip)
	assert.Nil(t, tree.Root.Dam)
	assert.Nil(t, tree.Root.Sire)
	assert.Equal(t, 1, store.calls)
}

func TestResolve_ParentsScenario(t *testing.T) {
	r := NewResolver(newStore(
		cat(1, "X", cats.GenderMale, 2, 3),
		cat(2, "Y", cats.GenderFemale, 0, 0),
		cat(3, "Z", cats.GenderMale, 0, 0),
	))

	tree, err := r.ResolveAncestry(context.Background(), 1, 2)
	require.NoError(t, err)

	root := tree.Root
	require.NotNil(t, root)
	assert.Equal(t, int64(1), root.Cat.ID)

	require.NotNil(t, root.Dam)
	assert.Equal(t, "Y", root.Dam.Cat.Name)
	assert.Equal(t, cats.GenderFemale, root.Dam.Cat.Gender)
	assert.Nil(t, root.Dam.Dam)
	assert.Nil(t, root.Dam.Sire)

	require.NotNil(t, root.Sire)
	assert.Equal(t, "Z", root.Sire.Cat.Name)
	assert.Nil(t, root.Sire.Dam)
	assert.Nil(t, root.Sire.Sire)
	assert.Equal(t, 1, root.Sire.Depth)
}

func TestResolve_DepthBoundOnSireChain(t *testing.T) {
	// A -> B -> C -> D -> E, cada uno con el siguiente como sire
	store := newStore(
		cat(1, "A", cats.GenderMale, 0, 2),
		cat(2, "B", cats.GenderMale, 0, 3),
		cat(3, "C", cats.GenderMale, 0, 4),
		cat(4, "D", cats.GenderMale, 0, 5),
		cat(5, "E", cats.GenderMale, 0, 0),
	)
	r := NewResolver(store)

	tree, err := r.ResolveAncestry(context.Background(), 1, 2)
	require.NoError(t, err)

	names := []string{}
	for n := tree.Root; n != nil; n = n.Sire {
		names = append(names, n.Cat.Name)
		assert.Nil(t, n.Dam)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Equal(t, 3, store.calls, "D no se consulta")
	assert.Equal(t, store.calls, tree.Lookups)
}

func TestResolve_LookupBound(t *testing.T) {
	// árbol completo de 4 generaciones: ids 1..15, dam de i = 2i, sire = 2i+1
	store := newStore()
	for i := int64(1); i <= 15; i++ {
		var dam, sire int64
		if 2*i+1 <= 15 {
			dam, sire = 2*i, 2*i+1
		}
		g := cats.GenderMale
		if i%2 == 0 {
			g = cats.GenderFemale
		}
		store.byID[i] = cat(i, "c", g, dam, sire)
	}
	r := NewResolver(store)

	tree, err := r.ResolveAncestry(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7, tree.Lookups)

	store.calls = 0
	tree, err = r.ResolveAncestry(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 15, tree.Lookups)
	assert.Equal(t, 15, store.calls)
}

func TestResolve_Idempotent(t *testing.T) {
	r := NewResolver(newStore(
		cat(1, "X", cats.GenderMale, 2, 3),
		cat(2, "Y", cats.GenderFemale, 4, 0),
		cat(3, "Z", cats.GenderMale, 0, 0),
		cat(4, "W", cats.GenderFemale, 0, 0),
	))

	a, err := r.ResolveAncestry(context.Background(), 1, 3)
	require.NoError(t, err)
	b, err := r.ResolveAncestry(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestResolve_DanglingDamIsAbsentAndReported(t *testing.T) {
	r := NewResolver(newStore(
		cat(1, "X", cats.GenderMale, 99, 3),
		cat(3, "Z", cats.GenderMale, 0, 0),
	))

	tree, err := r.ResolveAncestry(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	assert.Nil(t, tree.Root.Dam)
	require.NotNil(t, tree.Root.Sire)

	require.Len(t, tree.Issues, 1)
	assert.Equal(t, Issue{Kind: IssueDangling, CatID: 1, Role: cats.RoleDam, RefID: 99}, tree.Issues[0])
	assert.Equal(t, []string{"dangling"}, tree.IssueKinds())
}

func TestResolve_SelfSireIsCycle(t *testing.T) {
	store := newStore(cat(1, "X", cats.GenderMale, 0, 1))
	r := NewResolver(store)

	tree, err := r.ResolveAncestry(context.Background(), 1, 4)
	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	assert.Nil(t, tree.Root.Sire, "no se repite el mismo nodo")
	require.Len(t, tree.Issues, 1)
	assert.Equal(t, IssueCycle, tree.Issues[0].Kind)
	assert.Equal(t, cats.RoleSire, tree.Issues[0].Role)
	assert.Equal(t, 1, store.calls)
}

func TestResolve_LongerCycle(t *testing.T) {
	// 1.sire = 2, 2.dam = 3, 3.sire = 1
	r := NewResolver(newStore(
		cat(1, "A", cats.GenderMale, 0, 2),
		cat(2, "B", cats.GenderMale, 3, 0),
		cat(3, "C", cats.GenderFemale, 0, 1),
	))

	tree, err := r.ResolveAncestry(context.Background(), 1, 6)
	require.NoError(t, err)
	require.NotNil(t, tree.Root.Sire)
	require.NotNil(t, tree.Root.Sire.Dam)
	assert.Nil(t, tree.Root.Sire.Dam.Sire)
	require.Len(t, tree.Issues, 1)
	assert.Equal(t, Issue{Kind: IssueCycle, CatID: 3, Role: cats.RoleSire, RefID: 1}, tree.Issues[0])
}

func TestResolve_InbreedingIsNotACycle(t *testing.T) {
	// el mismo abuelo (4) por ambas ramas
	r := NewResolver(newStore(
		cat(1, "Kit", cats.GenderMale, 2, 3),
		cat(2, "Dam", cats.GenderFemale, 0, 4),
		cat(3, "Sire", cats.GenderMale, 0, 4),
		cat(4, "Grandsire", cats.GenderMale, 0, 0),
	))

	tree, err := r.ResolveAncestry(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Empty(t, tree.Issues)
	require.NotNil(t, tree.Root.Dam.Sire)
	require.NotNil(t, tree.Root.Sire.Sire)
	assert.Equal(t, int64(4), tree.Root.Dam.Sire.Cat.ID)
	assert.Equal(t, int64(4), tree.Root.Sire.Sire.Cat.ID)
}

func TestResolve_Errors(t *testing.T) {
	store := newStore(cat(1, "X", cats.GenderMale, 0, 0))
	r := NewResolver(store)

	_, err := r.ResolveAncestry(context.Background(), 1, -1)
	assert.ErrorIs(t, err, ErrInvalidDepth)

	boom := errors.New("connection reset")
	store.fail = boom
	_, err = r.ResolveAncestry(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)

	store.fail = nil
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.ResolveAncestry(ctx, 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
