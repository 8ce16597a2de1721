package pedigree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-registry/internal/domain/cats"
)

func TestFlatten_Nil(t *testing.T) {
	assert.Nil(t, FlattenByGeneration(nil))
}

func TestFlatten_DamBeforeSireAndSlots(t *testing.T) {
	r := NewResolver(newStore(
		cat(1, "Kit", cats.GenderMale, 2, 3),
		cat(2, "Mum", cats.GenderFemale, 0, 5),
		cat(3, "Dad", cats.GenderMale, 6, 7),
		cat(5, "MumSire", cats.GenderMale, 0, 0),
		cat(6, "DadDam", cats.GenderFemale, 0, 0),
		cat(7, "DadSire", cats.GenderMale, 0, 0),
	))

	tree, err := r.ResolveAncestry(context.Background(), 1, 2)
	require.NoError(t, err)

	gens := FlattenByGeneration(tree.Root)
	require.Len(t, gens, 3)

	names := func(g Generation) []string {
		out := []string{}
		for _, e := range g.Entries {
			out = append(out, e.Name)
		}
		return out
	}
	slots := func(g Generation) []int {
		out := []int{}
		for _, e := range g.Entries {
			out = append(out, e.Slot)
		}
		return out
	}

	assert.Equal(t, 0, gens[0].Number)
	assert.Equal(t, []string{"Kit"}, names(gens[0]))
	assert.Equal(t, []string{"Mum", "Dad"}, names(gens[1]))
	assert.Equal(t, []int{0, 1}, slots(gens[1]))
	assert.Equal(t, []string{"MumSire", "DadDam", "DadSire"}, names(gens[2]))
	assert.Equal(t, []int{1, 2, 3}, slots(gens[2]))
	assert.Equal(t, cats.GenderFemale, gens[2].Entries[1].Gender)
	assert.Equal(t, 2021, gens[2].Entries[1].Birthday.Year())
}

func TestParseDepth(t *testing.T) {
	d, err := ParseDepth("", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	d, err = ParseDepth("0", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = ParseDepth("40", 2)
	require.NoError(t, err)
	assert.Equal(t, MaxRequestDepth, d)

	_, err = ParseDepth("-1", 2)
	assert.ErrorIs(t, err, ErrInvalidDepth)

	_, err = ParseDepth("two", 2)
	assert.ErrorIs(t, err, ErrInvalidDepth)
}
