package pedigree

import (
	"context"
	"errors"
	"fmt"

	"cat-registry/internal/domain/cats"
)

const DefaultMaxDepth = 2

var ErrInvalidDepth = errors.New("max depth must be non-negative")

// CatLookup es el único acceso a datos que necesita el resolver.
// GetByID debe devolver cats.ErrNotFound si el id no existe.
type CatLookup interface {
	GetByID(ctx context.Context, id int64) (cats.Cat, error)
}

type Resolver struct {
	cats CatLookup
}

func NewResolver(lookup CatLookup) *Resolver {
	return &Resolver{cats: lookup}
}

// walk guarda el estado de una resolución. path son los ids desde la raíz
// hasta el nodo actual; un mismo gato en ramas distintas (consanguinidad) es válido.
type walk struct {
	maxDepth int
	path     map[int64]bool
	tree     *Tree
}

// ResolveAncestry arma el árbol de ancestros de catID hasta maxDepth generaciones.
// Un id inexistente devuelve Tree sin Root y sin error. Solo se devuelve error
// si el store falla o el contexto se cancela.
func (r *Resolver) ResolveAncestry(ctx context.Context, catID int64, maxDepth int) (Tree, error) {
	if maxDepth < 0 {
		return Tree{}, ErrInvalidDepth
	}

	tree := Tree{}
	w := &walk{maxDepth: maxDepth, path: map[int64]bool{}, tree: &tree}

	root, found, err := r.lookup(ctx, w, catID)
	if err != nil || !found {
		return tree, err
	}

	tree.Root, err = r.build(ctx, w, root, 0)
	if err != nil {
		return Tree{}, err
	}
	return tree, nil
}

func (r *Resolver) build(ctx context.Context, w *walk, c cats.Cat, depth int) (*Node, error) {
	n := &Node{Cat: summarize(c), Depth: depth}
	if depth >= w.maxDepth {
		return n, nil
	}

	w.path[c.ID] = true
	defer delete(w.path, c.ID)

	var err error
	if n.Dam, err = r.parent(ctx, w, c, cats.RoleDam, depth+1); err != nil {
		return nil, err
	}
	if n.Sire, err = r.parent(ctx, w, c, cats.RoleSire, depth+1); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *Resolver) parent(ctx context.Context, w *walk, child cats.Cat, role cats.ParentRole, depth int) (*Node, error) {
	pid := child.ParentID(role)
	if pid == nil {
		return nil, nil
	}
	if w.path[*pid] {
		w.tree.Issues = append(w.tree.Issues, Issue{Kind: IssueCycle, CatID: child.ID, Role: role, RefID: *pid})
		return nil, nil
	}

	p, found, err := r.lookup(ctx, w, *pid)
	if err != nil {
		return nil, err
	}
	if !found {
		w.tree.Issues = append(w.tree.Issues, Issue{Kind: IssueDangling, CatID: child.ID, Role: role, RefID: *pid})
		return nil, nil
	}
	return r.build(ctx, w, p, depth)
}

func (r *Resolver) lookup(ctx context.Context, w *walk, id int64) (cats.Cat, bool, error) {
	if err := ctx.Err(); err != nil {
		return cats.Cat{}, false, err
	}
	w.tree.Lookups++

	c, err := r.cats.GetByID(ctx, id)
	if errors.Is(err, cats.ErrNotFound) {
		return cats.Cat{}, false, nil
	}
	if err != nil {
		return cats.Cat{}, false, fmt.Errorf("lookup cat %d: %w", id, err)
	}
	return c, true, nil
}

func summarize(c cats.Cat) Summary {
	return Summary{
		ID:        c.ID,
		Name:      c.DisplayName(),
		Callname:  c.Callname,
		Gender:    c.Gender,
		Birthday:  c.Birthday,
		Microchip: c.Microchip,
	}
}
