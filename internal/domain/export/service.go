package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cat-registry/internal/domain/breeders"
	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/owners"
	"cat-registry/internal/domain/pedigree"
	"cat-registry/internal/ports/auth"
)

const (
	// DefaultPDFDepth da la tabla de 4 columnas (gato, padres, abuelos, bisabuelos).
	DefaultPDFDepth = 3
	// MaxPDFDepth: con más generaciones las celdas de la última columna no entran en A4.
	MaxPDFDepth = 4
)

var ErrInvalidDepth = errors.New("invalid pdf depth")

type CatReader interface {
	List(ctx context.Context, claims auth.Claims, filter cats.ListFilter) ([]cats.Cat, error)
	GetVisible(ctx context.Context, claims auth.Claims, id int64) (cats.Cat, error)
	GetByID(ctx context.Context, id int64) (cats.Cat, error)
}

type OwnerReader interface {
	GetByID(ctx context.Context, id int64) (owners.Owner, error)
}

type BreederReader interface {
	GetByID(ctx context.Context, id int64) (breeders.Breeder, error)
}

type Service struct {
	cats     CatReader
	owners   OwnerReader
	breeders BreederReader
	resolver *pedigree.Resolver
	depth    int
}

func NewService(catsSvc CatReader, ownersSvc OwnerReader, breedersSvc BreederReader, resolver *pedigree.Resolver, pdfDepth int) (*Service, error) {
	if pdfDepth < 0 || pdfDepth > MaxPDFDepth {
		return nil, fmt.Errorf("%w: %d (0-%d)", ErrInvalidDepth, pdfDepth, MaxPDFDepth)
	}
	return &Service{
		cats:     catsSvc,
		owners:   ownersSvc,
		breeders: breedersSvc,
		resolver: resolver,
		depth:    pdfDepth,
	}, nil
}

// Depth es la cantidad de generaciones de ancestros que entran en el PDF.
func (s *Service) Depth() int { return s.depth }

// names resuelve y cachea nombres de owners, breeders y padres durante un export.
// Referencias inexistentes quedan en "".
type names struct {
	ctx      context.Context
	svc      *Service
	owners   map[int64]string
	breeders map[int64]string
	cats     map[int64]string
}

func (s *Service) newNames(ctx context.Context) *names {
	return &names{
		ctx:      ctx,
		svc:      s,
		owners:   map[int64]string{},
		breeders: map[int64]string{},
		cats:     map[int64]string{},
	}
}

func (n *names) owner(id int64) (string, error) {
	if v, ok := n.owners[id]; ok {
		return v, nil
	}
	o, err := n.svc.owners.GetByID(n.ctx, id)
	if err != nil && !errors.Is(err, owners.ErrNotFound) {
		return "", err
	}
	n.owners[id] = o.DisplayName()
	return n.owners[id], nil
}

func (n *names) breeder(id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	if v, ok := n.breeders[*id]; ok {
		return v, nil
	}
	b, err := n.svc.breeders.GetByID(n.ctx, *id)
	if err != nil && !errors.Is(err, breeders.ErrNotFound) {
		return "", err
	}
	n.breeders[*id] = b.Name
	return b.Name, nil
}

func (n *names) cat(id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	if v, ok := n.cats[*id]; ok {
		return v, nil
	}
	c, err := n.svc.cats.GetByID(n.ctx, *id)
	if err != nil && !errors.Is(err, cats.ErrNotFound) {
		return "", err
	}
	name := ""
	if err == nil {
		name = c.DisplayName()
	}
	n.cats[*id] = name
	return name, nil
}

// WriteCatsXLSX escribe el listado filtrado (mismo scoping que GET /cats).
func (s *Service) WriteCatsXLSX(ctx context.Context, w io.Writer, claims auth.Claims, filter cats.ListFilter) (int, error) {
	items, err := s.cats.List(ctx, claims, filter)
	if err != nil {
		return 0, err
	}
	if err := writeWorkbook(w, items, s.newNames(ctx)); err != nil {
		return 0, err
	}
	return len(items), nil
}

// WritePedigreePDF escribe el perfil y la tabla genealógica. Devuelve el árbol
// para que el caller loguee sus issues.
func (s *Service) WritePedigreePDF(ctx context.Context, w io.Writer, claims auth.Claims, catID int64) (pedigree.Tree, error) {
	c, err := s.cats.GetVisible(ctx, claims, catID)
	if err != nil {
		return pedigree.Tree{}, err
	}
	tree, err := s.resolver.ResolveAncestry(ctx, catID, s.depth)
	if err != nil {
		return pedigree.Tree{}, err
	}
	if !tree.Found() {
		return pedigree.Tree{}, cats.ErrNotFound
	}

	nm := s.newNames(ctx)
	p := profile{cat: c}
	if p.owner, err = nm.owner(c.OwnerID); err != nil {
		return pedigree.Tree{}, err
	}
	if p.breeder, err = nm.breeder(c.BreederID); err != nil {
		return pedigree.Tree{}, err
	}

	if err := writePedigreePDF(w, p, s.depth, pedigree.FlattenByGeneration(tree.Root), len(tree.Issues)); err != nil {
		return pedigree.Tree{}, err
	}
	return tree, nil
}
