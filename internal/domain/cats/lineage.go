package cats

import (
	"context"
	"errors"
	"fmt"
)

// maxLineageWalk acota la búsqueda de descendientes al asignar padres.
const maxLineageWalk = 32

// checkParents valida dam/sire: que existan, el género correcto y que no
// cierren un ciclo en el grafo.
func (s *Service) checkParents(ctx context.Context, c Cat) error {
	for _, p := range []struct {
		role   ParentRole
		id     *int64
		gender Gender
	}{
		{RoleDam, c.DamID, GenderFemale},
		{RoleSire, c.SireID, GenderMale},
	} {
		if p.id == nil {
			continue
		}
		if c.ID > 0 && *p.id == c.ID {
			return fmt.Errorf("%w: cat cannot be its own %s", ErrInvalidParent, p.role)
		}
		parent, err := s.repo.GetByID(ctx, *p.id)
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: %s %d not found", ErrInvalidParent, p.role, *p.id)
		}
		if err != nil {
			return err
		}
		if parent.Gender != p.gender {
			return fmt.Errorf("%w: %s must be %s", ErrInvalidParent, p.role, p.gender)
		}
		if c.ID > 0 {
			desc, err := s.isAncestor(ctx, c.ID, parent)
			if err != nil {
				return err
			}
			if desc {
				return fmt.Errorf("%w: %s %d descends from cat %d", ErrInvalidParent, p.role, parent.ID, c.ID)
			}
		}
	}
	return nil
}

// checkOffspringRoles impide cambiar el género de un gato que ya figura como
// dam o sire de otro: una hembra no puede quedar como sire ni un macho como dam.
func (s *Service) checkOffspringRoles(ctx context.Context, c Cat) error {
	kids, err := s.repo.ListOffspring(ctx, c.ID)
	if err != nil {
		return err
	}
	for _, k := range kids {
		if k.DamID != nil && *k.DamID == c.ID && c.Gender != GenderFemale {
			return fmt.Errorf("%w: cat %d is dam of cat %d and must stay %s", ErrInvalidParent, c.ID, k.ID, GenderFemale)
		}
		if k.SireID != nil && *k.SireID == c.ID && c.Gender != GenderMale {
			return fmt.Errorf("%w: cat %d is sire of cat %d and must stay %s", ErrInvalidParent, c.ID, k.ID, GenderMale)
		}
	}
	return nil
}

// isAncestor recorre hacia arriba desde start buscando targetID.
// Referencias colgadas se ignoran; el recorrido queda acotado por maxLineageWalk
// generaciones y un set de visitados.
func (s *Service) isAncestor(ctx context.Context, targetID int64, start Cat) (bool, error) {
	visited := map[int64]bool{start.ID: true}
	level := []Cat{start}

	for gen := 0; gen < maxLineageWalk && len(level) > 0; gen++ {
		var next []Cat
		for _, cur := range level {
			for _, pid := range []*int64{cur.DamID, cur.SireID} {
				if pid == nil || visited[*pid] {
					continue
				}
				if *pid == targetID {
					return true, nil
				}
				visited[*pid] = true

				p, err := s.repo.GetByID(ctx, *pid)
				if errors.Is(err, ErrNotFound) {
					continue
				}
				if err != nil {
					return false, err
				}
				next = append(next, p)
			}
		}
		level = next
	}
	return false, nil
}
