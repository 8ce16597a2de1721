package pedigree

import (
	"time"

	"cat-registry/internal/domain/cats"
)

// Summary son los campos de display de un gato dentro del árbol.
type Summary struct {
	ID        int64
	Name      string
	Callname  string
	Gender    cats.Gender
	Birthday  time.Time
	Microchip string
}

// Node es un gato del árbol con sus dos padres opcionales.
// Dam/Sire nil = sin padre registrado, fuera de profundidad o referencia rota.
type Node struct {
	Cat   Summary
	Depth int // 0 = raíz
	Dam   *Node
	Sire  *Node
}

type IssueKind string

const (
	// IssueDangling: dam_id/sire_id apunta a un gato que ya no existe.
	IssueDangling IssueKind = "dangling"
	// IssueCycle: el padre ya está en el camino desde la raíz.
	IssueCycle IssueKind = "cycle"
)

// Issue describe una referencia de padre que no se pudo seguir.
type Issue struct {
	Kind  IssueKind
	CatID int64 // el hijo que tiene la referencia
	Role  cats.ParentRole
	RefID int64
}

// Tree es el resultado de ResolveAncestry. Root nil = el gato no existe.
type Tree struct {
	Root    *Node
	Issues  []Issue
	Lookups int
}

func (t Tree) Found() bool { return t.Root != nil }

func (t Tree) IssueKinds() []string {
	out := make([]string, 0, len(t.Issues))
	for _, is := range t.Issues {
		out = append(out, string(is.Kind))
	}
	return out
}

// Generation agrupa los nodos de una misma profundidad en orden dam antes que sire.
type Generation struct {
	Number  int
	Entries []Entry
}

// Entry es un registro listo para mostrar. Slot es la posición dentro de la
// generación si estuviera completa (dam de s = 2s, sire de s = 2s+1).
type Entry struct {
	ID       int64
	Slot     int
	Name     string
	Gender   cats.Gender
	Birthday time.Time
}
