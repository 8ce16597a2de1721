package pedigree

// FlattenByGeneration recorre el árbol por niveles (dam antes que sire) y
// devuelve una Generation por profundidad. El orden es estable: define las
// columnas del PDF.
func FlattenByGeneration(root *Node) []Generation {
	if root == nil {
		return nil
	}

	type item struct {
		n    *Node
		slot int
	}

	var out []Generation
	level := []item{{n: root, slot: 0}}

	for gen := 0; len(level) > 0; gen++ {
		g := Generation{Number: gen, Entries: make([]Entry, 0, len(level))}
		var next []item

		for _, it := range level {
			g.Entries = append(g.Entries, Entry{
				ID:       it.n.Cat.ID,
				Slot:     it.slot,
				Name:     it.n.Cat.Name,
				Gender:   it.n.Cat.Gender,
				Birthday: it.n.Cat.Birthday,
			})
			if it.n.Dam != nil {
				next = append(next, item{n: it.n.Dam, slot: 2 * it.slot})
			}
			if it.n.Sire != nil {
				next = append(next, item{n: it.n.Sire, slot: 2*it.slot + 1})
			}
		}

		out = append(out, g)
		level = next
	}
	return out
}
