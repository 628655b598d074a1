package notes

import "github.com/iudanet/quicknotes/internal/models"

// mergeLWW merges two versions of a note collection with last-write-wins
// semantics: for every id the copy with the later UpdatedAt survives, equal
// timestamps keep the base copy. Notes known only to other are put in front,
// the rest keeps the order of base.
func mergeLWW(base, other []*models.Note) []*models.Note {
	index := make(map[string]int, len(base))
	out := make([]*models.Note, 0, len(base)+len(other))
	for _, n := range base {
		if _, dup := index[n.ID]; dup {
			continue
		}
		index[n.ID] = len(out)
		out = append(out, n)
	}

	fresh := []*models.Note{}
	for _, n := range other {
		i, exists := index[n.ID]
		if !exists {
			index[n.ID] = -1
			fresh = append(fresh, n)
			continue
		}
		// Запись новее - заменяем
		if i >= 0 && n.UpdatedAt.After(out[i].UpdatedAt) {
			out[i] = n
		}
	}

	return append(fresh, out...)
}
