package attendance

import (
	"fmt"
	"sort"
	"strings"
)

// Conflict is a slot claimed by more than one goalkeeper.
type Conflict struct {
	Slot      Slot
	PlayerIDs []string
}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s: goalkeepers %s", c.Slot, strings.Join(c.PlayerIDs, ", "))
}

// GoalkeeperConflicts returns every slot where more than one player is flagged
// as goalkeeper, ordered by slot. Player ids inside a conflict are sorted.
func GoalkeeperConflicts(grids map[string]Grid) []Conflict {
	var keepers [Sections][Parts][]string
	for playerID, grid := range grids {
		for _, slot := range grid.KeeperSlots() {
			keepers[slot.Section-1][slot.Part-1] = append(keepers[slot.Section-1][slot.Part-1], playerID)
		}
	}

	var out []Conflict
	for s := 0; s < Sections; s++ {
		for p := 0; p < Parts; p++ {
			ids := keepers[s][p]
			if len(ids) < 2 {
				continue
			}
			sort.Strings(ids)
			out = append(out, Conflict{
				Slot:      Slot{Section: s + 1, Part: p + 1},
				PlayerIDs: ids,
			})
		}
	}
	return out
}
