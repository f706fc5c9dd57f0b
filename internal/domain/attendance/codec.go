package attendance

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"
)

// gridDocument is the persisted and wire shape of a Grid:
// {"attendance":{"1":{"1":1,...},...},"goalkeeper":{"1":{"1":true,...},...}}.
type gridDocument struct {
	Attendance map[string]map[string]float64 `json:"attendance"`
	Goalkeeper map[string]map[string]bool    `json:"goalkeeper"`
}

func (g Grid) MarshalJSON() ([]byte, error) {
	doc := gridDocument{
		Attendance: make(map[string]map[string]float64, Sections),
		Goalkeeper: make(map[string]map[string]bool, Sections),
	}
	for s := 0; s < Sections; s++ {
		sectionKey := strconv.Itoa(s + 1)
		doc.Attendance[sectionKey] = make(map[string]float64, Parts)
		doc.Goalkeeper[sectionKey] = make(map[string]bool, Parts)
		for p := 0; p < Parts; p++ {
			partKey := strconv.Itoa(p + 1)
			doc.Attendance[sectionKey][partKey] = g.Attendance[s][p]
			doc.Goalkeeper[sectionKey][partKey] = g.Goalkeeper[s][p]
		}
	}
	return sonic.Marshal(doc)
}

// UnmarshalJSON fills the grid from the nested document. Missing sections or
// parts stay zero, keys outside 1..3 are ignored. Fractions are not validated
// here; call Validate on write paths.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var doc gridDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode attendance grid: %w", err)
	}

	*g = FromDocument(doc.Attendance, doc.Goalkeeper)
	return nil
}

// FromDocument builds a grid from the nested 1-based maps of the wire format.
// Keys outside 1..3 are ignored and fractions are not validated.
func FromDocument(attendance map[string]map[string]float64, goalkeeper map[string]map[string]bool) Grid {
	var out Grid
	for sectionKey, parts := range attendance {
		s, ok := slotIndex(sectionKey, Sections)
		if !ok {
			continue
		}
		for partKey, fraction := range parts {
			p, ok := slotIndex(partKey, Parts)
			if !ok {
				continue
			}
			out.Attendance[s][p] = fraction
		}
	}
	for sectionKey, parts := range goalkeeper {
		s, ok := slotIndex(sectionKey, Sections)
		if !ok {
			continue
		}
		for partKey, keeper := range parts {
			p, ok := slotIndex(partKey, Parts)
			if !ok {
				continue
			}
			out.Goalkeeper[s][p] = keeper
		}
	}

	return out
}

// Value stores the grid as a JSON document column.
func (g Grid) Value() (driver.Value, error) {
	return g.MarshalJSON()
}

// Scan reads the JSON document column. NULL yields an empty grid.
func (g *Grid) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*g = Grid{}
		return nil
	case []byte:
		return g.UnmarshalJSON(v)
	case string:
		return g.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("scan attendance grid: unsupported type %T", src)
	}
}

func slotIndex(key string, limit int) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > limit {
		return 0, false
	}
	return n - 1, true
}
