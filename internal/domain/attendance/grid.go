package attendance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	Sections = 3
	Parts    = 3
)

var (
	ErrInvalidFraction    = errors.New("attendance fraction must be 0, 0.5 or 1")
	ErrSlotOutOfRange     = errors.New("attendance slot out of range")
	ErrGoalkeeperConflict = errors.New("more than one goalkeeper in the same slot")
)

// Grid records one player's participation in a match as section x part cells.
// Attendance holds the fraction of the part played, Goalkeeper marks the parts
// where the player kept goal. Indexes are zero-based; the 1-based accessors
// mirror the wire format.
type Grid struct {
	Attendance [Sections][Parts]float64
	Goalkeeper [Sections][Parts]bool
}

// Slot identifies one cell by its 1-based section and part.
type Slot struct {
	Section int `json:"section"`
	Part    int `json:"part"`
}

func (s Slot) String() string {
	return fmt.Sprintf("section %d part %d", s.Section, s.Part)
}

func (s Slot) valid() bool {
	return s.Section >= 1 && s.Section <= Sections && s.Part >= 1 && s.Part <= Parts
}

// At returns the attendance fraction and goalkeeper flag for a 1-based slot.
// Out-of-range slots read as empty.
func (g Grid) At(section, part int) (float64, bool) {
	slot := Slot{Section: section, Part: part}
	if !slot.valid() {
		return 0, false
	}
	return g.Attendance[section-1][part-1], g.Goalkeeper[section-1][part-1]
}

// Set writes one 1-based slot.
func (g *Grid) Set(section, part int, fraction float64, goalkeeper bool) error {
	slot := Slot{Section: section, Part: part}
	if !slot.valid() {
		return fmt.Errorf("%w: %s", ErrSlotOutOfRange, slot)
	}
	if !validFraction(fraction) {
		return fmt.Errorf("%w: %s got %v", ErrInvalidFraction, slot, fraction)
	}
	g.Attendance[section-1][part-1] = fraction
	g.Goalkeeper[section-1][part-1] = goalkeeper
	return nil
}

// Validate checks every fraction is one of the allowed steps.
func (g Grid) Validate() error {
	for s := 0; s < Sections; s++ {
		for p := 0; p < Parts; p++ {
			if !validFraction(g.Attendance[s][p]) {
				return fmt.Errorf("%w: %s got %v", ErrInvalidFraction, Slot{Section: s + 1, Part: p + 1}, g.Attendance[s][p])
			}
		}
	}
	return nil
}

// TotalParts sums every attended cell, goalkeeper cells included.
func (g Grid) TotalParts() decimal.Decimal {
	total := decimal.Zero
	for s := 0; s < Sections; s++ {
		for p := 0; p < Parts; p++ {
			if g.Attendance[s][p] > 0 {
				total = total.Add(decimal.NewFromFloat(g.Attendance[s][p]))
			}
		}
	}
	return total
}

// IsEmpty reports whether the player took no part at all.
func (g Grid) IsEmpty() bool {
	return g.TotalParts().IsZero()
}

// KeeperSlots lists the slots where the player is flagged as goalkeeper.
func (g Grid) KeeperSlots() []Slot {
	var out []Slot
	for s := 0; s < Sections; s++ {
		for p := 0; p < Parts; p++ {
			if g.Goalkeeper[s][p] {
				out = append(out, Slot{Section: s + 1, Part: p + 1})
			}
		}
	}
	return out
}

func validFraction(v float64) bool {
	return v == 0 || v == 0.5 || v == 1
}
