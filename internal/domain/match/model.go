package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-club/internal/domain/fee"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if status == "" {
		return StatusScheduled, nil
	}
	if _, ok := AllStatuses[status]; !ok {
		return "", fmt.Errorf("invalid match status: %s", raw)
	}
	return status, nil
}

// Match is a club fixture whose costs are shared between the participants.
type Match struct {
	ID              string
	Title           string
	Opponent        string
	Venue           string
	KickoffAt       time.Time
	Status          Status
	Rates           fee.RateConfig
	CoefficientMode fee.CoefficientMode
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("match title is required")
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("match kickoff time is required")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
	if m.CoefficientMode != fee.CoefficientDynamic && m.CoefficientMode != fee.CoefficientFixed {
		return fmt.Errorf("invalid coefficient mode: %s", m.CoefficientMode)
	}
	return m.Rates.Validate()
}

// ListFilter narrows match listings. Zero values match everything.
type ListFilter struct {
	Status Status
	Limit  int
}
