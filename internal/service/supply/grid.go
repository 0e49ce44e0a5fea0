package supply

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidGrid = errors.New("invalid supply grid")

// NewGrid returns every interval step in [startHour, endHour) on date's calendar day.
func NewGrid(date time.Time, startHour, endHour int, interval time.Duration) ([]time.Time, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval %v must be positive: %w", interval, ErrInvalidGrid)
	}
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("hours [%d, %d) out of range: %w", startHour, endHour, ErrInvalidGrid)
	}

	year, month, day := date.Date()
	start := time.Date(year, month, day, startHour, 0, 0, 0, date.Location())
	end := time.Date(year, month, day, endHour, 0, 0, 0, date.Location())

	grid := make([]time.Time, 0, int(end.Sub(start)/interval)+1)
	for t := start; t.Before(end); t = t.Add(interval) {
		grid = append(grid, t)
	}

	return grid, nil
}
