package slot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	FirstHour = 7
	LastHour  = 22
	Count     = LastHour - FirstHour + 1
)

var ErrInvalidSlot = errors.New("invalid time slot")

// Slot is one bookable hour on the daily grid.
type Slot struct {
	Label string `json:"label" example:"7:00"`
	Value string `json:"value" example:"07:00"`
}

// Grid returns the fixed daily grid, 07:00 through 22:00.
func Grid() []Slot {
	grid := make([]Slot, 0, Count)
	for hour := FirstHour; hour <= LastHour; hour++ {
		grid = append(grid, Slot{
			Label: fmt.Sprintf("%d:00", hour),
			Value: fmt.Sprintf("%02d:00", hour),
		})
	}
	return grid
}

// Normalize turns "7:00", "07:00" or "07:00:00" into the canonical "07:00".
func Normalize(raw string) (string, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, raw)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, raw)
	}
	for _, p := range parts[1:] {
		if p != "00" {
			return "", fmt.Errorf("%w: %q is not on the hour", ErrInvalidSlot, raw)
		}
	}
	if hour < FirstHour || hour > LastHour {
		return "", fmt.Errorf("%w: %q is outside %02d:00-%02d:00", ErrInvalidSlot, raw, FirstHour, LastHour)
	}

	return fmt.Sprintf("%02d:00", hour), nil
}

// Clean normalizes, deduplicates and sorts the given slots. The first invalid
// slot aborts with an error.
func Clean(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		s, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
