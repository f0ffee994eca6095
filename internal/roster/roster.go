package roster

import (
	"sort"
	"strings"
)

// BlankRows is the number of empty rows offered when a day has no players.
const BlankRows = 8

// Entry is one roster row of the booking form.
type Entry struct {
	PlayerID *int64 `json:"id,omitempty"`
	Name     string `json:"name"`
	Fee      *int64 `json:"fee"`
	Paid     bool   `json:"paid"`
}

func (e Entry) Named() bool {
	return Key(e.Name) != ""
}

// Key is the identity of a player name: trimmed and case-folded.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Blank returns n empty rows.
func Blank(n int) []Entry {
	return make([]Entry, n)
}

// Named returns the rows that carry a non-blank name.
func Named(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Named() {
			out = append(out, e)
		}
	}
	return out
}

// CountNamed counts rows with a non-blank name.
func CountNamed(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Named() {
			n++
		}
	}
	return n
}

// Known is a player already stored, used to merge identities into form rows.
type Known struct {
	ID   int64
	Name string
}

// Dedupe collapses form rows that name the same player onto the first such
// row and trims names. A row without an id adopts the id of a known player
// with the same name. Blank rows are kept in place. If any duplicate row is
// paid, the surviving row is paid.
func Dedupe(entries []Entry, known []Known) []Entry {
	byName := make(map[string]int64, len(known))
	for _, k := range known {
		byName[Key(k.Name)] = k.ID
	}

	out := make([]Entry, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if !e.Named() {
			out = append(out, e)
			continue
		}

		e.Name = strings.TrimSpace(e.Name)
		key := Key(e.Name)
		if i, ok := index[key]; ok {
			if e.Paid {
				out[i].Paid = true
			}
			if out[i].PlayerID == nil && e.PlayerID != nil {
				out[i].PlayerID = e.PlayerID
			}
			continue
		}

		if e.PlayerID == nil {
			if id, ok := byName[key]; ok {
				id := id
				e.PlayerID = &id
			}
		}
		index[key] = len(out)
		out = append(out, e)
	}
	return out
}

// Row is one flattened (booking, booking_player, player) record for a date.
type Row struct {
	BookingID  int64
	StartTime  string
	LinkID     int64
	PlayerID   int64
	PlayerName string
	AmountDue  int64
	HasPaid    bool
}

// Normalize builds the day roster from flattened booking rows. Each distinct
// player appears once, in order of first appearance by start time and link
// id. A player counts as paid only when every one of their links is paid.
// With no players the result is BlankRows empty rows.
func Normalize(rows []Row) []Entry {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartTime != sorted[j].StartTime {
			return sorted[i].StartTime < sorted[j].StartTime
		}
		return sorted[i].LinkID < sorted[j].LinkID
	})

	out := make([]Entry, 0, len(sorted))
	index := make(map[int64]int, len(sorted))
	for _, r := range sorted {
		if r.PlayerID == 0 {
			continue
		}
		if i, ok := index[r.PlayerID]; ok {
			out[i].Paid = out[i].Paid && r.HasPaid
			continue
		}
		id := r.PlayerID
		index[id] = len(out)
		out = append(out, Entry{
			PlayerID: &id,
			Name:     r.PlayerName,
			Paid:     r.HasPaid,
		})
	}

	if len(out) == 0 {
		return Blank(BlankRows)
	}
	return out
}
