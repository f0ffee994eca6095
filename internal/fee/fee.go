package fee

import (
	"github.com/dan-burt/padelbook1/internal/roster"
)

// DefaultBaseRate is the hourly rate of a court when nothing else is configured.
const DefaultBaseRate int64 = 16

// RateCard holds the hourly rate of each court. Courts without their own
// rate are charged at Base.
type RateCard struct {
	Base     int64
	PerCourt map[int]int64
}

func NewRateCard(base int64) RateCard {
	return RateCard{Base: base, PerCourt: map[int]int64{}}
}

func (rc RateCard) Rate(court int) int64 {
	if r, ok := rc.PerCourt[court]; ok && r > 0 {
		return r
	}
	return rc.Base
}

// Hourly is the cost of one hour on all the given courts.
func (rc RateCard) Hourly(courts []int) int64 {
	var total int64
	for _, c := range courts {
		total += rc.Rate(c)
	}
	return total
}

// Total is the cost of the given courts over the given number of slots.
func Total(courts []int, slots int, rates RateCard) int64 {
	return rates.Hourly(courts) * int64(slots)
}

// Share divides total between n players, rounding up.
func Share(total int64, n int) int64 {
	if n <= 0 {
		return 0
	}
	d := int64(n)
	return (total + d - 1) / d
}

// Calculate recomputes the fee of every named roster row. Blank rows get a
// nil fee. When there are no named players, no courts or no slots the roster
// is returned unchanged.
func Calculate(entries []roster.Entry, courts []int, slots int, rates RateCard) []roster.Entry {
	out := make([]roster.Entry, len(entries))
	copy(out, entries)

	named := roster.CountNamed(entries)
	if named == 0 || len(courts) == 0 || slots == 0 {
		return out
	}

	perPlayer := Share(Total(courts, slots, rates), named)
	for i := range out {
		if !out[i].Named() {
			out[i].Fee = nil
			continue
		}
		f := perPlayer
		out[i].Fee = &f
	}
	return out
}

// SplitAcross divides a fee into parts that sum to it exactly. Earlier parts
// absorb the remainder.
func SplitAcross(amount int64, parts int) []int64 {
	if parts <= 0 {
		return nil
	}
	out := make([]int64, parts)
	base := amount / int64(parts)
	rem := amount % int64(parts)
	for i := range out {
		out[i] = base
		if int64(i) < rem {
			out[i]++
		}
	}
	return out
}
