package fee

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan-burt/padelbook1/internal/roster"
)

func named(names ...string) []roster.Entry {
	out := make([]roster.Entry, 0, len(names))
	for _, n := range names {
		out = append(out, roster.Entry{Name: n})
	}
	return out
}

func TestCalculate_Scenario(t *testing.T) {
	rates := NewRateCard(16)

	got := Calculate(named("Ann", "Bea", "Cid"), []int{1}, 2, rates)

	for _, e := range got {
		require.NotNil(t, e.Fee)
		assert.Equal(t, int64(11), *e.Fee)
	}
}

func TestCalculate_BlankRowsGetNoFee(t *testing.T) {
	stale := int64(99)
	entries := []roster.Entry{{Name: "Ann"}, {Name: "  ", Fee: &stale}, {Name: "Bea"}}

	got := Calculate(entries, []int{1, 2}, 1, NewRateCard(16))

	assert.Equal(t, int64(16), *got[0].Fee)
	assert.Nil(t, got[1].Fee)
	assert.Equal(t, int64(16), *got[2].Fee)
}

func TestCalculate_NeverUndercharges(t *testing.T) {
	rates := NewRateCard(16)
	for courts := 1; courts <= 2; courts++ {
		active := []int{1, 2}[:courts]
		for slots := 1; slots <= 16; slots++ {
			for players := 1; players <= 12; players++ {
				t.Run(fmt.Sprintf("c%d_s%d_p%d", courts, slots, players), func(t *testing.T) {
					entries := make([]roster.Entry, players)
					for i := range entries {
						entries[i].Name = fmt.Sprintf("p%d", i)
					}

					got := Calculate(entries, active, slots, rates)

					total := int64(16 * courts * slots)
					var sum int64
					for _, e := range got {
						sum += *e.Fee
					}
					assert.Equal(t, (total+int64(players)-1)/int64(players), *got[0].Fee)
					assert.GreaterOrEqual(t, sum, total)
				})
			}
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	rates := NewRateCard(16)
	once := Calculate(named("Ann", "Bea", "Cid"), []int{1, 2}, 3, rates)
	twice := Calculate(once, []int{1, 2}, 3, rates)

	assert.Equal(t, once, twice)
}

func TestCalculate_DegenerateInputsUnchanged(t *testing.T) {
	fee := int64(7)
	entries := []roster.Entry{{Name: "Ann", Fee: &fee}}

	tests := []struct {
		name    string
		entries []roster.Entry
		courts  []int
		slots   int
	}{
		{name: "no courts", entries: entries, courts: nil, slots: 2},
		{name: "no slots", entries: entries, courts: []int{1}, slots: 0},
		{name: "no named players", entries: []roster.Entry{{Name: "", Fee: &fee}}, courts: []int{1}, slots: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.entries, tt.courts, tt.slots, NewRateCard(16))
			assert.Equal(t, tt.entries, got)
		})
	}
}

func TestRateCard_PerCourt(t *testing.T) {
	rates := RateCard{Base: 16, PerCourt: map[int]int64{2: 20, 3: 0}}

	assert.Equal(t, int64(16), rates.Rate(1))
	assert.Equal(t, int64(20), rates.Rate(2))
	assert.Equal(t, int64(16), rates.Rate(3), "non-positive rates fall back to base")
	assert.Equal(t, int64(72), Total([]int{1, 2}, 2, rates))
}

func TestShare(t *testing.T) {
	assert.Equal(t, int64(11), Share(32, 3))
	assert.Equal(t, int64(8), Share(32, 4))
	assert.Equal(t, int64(0), Share(32, 0))
}

func TestSplitAcross(t *testing.T) {
	assert.Equal(t, []int64{4, 4, 3}, SplitAcross(11, 3))
	assert.Equal(t, []int64{5, 5}, SplitAcross(10, 2))
	assert.Nil(t, SplitAcross(10, 0))

	var sum int64
	for _, p := range SplitAcross(37, 5) {
		sum += p
	}
	assert.Equal(t, int64(37), sum)
}
