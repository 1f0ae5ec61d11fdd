package booking

import (
	"math/rand"
	"testing"
	"time"

	"salonbook/internal/domain"

	"github.com/stretchr/testify/assert"
)

func bookingAt(day time.Time, startMin, durMin int) domain.Booking {
	return domain.Booking{
		AppointmentAt: day.Add(time.Duration(startMin) * time.Minute),
		DurationMin:   durMin,
		Status:        domain.BookingConfirmed,
	}
}

func TestHasConflict_HalfOpenIntervals(t *testing.T) {
	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	existing := []domain.Booking{bookingAt(day, 10*60, 60)} // 10:00-11:00

	cases := []struct {
		name     string
		startMin int
		durMin   int
		want     bool
	}{
		{"identical", 10 * 60, 60, true},
		{"fully inside", 10*60 + 15, 30, true},
		{"overlaps head", 9*60 + 30, 60, true},
		{"overlaps tail", 10*60 + 30, 60, true},
		{"covers", 9 * 60, 180, true},
		{"touches end, no conflict", 11 * 60, 60, false},
		{"touches start, no conflict", 9 * 60, 60, false},
		{"far away", 14 * 60, 60, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := day.Add(time.Duration(tc.startMin) * time.Minute)
			end := start.Add(time.Duration(tc.durMin) * time.Minute)
			assert.Equal(t, tc.want, hasConflict(existing, start, end))
		})
	}
}

// Randomized check against an independent integer-arithmetic oracle:
// whatever intervals we generate, the detector must agree with the
// plain aS < bE && aE > bS test.
func TestHasConflict_RandomizedAgainstOracle(t *testing.T) {
	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		var existing []domain.Booking
		type span struct{ s, e int }
		var spans []span

		n := 1 + r.Intn(6)
		for j := 0; j < n; j++ {
			s := r.Intn(20 * 60)
			d := 15 + r.Intn(180)
			existing = append(existing, bookingAt(day, s, d))
			spans = append(spans, span{s, s + d})
		}

		cs := r.Intn(20 * 60)
		cd := 15 + r.Intn(180)
		start := day.Add(time.Duration(cs) * time.Minute)
		end := start.Add(time.Duration(cd) * time.Minute)

		want := false
		for _, sp := range spans {
			if cs < sp.e && cs+cd > sp.s {
				want = true
				break
			}
		}

		assert.Equal(t, want, hasConflict(existing, start, end),
			"candidate [%d,%d) vs %v", cs, cs+cd, spans)
	}
}

func TestHasConflict_IgnoresNothingItIsGiven(t *testing.T) {
	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	start := day.Add(10 * time.Hour)
	end := start.Add(time.Hour)

	assert.False(t, hasConflict(nil, start, end))
}
