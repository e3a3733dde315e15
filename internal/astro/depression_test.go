package astro

import (
	"math"
	"testing"

	"github.com/litescript/ls-solar/internal/calendar"
)

func TestMomentOfDepressionFixedPoint(t *testing.T) {
	tests := []struct {
		name  string
		date  int
		alpha float64
		dir   Direction
	}{
		{"sunset", rd(2024, 6, 21), 1.3902, Evening},
		{"sunrise", rd(2024, 6, 21), 1.3902, Morning},
		{"astronomical dawn", rd(2024, 3, 20), 18, Morning},
		{"winter dusk", rd(2024, 12, 21), 6, Evening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := calendar.Moment(tt.date) + 0.25
			if tt.dir == Evening {
				seed = calendar.Moment(tt.date) + 0.75
			}
			first, ok := MomentOfDepression(UniversalFromLocal(seed, Urbana), Urbana, tt.alpha, tt.dir)
			if !ok {
				t.Fatal("no event")
			}

			// Feeding the result back settles immediately.
			local := LocalFromUniversal(first, Urbana)
			next, ok := ApproxMomentOfDepression(local, Urbana, tt.alpha, tt.dir)
			if !ok {
				t.Fatal("no event on refinement")
			}
			if d := math.Abs(float64(next-local)); d >= depressionTolerance {
				t.Errorf("refinement moved %.1f s, want under 30 s", d*86400)
			}

			again, ok := MomentOfDepression(first, Urbana, tt.alpha, tt.dir)
			if !ok || math.Abs(float64(again-first))*86400 > 30 {
				t.Errorf("re-run moved from %v to %v", first, again)
			}
		})
	}
}

func TestApproxMomentOfDepressionNoEvent(t *testing.T) {
	date := calendar.Moment(rd(2024, 6, 21))
	if _, ok := ApproxMomentOfDepression(date+0.75, svalbard, 0.833, Evening); ok {
		t.Error("expected no event for the midnight sun")
	}
}

func TestSineOffset(t *testing.T) {
	// At the equinox with alpha = 0 the offset vanishes anywhere.
	eq := LocalFromUniversal(738965.12925, Urbana)
	if got := SineOffset(eq, Urbana, 0); math.Abs(got) > 1e-4 {
		t.Errorf("SineOffset at equinox = %v, want ~0", got)
	}

	// Above 1 means the Sun never gets that low.
	summer := calendar.Moment(rd(2024, 6, 21)) + 0.75
	if got := SineOffset(summer, svalbard, 0.833); got <= 1 {
		t.Errorf("SineOffset at 78N in June = %v, want > 1", got)
	}
}

func TestDirectionString(t *testing.T) {
	if Morning.String() != "morning" || Evening.String() != "evening" {
		t.Errorf("got %s/%s", Morning, Evening)
	}
}
