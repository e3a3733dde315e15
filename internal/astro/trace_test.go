package astro

import (
	"math"
	"testing"
)

func TestAltitudeTrace(t *testing.T) {
	date := rd(2024, 6, 21)
	samples := AltitudeTrace(date, Urbana, 96)
	if len(samples) != 97 {
		t.Fatalf("len = %d, want 97", len(samples))
	}
	if samples[0].Time.Fixed() != date || samples[96].Time.Fixed() != date+1 {
		t.Errorf("trace spans %v to %v", samples[0].Time, samples[96].Time)
	}

	when, el, err := Culmination(samples)
	if err != nil {
		t.Fatalf("Culmination: %v", err)
	}
	if math.Abs(el-73.3229) > 0.05 {
		t.Errorf("culmination altitude = %.3f, want ~73.32", el)
	}
	noon := Midday(date, Urbana)
	if d := math.Abs(float64(when-noon)) * 1440; d > 3 {
		t.Errorf("culmination %.1f min from apparent noon", d)
	}
}

func TestHorizonCrossingsAgreeWithSolver(t *testing.T) {
	date := rd(2024, 3, 20)
	samples := AltitudeTrace(date, Urbana, 288)

	threshold := -(Refraction(0, Urbana) + 16.0/60)
	rise, set, riseOK, setOK := HorizonCrossings(samples, threshold)
	if !riseOK || !setOK {
		t.Fatalf("crossings found: rise %v set %v", riseOK, setOK)
	}

	sunrise, _ := Sunrise(date, Urbana)
	sunset, _ := Sunset(date, Urbana)
	if d := math.Abs(float64(rise-sunrise)) * 1440; d > 1 {
		t.Errorf("sampled rise %.2f min from solver", d)
	}
	if d := math.Abs(float64(set-sunset)) * 1440; d > 1 {
		t.Errorf("sampled set %.2f min from solver", d)
	}
}

func TestHorizonCrossingsPolar(t *testing.T) {
	samples := AltitudeTrace(rd(2024, 6, 21), svalbard, 48)
	if _, _, riseOK, setOK := HorizonCrossings(samples, 0); riseOK || setOK {
		t.Errorf("midnight sun crossed horizon: rise %v set %v", riseOK, setOK)
	}
}

func TestCulminationInsufficientSamples(t *testing.T) {
	if _, _, err := Culmination(make([]AltitudeSample, 2)); err != ErrInsufficientSamples {
		t.Errorf("err = %v, want ErrInsufficientSamples", err)
	}
}

func TestGetElevationTier(t *testing.T) {
	tests := []struct {
		el   float64
		want ElevationTier
	}{
		{-30, ElevationNight},
		{-10, ElevationTwilight},
		{0, ElevationTwilight},
		{5, ElevationLow},
		{30, ElevationMedium},
		{60, ElevationHigh},
	}

	for _, tt := range tests {
		if got := GetElevationTier(tt.el); got != tt.want {
			t.Errorf("GetElevationTier(%v) = %v, want %v", tt.el, got, tt.want)
		}
	}
}
