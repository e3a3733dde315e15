package astro

import (
	"math"
	"testing"

	"github.com/litescript/ls-solar/internal/calendar"
)

func TestSiderealFromMoment(t *testing.T) {
	if got := SiderealFromMoment(J2000); math.Abs(got-280.46061837) > 1e-9 {
		t.Errorf("SiderealFromMoment(J2000) = %v, want 280.46061837", got)
	}

	// One solar day advances sidereal time by ~0.9856 degrees.
	got := SiderealFromMoment(J2000+1) - SiderealFromMoment(J2000)
	if math.Abs(got-0.98564736) > 1e-6 {
		t.Errorf("daily advance = %v, want 0.98564736", got)
	}
}

func TestSunPositionAtMidday(t *testing.T) {
	date := rd(2024, 6, 21)
	noon := UniversalFromStandard(Midday(date, Urbana), Urbana)
	pos := SunPosition(noon, Urbana)

	// 90 - latitude + declination
	if math.Abs(pos.ElDeg-73.3229) > 0.01 {
		t.Errorf("ElDeg = %.4f, want ~73.32", pos.ElDeg)
	}
	if math.Abs(pos.AzDeg-180) > 0.02 {
		t.Errorf("AzDeg = %.4f, want due south", pos.AzDeg)
	}
	if math.Abs(pos.DecDeg-23.43) > 0.02 {
		t.Errorf("DecDeg = %.4f, want ~23.43", pos.DecDeg)
	}
	// The solstice fell about 21 hours earlier, at 2024-06-20 20:51 UTC.
	if math.Abs(pos.LongitudeDeg-90.8373) > 0.002 {
		t.Errorf("LongitudeDeg = %.4f, want ~90.837", pos.LongitudeDeg)
	}
	if pos.LongitudeDeg != SolarLongitude(noon) {
		t.Errorf("LongitudeDeg = %v, SolarLongitude = %v", pos.LongitudeDeg, SolarLongitude(noon))
	}
}

func TestEquatorialToHorizontal(t *testing.T) {
	tests := []struct {
		name   string
		eq     SkyCoord
		loc    Location
		wantEl float64
		wantAz float64
	}{
		{
			name:   "celestial pole sits at latitude, due north",
			eq:     SkyCoord{RAdeg: 0, DecDeg: 90},
			loc:    Urbana,
			wantEl: Urbana.Latitude,
			wantAz: 0,
		},
		{
			name:   "meridian transit south of zenith",
			eq:     SkyCoord{RAdeg: calendar.Mod(SiderealFromMoment(J2000)+Tehran.Longitude, 360), DecDeg: Tehran.Latitude - 10},
			loc:    Tehran,
			wantEl: 80,
			wantAz: 180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquatorialToHorizontal(tt.eq, tt.loc, J2000)
			if math.Abs(got.ElDeg-tt.wantEl) > 1e-6 {
				t.Errorf("ElDeg = %.6f, want %.6f", got.ElDeg, tt.wantEl)
			}
			if d := calendar.Mod3(got.AzDeg-tt.wantAz, -180, 180); math.Abs(d) > 1e-6 {
				t.Errorf("AzDeg = %.6f, want %.6f", got.AzDeg, tt.wantAz)
			}
			if got.RAdeg != tt.eq.RAdeg || got.DecDeg != tt.eq.DecDeg {
				t.Error("equatorial coordinates not preserved")
			}
		})
	}
}

func TestSolarAzimuthRange(t *testing.T) {
	start := calendar.Moment(rd(2024, 1, 1))
	for i := 0; i < 500; i++ {
		m := start + calendar.Moment(float64(i)*0.731)
		az := SolarAzimuth(m, Mecca)
		alt := SolarAltitude(m, Mecca)
		if az < 0 || az >= 360 {
			t.Fatalf("azimuth %v out of range", az)
		}
		if alt < -90 || alt > 90 {
			t.Fatalf("altitude %v out of range", alt)
		}
	}
}
