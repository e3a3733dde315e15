package astro

import (
	"errors"
	"math"

	"github.com/litescript/ls-solar/internal/calendar"
)

// AltitudeSample is the Sun's position at a Standard time.
type AltitudeSample struct {
	Time  calendar.Moment // Standard time
	ElDeg float64
	AzDeg float64
}

// ErrInsufficientSamples is returned when a trace is too short to analyze.
var ErrInsufficientSamples = errors.New("insufficient samples for altitude analysis")

// AltitudeTrace samples the Sun's altitude across RD date at loc, from
// Standard midnight to the following midnight inclusive.
func AltitudeTrace(date int, loc Location, steps int) []AltitudeSample {
	if steps < 2 {
		steps = 2
	}
	out := make([]AltitudeSample, steps+1)
	for i := range out {
		st := calendar.Moment(date) + calendar.Moment(float64(i)/float64(steps))
		pos := SunPosition(UniversalFromStandard(st, loc), loc)
		out[i] = AltitudeSample{Time: st, ElDeg: pos.ElDeg, AzDeg: pos.AzDeg}
	}
	return out
}

// Culmination finds the Sun's highest point in a trace, refined by a
// parabola through the peak sample and its neighbours.
func Culmination(samples []AltitudeSample) (calendar.Moment, float64, error) {
	if len(samples) < 3 {
		return 0, 0, ErrInsufficientSamples
	}

	maxIdx := 0
	for i, s := range samples {
		if s.ElDeg > samples[maxIdx].ElDeg {
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxIdx == len(samples)-1 {
		return samples[maxIdx].Time, samples[maxIdx].ElDeg, nil
	}

	prev, peak, next := samples[maxIdx-1], samples[maxIdx], samples[maxIdx+1]

	// Parabola y = at^2 + bt + c through t = -1, 0, +1
	c := peak.ElDeg
	a := (prev.ElDeg+next.ElDeg)/2 - c
	b := (next.ElDeg - prev.ElDeg) / 2
	if a >= 0 {
		return peak.Time, peak.ElDeg, nil
	}

	tMax := math.Max(-1, math.Min(1, -b/(2*a)))
	step := peak.Time - prev.Time
	return peak.Time + calendar.Moment(float64(step)*tMax), a*tMax*tMax + b*tMax + c, nil
}

// HorizonCrossings linearly interpolates the first upward and downward
// crossings of threshold degrees in a trace. It is a coarse check on the
// depression solver; ok is false for a crossing that does not occur.
func HorizonCrossings(samples []AltitudeSample, threshold float64) (rise, set calendar.Moment, riseOK, setOK bool) {
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		if !riseOK && prev.ElDeg <= threshold && curr.ElDeg > threshold {
			rise, riseOK = interpolateCrossing(prev, curr, threshold), true
		}
		if !setOK && prev.ElDeg > threshold && curr.ElDeg <= threshold {
			set, setOK = interpolateCrossing(prev, curr, threshold), true
		}
	}
	return rise, set, riseOK, setOK
}

func interpolateCrossing(a, b AltitudeSample, threshold float64) calendar.Moment {
	if math.Abs(b.ElDeg-a.ElDeg) < 0.0001 {
		return a.Time
	}
	fraction := (threshold - a.ElDeg) / (b.ElDeg - a.ElDeg)
	fraction = math.Max(0, math.Min(1, fraction))
	return a.Time + calendar.Moment(float64(b.Time-a.Time)*fraction)
}

// ElevationTier categorizes solar altitude for display.
type ElevationTier int

const (
	ElevationNight    ElevationTier = iota // Below astronomical twilight
	ElevationTwilight                      // -18 to 0 degrees
	ElevationLow                           // 0-15 degrees
	ElevationMedium                        // 15-45 degrees
	ElevationHigh                          // 45+ degrees
)

// GetElevationTier returns the tier for a solar altitude.
func GetElevationTier(elDeg float64) ElevationTier {
	switch {
	case elDeg < -18:
		return ElevationNight
	case elDeg <= 0:
		return ElevationTwilight
	case elDeg < 15:
		return ElevationLow
	case elDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
