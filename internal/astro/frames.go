package astro

import (
	"fmt"
	"math"

	"github.com/litescript/ls-solar/internal/calendar"
)

// Frame identifies the time reference a Moment is expressed in.
// Mixing frames without converting is a caller error.
type Frame int

const (
	// Universal is mean solar time at Greenwich (UTC-like).
	Universal Frame = iota
	// Local is mean solar time at the observer's meridian.
	Local
	// Standard is civil clock time in the observer's zone.
	Standard
	// Apparent is sundial time at the observer's meridian.
	Apparent
	// Dynamical is the uniform time scale of the ephemeris.
	Dynamical
)

func (f Frame) String() string {
	switch f {
	case Universal:
		return "universal"
	case Local:
		return "local"
	case Standard:
		return "standard"
	case Apparent:
		return "apparent"
	case Dynamical:
		return "dynamical"
	default:
		return fmt.Sprintf("Frame(%d)", int(f))
	}
}

// UniversalFromLocal shifts local mean time to Universal time.
func UniversalFromLocal(t calendar.Moment, loc Location) calendar.Moment {
	return t - calendar.Moment(loc.Longitude/360)
}

// LocalFromUniversal shifts Universal time to local mean time.
func LocalFromUniversal(t calendar.Moment, loc Location) calendar.Moment {
	return t + calendar.Moment(loc.Longitude/360)
}

// StandardFromUniversal shifts Universal time to the location's zone time.
func StandardFromUniversal(t calendar.Moment, loc Location) calendar.Moment {
	return t + calendar.Moment(loc.Zone/24)
}

// UniversalFromStandard shifts zone time to Universal time.
func UniversalFromStandard(t calendar.Moment, loc Location) calendar.Moment {
	return t - calendar.Moment(loc.Zone/24)
}

// StandardFromLocal converts local mean time to zone time.
func StandardFromLocal(t calendar.Moment, loc Location) calendar.Moment {
	return StandardFromUniversal(UniversalFromLocal(t, loc), loc)
}

// LocalFromStandard converts zone time to local mean time.
func LocalFromStandard(t calendar.Moment, loc Location) calendar.Moment {
	return LocalFromUniversal(UniversalFromStandard(t, loc), loc)
}

// ApparentFromLocal converts local mean time to sundial time.
func ApparentFromLocal(t calendar.Moment, loc Location) calendar.Moment {
	return t + calendar.Moment(EquationOfTime(UniversalFromLocal(t, loc)))
}

// LocalFromApparent converts sundial time to local mean time.
//
// The equation of time is evaluated once, at the apparent argument itself,
// rather than at the local time being solved for. The error is a fraction of
// a second and the published reference tables carry it, so it is kept.
// LocalFromApparentIterated removes it.
func LocalFromApparent(t calendar.Moment, loc Location) calendar.Moment {
	return t - calendar.Moment(EquationOfTime(UniversalFromLocal(t, loc)))
}

const (
	apparentIterations = 10
	apparentTolerance  = 1e-9 // days
)

// LocalFromApparentIterated solves ApparentFromLocal(result) == t by
// fixed-point iteration.
func LocalFromApparentIterated(t calendar.Moment, loc Location) calendar.Moment {
	local := LocalFromApparent(t, loc)
	for i := 0; i < apparentIterations; i++ {
		next := t - calendar.Moment(EquationOfTime(UniversalFromLocal(local, loc)))
		if math.Abs(float64(next-local)) < apparentTolerance {
			return next
		}
		local = next
	}
	return local
}

// Midnight returns the Standard time of true (apparent) midnight that
// begins the RD date.
func Midnight(date int, loc Location) calendar.Moment {
	return StandardFromLocal(LocalFromApparent(calendar.Moment(date), loc), loc)
}

// Midday returns the Standard time of true (apparent) noon on the RD date.
func Midday(date int, loc Location) calendar.Moment {
	return StandardFromLocal(LocalFromApparent(calendar.Moment(date)+0.5, loc), loc)
}

// Convert moves a moment between any two frames, routing through Universal
// time. Dynamical conversions do not depend on the location.
func Convert(t calendar.Moment, from, to Frame, loc Location) calendar.Moment {
	if from == to {
		return t
	}
	return fromUniversal(toUniversal(t, from, loc), to, loc)
}

func toUniversal(t calendar.Moment, from Frame, loc Location) calendar.Moment {
	switch from {
	case Local:
		return UniversalFromLocal(t, loc)
	case Standard:
		return UniversalFromStandard(t, loc)
	case Apparent:
		return UniversalFromLocal(LocalFromApparent(t, loc), loc)
	case Dynamical:
		return UniversalFromDynamical(t)
	default:
		return t
	}
}

func fromUniversal(t calendar.Moment, to Frame, loc Location) calendar.Moment {
	switch to {
	case Local:
		return LocalFromUniversal(t, loc)
	case Standard:
		return StandardFromUniversal(t, loc)
	case Apparent:
		return ApparentFromLocal(LocalFromUniversal(t, loc), loc)
	case Dynamical:
		return DynamicalFromUniversal(t)
	default:
		return t
	}
}
