// Package calendar provides the Rata Die time axis and the Gregorian
// arithmetic the solar engine needs to classify moments by year.
package calendar

import (
	"math"
	"time"
)

// Moment is a count of days since the Rata Die epoch (RD 1 is Monday,
// January 1 of year 1 in the proleptic Gregorian calendar). The fractional
// part is the time of day. Which time frame a Moment is expressed in is a
// contract of the function that produced it, not something it records.
type Moment float64

// unixEpoch is the RD date of 1970-01-01.
const unixEpoch = 719163

const secondsPerDay = 86400

// Fixed returns the RD date containing the moment.
func (t Moment) Fixed() int {
	return int(math.Floor(float64(t)))
}

// TimeOfDay returns the fractional day part in [0, 1).
func (t Moment) TimeOfDay() float64 {
	return Mod(float64(t), 1)
}

// Time converts the moment to a time.Time in UTC.
// The conversion is only meaningful for Universal-frame moments.
func (t Moment) Time() time.Time {
	secs := (float64(t) - unixEpoch) * secondsPerDay
	whole := math.Floor(secs)
	nanos := math.Round((secs - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).UTC()
}

// MomentFromTime converts a time.Time to a Universal-frame moment.
func MomentFromTime(t time.Time) Moment {
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return Moment(unixEpoch + secs/secondsPerDay)
}

// FixedFromTime returns the RD date of the calendar day t falls on in its
// own location.
func FixedFromTime(t time.Time) int {
	return FixedFromGregorian(t.Year(), int(t.Month()), t.Day())
}

// Mod is the floored remainder: the result has the sign of y.
func Mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// Mod3 reduces x into the half-open interval [a, b).
// If a == b, x is returned unchanged.
func Mod3(x, a, b float64) float64 {
	if a == b {
		return x
	}
	return a + Mod(x-a, b-a)
}

// Poly evaluates the polynomial with the given coefficients (lowest order
// first) at x using Horner's rule.
func Poly(x float64, coefficients []float64) float64 {
	var result float64
	for i := len(coefficients) - 1; i >= 0; i-- {
		result = result*x + coefficients[i]
	}
	return result
}
