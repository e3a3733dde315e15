package astro

import "github.com/litescript/ls-solar/internal/calendar"

const secondsPerDay = 86400.0

// ephemerisEra is one fitted band of the Dynamical minus Universal time
// correction. Bands are inclusive of both ends.
type ephemerisEra struct {
	name     string
	from, to int
	eval     func(year int) float64 // correction in days
}

// ephemerisEras covers every year from -500 to 2150. Years outside fall back
// to the parabolic extrapolation.
var ephemerisEras = []ephemerisEra{
	{"2051-2150", 2051, 2150, func(y int) float64 {
		x := float64(y-1820) / 100
		return (-20 + 32*x*x + 0.5628*float64(2150-y)) / secondsPerDay
	}},
	{"2006-2050", 2006, 2050, func(y int) float64 {
		x := float64(y - 2000)
		return (62.92 + 0.32217*x + 0.005589*x*x) / secondsPerDay
	}},
	{"1987-2005", 1987, 2005, func(y int) float64 {
		return calendar.Poly(float64(y-2000), []float64{
			63.86, 0.3345, -0.060374, 0.0017275, 0.000651814, 0.00002373599,
		}) / secondsPerDay
	}},
	{"1900-1986", 1900, 1986, func(y int) float64 {
		return calendar.Poly(centuriesFrom1900(y), []float64{
			-0.00002, 0.000297, 0.025184, -0.181133, 0.553040, -0.861938, 0.677066, -0.212591,
		})
	}},
	{"1800-1899", 1800, 1899, func(y int) float64 {
		return calendar.Poly(centuriesFrom1900(y), []float64{
			-0.000009, 0.003844, 0.083563, 0.865736, 4.867575, 15.845535,
			31.332267, 38.291999, 28.316289, 11.636204, 2.043794,
		})
	}},
	{"1700-1799", 1700, 1799, func(y int) float64 {
		return calendar.Poly(float64(y-1700), []float64{
			8.118780842, -0.005092142, 0.003336121, -0.0000266484,
		}) / secondsPerDay
	}},
	{"1600-1699", 1600, 1699, func(y int) float64 {
		return calendar.Poly(float64(y-1600), []float64{
			120, -0.9808, -0.01532, 0.000140272128,
		}) / secondsPerDay
	}},
	{"500-1599", 500, 1599, func(y int) float64 {
		return calendar.Poly(float64(y-1000)/100, []float64{
			1574.2, -556.01, 71.23472, 0.319781, -0.8503463, -0.005050998, 0.0083572073,
		}) / secondsPerDay
	}},
	{"-500-499", -500, 499, func(y int) float64 {
		return calendar.Poly(float64(y)/100, []float64{
			10583.6, -1014.41, 33.78311, -5.952053, -0.1798452, 0.022174192, 0.00090316521,
		}) / secondsPerDay
	}},
}

const extrapolatedEra = "extrapolated"

// centuriesFrom1900 measures Gregorian July 1 of year in Julian centuries
// from 1900-01-01.
func centuriesFrom1900(year int) float64 {
	return float64(calendar.FixedFromGregorian(year, 7, 1)-calendar.FixedFromGregorian(1900, 1, 1)) / 36525
}

func extrapolatedCorrection(year int) float64 {
	x := float64(year-1820) / 100
	return (-20 + 32*x*x) / secondsPerDay
}

// EphemerisCorrection returns Dynamical minus Universal time, in days, for
// the Gregorian year containing t.
func EphemerisCorrection(t calendar.Moment) float64 {
	year := calendar.GregorianYearFromFixed(t.Fixed())
	for _, era := range ephemerisEras {
		if year >= era.from && year <= era.to {
			return era.eval(year)
		}
	}
	return extrapolatedCorrection(year)
}

// EphemerisEraOf names the fitted band used for a Gregorian year.
func EphemerisEraOf(year int) string {
	for _, era := range ephemerisEras {
		if year >= era.from && year <= era.to {
			return era.name
		}
	}
	return extrapolatedEra
}

// DynamicalFromUniversal converts Universal time to Dynamical time.
func DynamicalFromUniversal(t calendar.Moment) calendar.Moment {
	return t + calendar.Moment(EphemerisCorrection(t))
}

// UniversalFromDynamical converts Dynamical time to Universal time. The
// correction is evaluated at the Dynamical argument; the two differ by at
// most minutes, which only matters on a year boundary.
func UniversalFromDynamical(t calendar.Moment) calendar.Moment {
	return t - calendar.Moment(EphemerisCorrection(t))
}

