package astro

import (
	"math"

	"github.com/litescript/ls-solar/internal/calendar"
)

const (
	// J2000 is noon on 2000-01-01 (Gregorian) as an RD moment.
	J2000 calendar.Moment = 730120.5

	// MeanTropicalYear is the mean length of the tropical year in days.
	MeanTropicalYear = 365.242189

	// Seasons as solar longitudes in degrees.
	Spring = 0.0
	Summer = 90.0
	Autumn = 180.0
	Winter = 270.0
)

// JulianCenturies returns Dynamical time since J2000 in Julian centuries.
func JulianCenturies(t calendar.Moment) float64 {
	return float64(DynamicalFromUniversal(t)-J2000) / 36525
}

// Obliquity returns the mean obliquity of the ecliptic in degrees.
func Obliquity(t calendar.Moment) float64 {
	return calendar.Poly(JulianCenturies(t), []float64{
		23.43929111111111, -46.8150 / 3600, -0.00059 / 3600, 0.001813 / 3600,
	})
}

// Periodic terms of the solar longitude: amplitude, rate (degrees per
// century) and phase (degrees).
var (
	longitudeAmplitude = [...]float64{
		403406, 195207, 119433, 112392, 3891, 2819, 1721, 660, 350, 334,
		314, 268, 242, 234, 158, 132, 129, 114, 99, 93,
		86, 78, 72, 68, 64, 46, 38, 37, 32, 29,
		28, 27, 27, 25, 24, 21, 21, 20, 18, 17,
		14, 13, 13, 13, 12, 10, 10, 10, 10,
	}
	longitudeRate = [...]float64{
		0.9287892, 35999.1376958, 35999.4089666, 35998.7287385, 71998.20261,
		71998.4403, 36000.35726, 71997.4812, 32964.4678, -19.4410,
		445267.1117, 45036.8840, 3.1008, 22518.4434, -19.9739,
		65928.9345, 9038.0293, 3034.7684, 33718.148, 3034.448,
		-2280.773, 29929.992, 31556.493, 149.588, 9037.750,
		107997.405, -4444.176, 151.771, 67555.316, 31556.080,
		-4561.540, 107996.706, 1221.655, 62894.167, 31437.369,
		14578.298, -31931.757, 34777.243, 1221.999, 62894.511,
		-4442.039, 107997.909, 119.066, 16859.071, -4.578,
		26895.292, -39.127, 12297.536, 90073.778,
	}
	longitudePhase = [...]float64{
		270.54861, 340.19128, 63.91854, 331.26220, 317.843, 86.631, 240.052, 310.26, 247.23, 260.87,
		297.82, 343.14, 166.79, 81.53, 3.50, 132.75, 182.95, 162.03, 29.8, 266.4,
		249.2, 157.6, 257.8, 185.1, 69.9, 8.0, 197.1, 250.4, 65.3, 162.7,
		341.5, 291.6, 98.5, 146.7, 110.0, 5.2, 342.6, 230.9, 256.1, 45.3,
		242.9, 115.2, 151.8, 285.3, 53.3, 126.6, 205.7, 85.9, 146.1,
	}
)

// SolarLongitude returns the apparent ecliptic longitude of the Sun in
// degrees, in [0, 360), at Universal moment t.
func SolarLongitude(t calendar.Moment) float64 {
	c := JulianCenturies(t)
	var sum float64
	for i := range longitudeAmplitude {
		sum += longitudeAmplitude[i] * sind(longitudeRate[i]*c+longitudePhase[i])
	}
	lambda := 282.7771834 + 36000.76953744*c + 0.000005729577951308232*sum
	return calendar.Mod(lambda+Aberration(t)+Nutation(t), 360)
}

// Aberration returns the aberration correction in degrees.
func Aberration(t calendar.Moment) float64 {
	c := JulianCenturies(t)
	return 0.0000974*cosd(177.63+35999.01848*c) - 0.005575
}

// Nutation returns the nutation in longitude in degrees.
func Nutation(t calendar.Moment) float64 {
	c := JulianCenturies(t)
	a := calendar.Poly(c, []float64{124.90, -1934.134, 0.002063})
	b := calendar.Poly(c, []float64{201.11, 72001.5377, 0.00057})
	return -0.004778*sind(a) - 0.0003667*sind(b)
}

// EquationOfTime returns apparent minus mean solar time as a fraction of a
// day, clamped to half a day in magnitude.
func EquationOfTime(t calendar.Moment) float64 {
	c := JulianCenturies(t)
	lambda := calendar.Poly(c, []float64{280.46645, 36000.76983, 0.0003032})
	anomaly := calendar.Poly(c, []float64{357.52910, 35999.05030, -0.0001559, -0.00000048})
	ecc := calendar.Poly(c, []float64{0.016708617, -0.000042037, -0.0000001236})
	y := tand(Obliquity(t) / 2)
	y *= y

	eq := (1 / (2 * math.Pi)) * (y*sind(2*lambda) -
		2*ecc*sind(anomaly) +
		4*ecc*y*sind(anomaly)*cosd(2*lambda) -
		0.5*y*y*sind(4*lambda) -
		1.25*ecc*ecc*sind(2*anomaly))

	return math.Copysign(math.Min(math.Abs(eq), 0.5), eq)
}

// Declination returns the declination in degrees of ecliptic position
// (beta, lambda) at moment t.
func Declination(t calendar.Moment, beta, lambda float64) float64 {
	eps := Obliquity(t)
	return radToDeg(math.Asin(sind(beta)*cosd(eps) + cosd(beta)*sind(eps)*sind(lambda)))
}

// RightAscension returns the right ascension in degrees, in [0, 360), of
// ecliptic position (beta, lambda) at moment t.
func RightAscension(t calendar.Moment, beta, lambda float64) float64 {
	eps := Obliquity(t)
	ra := math.Atan2(sind(lambda)*cosd(eps)-tand(beta)*sind(eps), cosd(lambda))
	return calendar.Mod(radToDeg(ra), 360)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func sind(deg float64) float64 { return math.Sin(degToRad(deg)) }
func cosd(deg float64) float64 { return math.Cos(degToRad(deg)) }
func tand(deg float64) float64 { return math.Tan(degToRad(deg)) }
