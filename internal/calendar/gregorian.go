package calendar

import "time"

// IsGregorianLeapYear reports whether year has 366 days.
func IsGregorianLeapYear(year int) bool {
	return floorMod(year, 4) == 0 && (floorMod(year, 100) != 0 || floorMod(year, 400) == 0)
}

// FixedFromGregorian returns the RD date of the given proleptic Gregorian
// date. Month is 1-based.
func FixedFromGregorian(year, month, day int) int {
	y := year - 1
	fixed := 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400)
	fixed += floorDiv(367*month-362, 12)
	if month > 2 {
		if IsGregorianLeapYear(year) {
			fixed--
		} else {
			fixed -= 2
		}
	}
	return fixed + day
}

// GregorianYearFromFixed returns the Gregorian year containing the RD date.
func GregorianYearFromFixed(date int) int {
	d0 := date - 1
	n400 := floorDiv(d0, 146097)
	d1 := floorMod(d0, 146097)
	n100 := floorDiv(d1, 36524)
	d2 := floorMod(d1, 36524)
	n4 := floorDiv(d2, 1461)
	d3 := floorMod(d2, 1461)
	n1 := floorDiv(d3, 365)

	year := 400*n400 + 100*n100 + 4*n4 + n1
	if n100 == 4 || n1 == 4 {
		return year
	}
	return year + 1
}

// GregorianFromFixed returns the Gregorian year, month and day of an RD date.
func GregorianFromFixed(date int) (year, month, day int) {
	year = GregorianYearFromFixed(date)
	priorDays := date - FixedFromGregorian(year, 1, 1)

	correction := 0
	if date >= FixedFromGregorian(year, 3, 1) {
		if IsGregorianLeapYear(year) {
			correction = 1
		} else {
			correction = 2
		}
	}

	month = floorDiv(12*(priorDays+correction)+373, 367)
	day = date - FixedFromGregorian(year, month, 1) + 1
	return year, month, day
}

// GregorianDateDifference returns the number of days from the first date to
// the second.
func GregorianDateDifference(y1, m1, d1, y2, m2, d2 int) int {
	return FixedFromGregorian(y2, m2, d2) - FixedFromGregorian(y1, m1, d1)
}

// DateOf returns the RD date as a midnight UTC time.Time, for display.
func DateOf(date int) time.Time {
	y, m, d := GregorianFromFixed(date)
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - b*floorDiv(a, b)
}
