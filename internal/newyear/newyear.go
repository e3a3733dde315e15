// Package newyear finds the astronomical new years of solar calendars
// anchored at the March equinox as observed in Tehran.
package newyear

import (
	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
)

// springWindow is how far past the equinox the anchor may fall and still
// open the new year. The Sun moves about one degree a day.
const springWindow = 2.0

// Anchor returns the Universal moment on an RD date at which the solar
// longitude is tested.
type Anchor func(date int) calendar.Moment

// MiddayInTehran anchors at apparent noon in Tehran.
func MiddayInTehran(date int) calendar.Moment {
	return astro.UniversalFromStandard(astro.Midday(date, astro.Tehran), astro.Tehran)
}

// SunsetInTehran anchors at sunset in Tehran. Tehran always has a sunset,
// so the missing case falls back to 6 p.m. local mean time.
func SunsetInTehran(date int) calendar.Moment {
	set, ok := astro.Sunset(date, astro.Tehran)
	if !ok {
		return astro.UniversalFromLocal(calendar.Moment(date)+0.75, astro.Tehran)
	}
	return astro.UniversalFromStandard(set, astro.Tehran)
}

// OnOrBefore returns the last RD date on or before date whose anchor moment
// falls on or after the March equinox.
func OnOrBefore(date int, anchor Anchor) int {
	approx := astro.EstimatePriorSolarLongitude(astro.Spring, anchor(date))
	day := approx.Fixed() - 1
	for astro.SolarLongitude(anchor(day)) > astro.Spring+springWindow {
		day++
	}
	return day
}

// PersianNewYearOnOrBefore returns the RD date of Nowruz in the
// astronomical Persian calendar on or before date: the day whose noon in
// Tehran is the first to follow the equinox.
func PersianNewYearOnOrBefore(date int) int {
	return OnOrBefore(date, MiddayInTehran)
}

// BahaiNewYearOnOrBefore returns the RD date of Naw-Rúz in the Bahá'í
// calendar on or before date: the day whose closing sunset in Tehran is
// the first to follow the equinox.
func BahaiNewYearOnOrBefore(date int) int {
	return OnOrBefore(date, SunsetInTehran)
}

// PersianNewYear returns Nowruz in the given Gregorian year.
func PersianNewYear(year int) int {
	return PersianNewYearOnOrBefore(calendar.FixedFromGregorian(year, 6, 1))
}

// BahaiNewYear returns Naw-Rúz in the given Gregorian year.
func BahaiNewYear(year int) int {
	return BahaiNewYearOnOrBefore(calendar.FixedFromGregorian(year, 6, 1))
}
