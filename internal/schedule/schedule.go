// Package schedule runs cron jobs anchored to solar events.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
)

// Event is a daily solar event a schedule can follow.
type Event int

const (
	Sunrise Event = iota
	Sunset
	Dawn
	Dusk
	Noon
)

var eventNames = map[string]Event{
	"@sunrise": Sunrise,
	"@sunset":  Sunset,
	"@dawn":    Dawn,
	"@dusk":    Dusk,
	"@noon":    Noon,
}

func (e Event) String() string {
	switch e {
	case Sunrise:
		return "sunrise"
	case Sunset:
		return "sunset"
	case Dawn:
		return "dawn"
	case Dusk:
		return "dusk"
	case Noon:
		return "noon"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// searchDays bounds how far ahead Next looks. Polar night can hide an
// event for months.
const searchDays = 370

// SolarSchedule fires at a solar event plus an offset at a location.
//
// This implements cron.Schedule.
type SolarSchedule struct {
	Event    Event
	Location astro.Location
	Twilight astro.Twilight // depression for Dawn and Dusk
	Offset   time.Duration
}

// At returns the event on RD date in the location's Standard time frame,
// converted to a UTC time.Time with the offset applied.
func (s SolarSchedule) At(date int) (time.Time, bool) {
	var (
		t  calendar.Moment
		ok = true
	)
	switch s.Event {
	case Sunrise:
		t, ok = astro.Sunrise(date, s.Location)
	case Sunset:
		t, ok = astro.Sunset(date, s.Location)
	case Dawn:
		t, ok = astro.Dawn(date, s.Location, s.Twilight.Depression())
	case Dusk:
		t, ok = astro.Dusk(date, s.Location, s.Twilight.Depression())
	default:
		t = astro.Midday(date, s.Location)
	}
	if !ok {
		return time.Time{}, false
	}
	return astro.UniversalFromStandard(t, s.Location).Time().Add(s.Offset), true
}

// Next returns the first firing strictly after now, or the zero time if the
// event does not occur within a year.
func (s SolarSchedule) Next(now time.Time) time.Time {
	local := astro.StandardFromUniversal(calendar.MomentFromTime(now), s.Location)
	// Start a day early so a negative offset can pull tomorrow's event
	// into today.
	start := local.Fixed() - 1
	for date := start; date < start+searchDays; date++ {
		at, ok := s.At(date)
		if ok && at.After(now) {
			return at.In(now.Location())
		}
	}
	return time.Time{}
}

// Parse accepts a standard five-field cron spec or a solar spec of the form
// "@sunset [offset]", e.g. "@sunset -30m" or "@dawn 1h".
func Parse(spec string, loc astro.Location, tw astro.Twilight) (cron.Schedule, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty schedule spec")
	}

	event, ok := eventNames[strings.ToLower(fields[0])]
	if !ok {
		sched, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
		}
		return sched, nil
	}

	var offset time.Duration
	switch len(fields) {
	case 1:
	case 2:
		d, err := time.ParseDuration(fields[1])
		if err != nil {
			return nil, fmt.Errorf("parse %s offset: %w", event, err)
		}
		offset = d
	default:
		return nil, fmt.Errorf("parse schedule %q: too many fields", spec)
	}

	return SolarSchedule{Event: event, Location: loc, Twilight: tw, Offset: offset}, nil
}
