package schedule

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/errors"
	"github.com/robfig/cron/v3"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/logging"
)

// Entry is a labelled schedule spec.
type Entry struct {
	Spec  string
	Label string
}

// Action is invoked when an entry fires.
type Action func(e Entry, at time.Time)

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	log *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

type job struct {
	entry  Entry
	action Action
	now    func() time.Time
}

func (j job) Run() {
	j.action(j.entry, j.now())
}

// Runner drives a set of entries with a cron scheduler.
type Runner struct {
	cron    *cron.Cron
	log     *logging.Logger
	entries map[cron.EntryID]Entry
}

// NewRunner parses entries for loc and registers them. Every entry that
// fails to parse is reported, and no runner is returned in that case.
func NewRunner(log *logging.Logger, loc astro.Location, tw astro.Twilight, entries []Entry, action Action) (*Runner, error) {
	c := cron.New(cron.WithLogger(cronLogger{log: log}))
	r := &Runner{cron: c, log: log, entries: make(map[cron.EntryID]Entry)}

	var errs errors.M
	for _, e := range entries {
		sched, err := Parse(e.Spec, loc, tw)
		if err != nil {
			errs.Append(fmt.Errorf("entry %q: %w", e.Label, err))
			continue
		}
		id := c.Schedule(sched, job{entry: e, action: action, now: time.Now})
		r.entries[id] = e
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// Upcoming lists the next firing of every entry after now.
func (r *Runner) Upcoming(now time.Time) []Upcoming {
	var out []Upcoming
	for _, ce := range r.cron.Entries() {
		out = append(out, Upcoming{Entry: r.entries[ce.ID], Next: ce.Schedule.Next(now)})
	}
	return out
}

// Upcoming is the next firing of an entry.
type Upcoming struct {
	Entry Entry
	Next  time.Time
}

// Run starts the scheduler and blocks until ctx is cancelled, then waits for
// running jobs to finish.
func (r *Runner) Run(ctx context.Context) {
	for _, u := range r.Upcoming(time.Now()) {
		r.log.Info("scheduled %q (%s) next at %s", u.Entry.Label, u.Entry.Spec, u.Next.Local().Format(time.RFC3339))
	}
	r.cron.Start()
	<-ctx.Done()
	<-r.cron.Stop().Done()
}
