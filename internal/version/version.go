// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Solar schedules (@sunrise/@sunset cron specs), watch mode, crosscheck
// 0.2.0 - Seasons view, Persian and Bahá'í new year, altitude sparkline
// 0.1.0 - Initial release: sunrise/sunset/twilight engine, TUI day view, JSON export
