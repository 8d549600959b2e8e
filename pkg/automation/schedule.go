package automation

import (
	"fmt"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// NextRun computes the next run time for a schedule definition.
// Supported kinds:
//
//	interval  expr is a Go duration, e.g. "30m"
//	daily     expr is a wall-clock time, e.g. "09:00"
//	weekly    expr is a weekday plus time, e.g. "mon 09:00"
//
// The timezone applies to daily and weekly schedules; empty means UTC.
// The returned time is always UTC.
func NextRun(kind, expr, tz string, from time.Time) (time.Time, error) {
	location := time.UTC
	if tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
		}
		location = loc
	}
	localFrom := from.In(location)

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "interval":
		d, err := time.ParseDuration(expr)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid interval expression %q: %w", expr, err)
		}
		if d <= 0 {
			return time.Time{}, fmt.Errorf("interval must be > 0")
		}
		return localFrom.Add(d).UTC(), nil
	case "daily":
		hour, minute, err := parseClock(expr)
		if err != nil {
			return time.Time{}, err
		}
		next := time.Date(localFrom.Year(), localFrom.Month(), localFrom.Day(), hour, minute, 0, 0, location)
		if !next.After(localFrom) {
			next = next.AddDate(0, 0, 1)
		}
		return next.UTC(), nil
	case "weekly":
		fields := strings.Fields(strings.ToLower(expr))
		if len(fields) != 2 {
			return time.Time{}, fmt.Errorf("invalid weekly expression %q (want e.g. \"mon 09:00\")", expr)
		}
		day, ok := weekdays[fields[0]]
		if !ok {
			return time.Time{}, fmt.Errorf("invalid weekday %q", fields[0])
		}
		hour, minute, err := parseClock(fields[1])
		if err != nil {
			return time.Time{}, err
		}
		next := time.Date(localFrom.Year(), localFrom.Month(), localFrom.Day(), hour, minute, 0, 0, location)
		offset := (int(day) - int(localFrom.Weekday()) + 7) % 7
		next = next.AddDate(0, 0, offset)
		if !next.After(localFrom) {
			next = next.AddDate(0, 0, 7)
		}
		return next.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported schedule kind %q", kind)
	}
}

func parseClock(expr string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(expr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time expression %q: %w", expr, err)
	}
	return t.Hour(), t.Minute(), nil
}
