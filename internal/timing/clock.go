// Package timing klassifiziert, filtert und sortiert Tasks nach Fälligkeit.
//
// Alle Tagesvergleiche laufen über Day, damit Uhrzeitanteile eines due_date
// nie ein Ergebnis beeinflussen.
package timing

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock liefert die aktuelle Zeit in Location (nil = time.Local).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock liefert immer denselben Zeitpunkt. Für Tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Day normalisiert t auf Mitternacht des lokalen Tages in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Today ist der aktuelle Tag der Uhr, auf Mitternacht normalisiert.
func Today(c Clock) time.Time {
	now := c.Now()
	return Day(now, now.Location())
}

// AddDays rechnet Kalendertage, nicht 24h-Blöcke (Sommerzeit).
func AddDays(day time.Time, n int) time.Time {
	return Day(day.AddDate(0, 0, n), day.Location())
}
