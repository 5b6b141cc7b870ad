package utils

import (
	"fmt"
	"time"
)

// DateLayout ist das Datumsformat der Task-Store-API.
const DateLayout = "2006-01-02"

// Mögliche Formate für due_date
var dateFormats = []string{
	DateLayout,                      // Nur Datum
	time.RFC3339Nano,                // ISO mit Timezone/Nanosekunden
	"2006-01-02T15:04:05Z",          // ISO UTC
	"2006-01-02T15:04:05.000Z",      // ISO UTC mit Millisekunden
	"2006-01-02T15:04:05",           // ISO ohne Zone
	"2006-01-02T15:04:05.000-07:00", // ISO mit Millisekunden + Timezone
}

// ParseDate parst ein Datum der API. Reine Datumsangaben werden in loc
// interpretiert, Zeitstempel mit Offset behalten ihren Zeitpunkt.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, format := range dateFormats {
		if parsed, err := time.ParseInLocation(format, s, loc); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unbekanntes Datumsformat: %q", s)
}

// FormatDate formatiert ein Datum im API-Format YYYY-MM-DD.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDateForDisplay formatiert Datum für schöne Anzeige
func FormatDateForDisplay(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "No date"
	}
	return t.Format("Jan 2, 2006")
}
