package timing

import (
	"cmp"
	"slices"
	"time"

	"hufschlaeger.net/todo-client/internal/domain/todo"
)

// SortByUrgency sortiert stabil: überfällig vor Rest, offen vor erledigt,
// dann (nur offene) Priorität und Fälligkeit. Liefert eine neue Slice.
func SortByUrgency(tasks []todo.Task, today time.Time) []todo.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b todo.Task) int {
		return CompareUrgency(a, b, today)
	})
	return sorted
}

func CompareUrgency(a, b todo.Task, today time.Time) int {
	overdueA, overdueB := IsOverdue(a, today), IsOverdue(b, today)
	if overdueA != overdueB {
		if overdueA {
			return -1
		}
		return 1
	}

	if a.Completed != b.Completed {
		if !a.Completed {
			return -1
		}
		return 1
	}

	// Erledigte Tasks behalten ihre Reihenfolge
	if a.Completed {
		return 0
	}

	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	return compareDue(a, b, today.Location())
}

// compareDue: früheres Datum zuerst, Tasks ohne Datum ans Ende.
func compareDue(a, b todo.Task, loc *time.Location) int {
	switch {
	case !a.HasDueDate() && !b.HasDueDate():
		return 0
	case !a.HasDueDate():
		return 1
	case !b.HasDueDate():
		return -1
	}
	return Day(*a.DueDate, loc).Compare(Day(*b.DueDate, loc))
}

// Present ist die komplette Pipeline: Filter, dann Sortierung.
func Present(tasks []todo.Task, view todo.ViewMode, projectID string, today time.Time) []todo.Task {
	return SortByUrgency(FilterByTiming(tasks, view, projectID, today), today)
}
