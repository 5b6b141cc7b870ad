package timing

import (
	"time"

	"hufschlaeger.net/todo-client/internal/domain/todo"
)

// FilterByTiming liefert die Tasks, die zum Projekt (projectID, leer = alle)
// und zur Ansicht passen. Die Eingabe wird nicht verändert.
func FilterByTiming(tasks []todo.Task, view todo.ViewMode, projectID string, today time.Time) []todo.Task {
	filtered := make([]todo.Task, 0, len(tasks))

	// Projektfilter zuerst
	for _, task := range tasks {
		if projectID != "" && task.ProjectID != projectID {
			continue
		}
		filtered = append(filtered, task)
	}

	keep := timingScope(view, today)
	if keep == nil {
		return filtered
	}

	result := filtered[:0]
	for _, task := range filtered {
		if !task.HasDueDate() {
			continue
		}
		if keep(Day(*task.DueDate, today.Location())) {
			result = append(result, task)
		}
	}
	return result
}

// timingScope liefert das Tagesprädikat der Ansicht, nil für "alle".
func timingScope(view todo.ViewMode, today time.Time) func(due time.Time) bool {
	today = Day(today, today.Location())

	switch view {
	case todo.ViewToday:
		return func(due time.Time) bool {
			return due.Equal(today)
		}
	case todo.ViewNext7Days:
		end := AddDays(today, 7)
		return func(due time.Time) bool {
			return !due.Before(today) && !due.After(end)
		}
	}
	return nil
}
