package timing

import (
	"time"

	"hufschlaeger.net/todo-client/internal/domain/todo"
)

type Classification struct {
	Overdue  bool
	DueToday bool
}

// Classify ordnet einen Task relativ zu today ein. Erledigte Tasks und Tasks
// ohne Fälligkeit sind weder überfällig noch heute fällig.
func Classify(task todo.Task, today time.Time) Classification {
	if task.Completed || !task.HasDueDate() {
		return Classification{}
	}
	due := Day(*task.DueDate, today.Location())
	today = Day(today, today.Location())

	return Classification{
		Overdue:  due.Before(today),
		DueToday: due.Equal(today),
	}
}

func IsOverdue(task todo.Task, today time.Time) bool {
	return Classify(task, today).Overdue
}
