package timing

import (
	"time"

	"hufschlaeger.net/todo-client/internal/domain/todo"
)

// Summary teilt offene Tasks in überfällige und heute fällige.
type Summary struct {
	Overdue  []todo.Task
	DueToday []todo.Task
}

func (s Summary) Empty() bool {
	return len(s.Overdue) == 0 && len(s.DueToday) == 0
}

func Summarize(tasks []todo.Task, today time.Time) Summary {
	var summary Summary
	for _, task := range tasks {
		c := Classify(task, today)
		switch {
		case c.Overdue:
			summary.Overdue = append(summary.Overdue, task)
		case c.DueToday:
			summary.DueToday = append(summary.DueToday, task)
		}
	}
	return summary
}
