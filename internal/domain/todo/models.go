package todo

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank liefert die Sortierstufe: High(1) < Medium(2) < Low(3).
// Unbekannte Werte landen hinter Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Color ist die Anzeigefarbe der Priorität (Fallback: Low).
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "#ff4d4d"
	case PriorityMedium:
		return "#ffd700"
	}
	return "#90EE90"
}

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q (high, medium, low)", s)
}

type ViewMode string

const (
	ViewAllTasks  ViewMode = "allTasks"
	ViewToday     ViewMode = "today"
	ViewNext7Days ViewMode = "next7Days"
)

// ParseViewMode akzeptiert die CLI-Schreibweisen all, today und next7days.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "alltasks":
		return ViewAllTasks, nil
	case "today":
		return ViewToday, nil
	case "next7days", "next-7-days", "week":
		return ViewNext7Days, nil
	}
	return "", fmt.Errorf("unknown view %q (all, today, next7days)", s)
}

type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Completed   bool       `json:"is_completed" yaml:"is_completed"`
	ProjectID   string     `json:"project_id,omitempty" yaml:"project_id,omitempty"`
}

func (t Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TaskInput sind die Formularwerte beim Anlegen/Bearbeiten eines Tasks.
type TaskInput struct {
	Title       string     `validate:"required,min=2,max=100"`
	Description string     `validate:"omitempty,min=5"`
	Priority    Priority   `validate:"required,oneof=high medium low"`
	DueDate     *time.Time `validate:"required"`
	ProjectID   string
}

type ProjectInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"omitempty,min=10,max=200"`
}
