package service

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"hufschlaeger.net/todo-client/internal/domain/todo"
	"hufschlaeger.net/todo-client/internal/timing"
	"hufschlaeger.net/todo-client/pkg/utils"
)

// Exporter schreibt die aktuell angezeigte Task-Liste als Markdown.
type Exporter struct {
	coordinator *Coordinator
	clock       timing.Clock
	out         io.Writer
}

// NewExporter schreibt Fortschrittsmeldungen nach out (nil: verwerfen).
func NewExporter(coordinator *Coordinator, clock timing.Clock, out io.Writer) *Exporter {
	if out == nil {
		out = io.Discard
	}
	return &Exporter{coordinator: coordinator, clock: clock, out: out}
}

// ExportToFile schreibt den Markdown-Export nach filename (leer: Standardname).
func (e *Exporter) ExportToFile(filename string) (string, error) {
	fmt.Fprintln(e.out, "📄 Exportiere zu Markdown-Datei...")

	if filename == "" {
		filename = e.GenerateFilename()
	}
	tasks := e.coordinator.Tasks.Presented()
	content := e.GenerateMarkdown(tasks)

	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("datei-Export fehlgeschlagen: %w", err)
	}

	fmt.Fprintf(e.out, "✅ Datei erstellt: %s (%d Tasks)\n", filename, len(tasks))
	return filename, nil
}

// GenerateFilename: todos-<ansicht>[-<projekt>]-YYYY-MM-DD.md
func (e *Exporter) GenerateFilename() string {
	timestamp := e.clock.Now().Format(utils.DateLayout)
	view := strings.ToLower(string(e.coordinator.UI.View()))

	if project, ok := e.coordinator.Projects.Find(e.coordinator.Projects.Selected()); ok {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(project.Name)), " ", "-")
		return fmt.Sprintf("todos-%s-%s-%s.md", view, name, timestamp)
	}

	return fmt.Sprintf("todos-%s-%s.md", view, timestamp)
}

func (e *Exporter) GenerateMarkdown(tasks []todo.Task) string {
	var content strings.Builder
	today := timing.Today(e.clock)

	content.WriteString(fmt.Sprintf("# Todo Export - %s\n\n", viewTitle(e.coordinator.UI.View())))
	content.WriteString(fmt.Sprintf("**Export-Zeit:** %s  \n", e.clock.Now().Format("02.01.2006 15:04:05")))
	content.WriteString(fmt.Sprintf("**Anzahl Tasks:** %d  \n", len(tasks)))

	if project, ok := e.coordinator.Projects.Find(e.coordinator.Projects.Selected()); ok {
		content.WriteString(fmt.Sprintf("**Projekt:** %s  \n", utils.EscapeMarkdown(project.Name)))
	}
	content.WriteString("\n")

	open, done := splitByCompletion(tasks)
	if len(open) > 0 {
		content.WriteString("## 🟢 Offene Tasks\n\n")
		for _, task := range open {
			content.WriteString(e.formatTaskAsMarkdown(task, today))
		}
	}

	if len(done) > 0 {
		content.WriteString("## ✅ Erledigte Tasks\n\n")
		for _, task := range done {
			content.WriteString(e.formatTaskAsMarkdown(task, today))
		}
	}

	return content.String()
}

func (e *Exporter) formatTaskAsMarkdown(task todo.Task, today time.Time) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("### %s\n\n", utils.EscapeMarkdown(task.Title)))

	content.WriteString("| Feld | Wert |\n")
	content.WriteString("|------|------|\n")
	content.WriteString(fmt.Sprintf("| **Priorität** | %s |\n", utils.FormatBadge(string(task.Priority))))
	content.WriteString(fmt.Sprintf("| **Fällig** | %s |\n", utils.FormatDateForDisplay(task.DueDate)))

	c := timing.Classify(task, today)
	switch {
	case c.Overdue:
		content.WriteString("| **Status** | ⚠️ überfällig |\n")
	case c.DueToday:
		content.WriteString("| **Status** | 📅 heute fällig |\n")
	}

	if project, ok := e.coordinator.Projects.Find(task.ProjectID); ok {
		content.WriteString(fmt.Sprintf("| **Projekt** | %s |\n", utils.EscapeTableCell(project.Name)))
	}
	content.WriteString("\n")

	if task.Description != "" {
		content.WriteString(utils.TruncateText(task.Description, 500))
		content.WriteString("\n\n")
	}

	content.WriteString("---\n\n")
	return content.String()
}

func splitByCompletion(tasks []todo.Task) (open, done []todo.Task) {
	for _, task := range tasks {
		if task.Completed {
			done = append(done, task)
		} else {
			open = append(open, task)
		}
	}
	return open, done
}

func viewTitle(view todo.ViewMode) string {
	switch view {
	case todo.ViewToday:
		return "Today"
	case todo.ViewNext7Days:
		return "Next 7 Days"
	default:
		return "All Tasks"
	}
}
