package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"hufschlaeger.net/todo-client/internal/domain/todo"
	"hufschlaeger.net/todo-client/internal/timing"
	"hufschlaeger.net/todo-client/pkg/utils"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func parseOutput(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	}
	return "", fmt.Errorf("unbekanntes Ausgabeformat %q (table, json, yaml)", s)
}

// taskView ist die Ausgabeform eines Tasks.
type taskView struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Priority      string `json:"priority" yaml:"priority"`
	PriorityColor string `json:"priority_color" yaml:"priority_color"`
	DueDate       string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Completed     bool   `json:"is_completed" yaml:"is_completed"`
	ProjectID     string `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Project       string `json:"project,omitempty" yaml:"project,omitempty"`
	Overdue       bool   `json:"overdue" yaml:"overdue"`
	DueToday      bool   `json:"due_today" yaml:"due_today"`
}

type projectView struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Selected    bool   `json:"selected" yaml:"selected"`
}

func (a *app) taskViews(tasks []todo.Task) []taskView {
	today := timing.Today(a.clock)
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		c := timing.Classify(t, today)
		views = append(views, taskView{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			Priority:      string(t.Priority),
			PriorityColor: t.Priority.Color(),
			DueDate:       utils.FormatDate(t.DueDate),
			Completed:     t.Completed,
			ProjectID:     t.ProjectID,
			Project:       a.projectName(t.ProjectID),
			Overdue:       c.Overdue,
			DueToday:      c.DueToday,
		})
	}
	return views
}

func (a *app) projectViews(projects []todo.Project) []projectView {
	selected := a.coord.Projects.Selected()
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Selected:    p.ID == selected,
		})
	}
	return views
}

func (a *app) printTasks(tasks []todo.Task) error {
	views := a.taskViews(tasks)

	format, _ := parseOutput(a.opts.output)
	if format != outputTable {
		return encode(a.out, format, views)
	}

	if len(views) == 0 {
		fmt.Fprintln(a.out, "ℹ️  Keine Tasks gefunden")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tDUE\tSTATUS\tPROJECT\tTITLE")
	for i, v := range views {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID,
			checkbox(v.Completed),
			v.Priority,
			utils.FormatDateForDisplay(tasks[i].DueDate),
			status(v),
			v.Project,
			utils.TruncateText(v.Title, 60))
	}
	return w.Flush()
}

func (a *app) printTask(task todo.Task) error {
	format, _ := parseOutput(a.opts.output)
	if format != outputTable {
		return encode(a.out, format, a.taskViews([]todo.Task{task})[0])
	}
	return a.printTasks([]todo.Task{task})
}

func (a *app) printProjects(projects []todo.Project) error {
	views := a.projectViews(projects)

	format, _ := parseOutput(a.opts.output)
	if format != outputTable {
		return encode(a.out, format, views)
	}

	if len(views) == 0 {
		fmt.Fprintln(a.out, "ℹ️  Keine Projekte gefunden")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, v := range views {
		name := v.Name
		if v.Selected {
			name += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.ID, name, utils.TruncateText(v.Description, 60))
	}
	return w.Flush()
}

func encode(w io.Writer, format outputFormat, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unbekanntes Ausgabeformat %q", format)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func status(v taskView) string {
	switch {
	case v.Overdue:
		return "overdue"
	case v.DueToday:
		return "today"
	}
	return ""
}
