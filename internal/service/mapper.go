package service

import (
	"fmt"
	"strings"
	"time"

	storeDomain "hufschlaeger.net/todo-client/internal/domain/store"
	"hufschlaeger.net/todo-client/internal/domain/todo"
	"hufschlaeger.net/todo-client/pkg/utils"
)

// Mapper übersetzt zwischen API-Format und Client-Modell.
type Mapper struct {
	location *time.Location
	verbose  bool
}

func NewMapper(loc *time.Location, verbose bool) *Mapper {
	if loc == nil {
		loc = time.Local
	}
	return &Mapper{location: loc, verbose: verbose}
}

// ToTask konvertiert einen API-Todo. Ein unlesbares due_date wird wie ein
// fehlendes behandelt.
func (m *Mapper) ToTask(t storeDomain.Todo) todo.Task {
	task := todo.Task{
		ID:          string(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Priority:    todo.Priority(strings.ToLower(t.Priority)),
		Completed:   t.IsCompleted,
		ProjectID:   string(t.ProjectID),
	}

	if t.DueDate != "" {
		due, err := utils.ParseDate(t.DueDate, m.location)
		if err == nil {
			task.DueDate = &due
		} else if m.verbose {
			fmt.Printf("⚠️  Task %s: %v\n", t.ID, err)
		}
	}

	return task
}

func (m *Mapper) ToTasks(todos []storeDomain.Todo) []todo.Task {
	tasks := make([]todo.Task, 0, len(todos))
	for _, t := range todos {
		tasks = append(tasks, m.ToTask(t))
	}
	return tasks
}

func (m *Mapper) ToProject(p storeDomain.Project) todo.Project {
	return todo.Project{
		ID:          string(p.Key()),
		Name:        p.Name,
		Description: p.Description,
	}
}

func (m *Mapper) ToProjects(projects []storeDomain.Project) []todo.Project {
	out := make([]todo.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, m.ToProject(p))
	}
	return out
}

func (m *Mapper) ToCreateRequest(in todo.TaskInput) storeDomain.CreateTodoRequest {
	return storeDomain.CreateTodoRequest{
		Title:       in.Title,
		Description: in.Description,
		Priority:    string(in.Priority),
		DueDate:     utils.FormatDate(in.DueDate),
		ProjectID:   storeDomain.ID(in.ProjectID),
	}
}

// ToUpdateRequest schickt alle Formularfelder; die API validiert den ganzen Task.
// Ein leeres Projekt geht als null raus und hebt die Zuordnung auf.
func (m *Mapper) ToUpdateRequest(in todo.TaskInput) storeDomain.UpdateTodoRequest {
	priority := string(in.Priority)
	due := utils.FormatDate(in.DueDate)
	projectID := storeDomain.ID(in.ProjectID)
	return storeDomain.UpdateTodoRequest{
		Title:       &in.Title,
		Description: &in.Description,
		Priority:    &priority,
		DueDate:     &due,
		ProjectID:   &projectID,
	}
}

func (m *Mapper) ToProjectRequest(in todo.ProjectInput) storeDomain.ProjectRequest {
	return storeDomain.ProjectRequest{
		Name:        in.Name,
		Description: in.Description,
	}
}

// TaskToInput liefert die Formularwerte eines bestehenden Tasks (Edit-Formular).
func TaskToInput(t todo.Task) todo.TaskInput {
	return todo.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		ProjectID:   t.ProjectID,
	}
}
