package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	storeDomain "hufschlaeger.net/todo-client/internal/domain/store"
	"hufschlaeger.net/todo-client/internal/domain/todo"
	"hufschlaeger.net/todo-client/internal/notify"
	"hufschlaeger.net/todo-client/internal/repository/taskstore"
	"hufschlaeger.net/todo-client/internal/state"
	"hufschlaeger.net/todo-client/internal/timing"
	"hufschlaeger.net/todo-client/internal/validate"
)

var ErrTaskNotLoaded = errors.New("task not loaded")

// TaskStore ist die entfernte CRUD-API für Tasks und Projekte.
type TaskStore interface {
	GetProjects(ctx context.Context) ([]storeDomain.Project, error)
	CreateProject(ctx context.Context, project storeDomain.ProjectRequest) (*storeDomain.Project, error)
	UpdateProject(ctx context.Context, projectID string, project storeDomain.ProjectRequest) (*storeDomain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	GetTodos(ctx context.Context) ([]storeDomain.Todo, error)
	CreateTodo(ctx context.Context, todo storeDomain.CreateTodoRequest) (*storeDomain.Todo, error)
	UpdateTodo(ctx context.Context, todoID string, updates storeDomain.UpdateTodoRequest) (*storeDomain.Todo, error)
	DeleteTodo(ctx context.Context, todoID string) error
	ToggleTodoCompletion(ctx context.Context, todoID string) error
}

type ToggleStatus int

const (
	ToggleCommitted ToggleStatus = iota
	ToggleRolledBack
)

func (s ToggleStatus) String() string {
	if s == ToggleCommitted {
		return "committed"
	}
	return "rolled back"
}

// ToggleResult beschreibt den Ausgang eines optimistischen Toggles.
type ToggleResult struct {
	TaskID    string
	Previous  bool
	Completed bool
	Status    ToggleStatus
}

// Coordinator führt Änderungen gegen den Task Store aus und hält danach
// Projekt-, Task- und UI-Zustand aktuell.
type Coordinator struct {
	store    TaskStore
	mapper   *Mapper
	clock    timing.Clock
	notifier notify.Notifier

	Projects *state.ProjectState
	Tasks    *state.TaskState
	UI       *state.UIState

	// firstLoad: Überfällig/Heute-Hinweise nur einmal pro Session
	firstLoad state.Latch
}

func NewCoordinator(store TaskStore, mapper *Mapper, clock timing.Clock, notifier notify.Notifier) *Coordinator {
	return &Coordinator{
		store:    store,
		mapper:   mapper,
		clock:    clock,
		notifier: notifier,
		Projects: state.NewProjectState(),
		Tasks:    state.NewTaskState(),
		UI:       state.NewUIState(),
	}
}

// Load lädt Projekte und Tasks.
func (c *Coordinator) Load(ctx context.Context) error {
	if err := c.FetchProjects(ctx); err != nil {
		return err
	}
	return c.FetchTodos(ctx)
}

func (c *Coordinator) FetchProjects(ctx context.Context) error {
	projects, err := c.store.GetProjects(ctx)
	if err != nil {
		c.notifier.Error("Error fetching projects")
		return fmt.Errorf("fehler beim Laden der Projekte: %w", err)
	}
	c.Projects.Set(c.mapper.ToProjects(projects))
	return nil
}

// FetchTodos lädt alle Tasks neu und leitet die angezeigte Liste ab. Nach
// dem ersten erfolgreichen Laden werden überfällige und heute fällige Tasks
// einmalig gemeldet.
func (c *Coordinator) FetchTodos(ctx context.Context) error {
	todos, err := c.store.GetTodos(ctx)
	if err != nil {
		c.reportFailure(err, "Failed to fetch tasks!")
		return fmt.Errorf("fehler beim Laden der Tasks: %w", err)
	}

	tasks := c.mapper.ToTasks(todos)
	today := timing.Today(c.clock)

	if c.firstLoad.Fire() {
		if summary := timing.Summarize(tasks, today); !summary.Empty() {
			c.notifySummary(summary)
		}
	}

	c.Tasks.Set(tasks, timing.Present(tasks, c.UI.View(), c.Projects.Selected(), today))
	return nil
}

// Rederive berechnet die angezeigte Liste aus dem Cache neu (ohne Request).
func (c *Coordinator) Rederive() {
	raw := c.Tasks.Raw()
	c.Tasks.Set(raw, timing.Present(raw, c.UI.View(), c.Projects.Selected(), timing.Today(c.clock)))
}

func (c *Coordinator) SetView(view todo.ViewMode) {
	c.UI.SetView(view)
	c.Rederive()
}

func (c *Coordinator) SelectProject(projectID string) {
	c.Projects.Select(projectID)
	c.Rederive()
}

// SuppressSummary verbraucht den Erstlade-Hinweis, z.B. für einzelne
// CLI-Kommandos ohne Listenansicht.
func (c *Coordinator) SuppressSummary() {
	c.firstLoad.Fire()
}

// Summary liefert überfällige und heute fällige Tasks der ungefilterten Liste.
func (c *Coordinator) Summary() timing.Summary {
	return timing.Summarize(c.Tasks.Raw(), timing.Today(c.clock))
}

// Task operations

func (c *Coordinator) CreateTask(ctx context.Context, in todo.TaskInput) (*todo.Task, error) {
	in = normalizeTaskInput(in)
	if in.ProjectID == "" {
		in.ProjectID = c.Projects.Selected()
	}
	if err := validate.Task(in); err != nil {
		return nil, err
	}

	created, err := c.store.CreateTodo(ctx, c.mapper.ToCreateRequest(in))
	if err != nil {
		c.reportFailure(err, "Failed to add task!")
		return nil, fmt.Errorf("task-Erstellung fehlgeschlagen: %w", err)
	}

	c.notifier.Success("Task added successfully!")
	c.refreshAfterMutation(ctx)

	task := c.mapper.ToTask(*created)
	return &task, nil
}

func (c *Coordinator) UpdateTask(ctx context.Context, taskID string, in todo.TaskInput) (*todo.Task, error) {
	in = normalizeTaskInput(in)
	if err := validate.Task(in); err != nil {
		return nil, err
	}

	updated, err := c.store.UpdateTodo(ctx, taskID, c.mapper.ToUpdateRequest(in))
	if err != nil {
		c.reportFailure(err, "Failed to update task!")
		return nil, fmt.Errorf("task-Update fehlgeschlagen: %w", err)
	}

	c.notifier.Success("Task updated successfully!")
	c.refreshAfterMutation(ctx)

	task := c.mapper.ToTask(*updated)
	if task.ID == "" {
		task.ID = taskID
	}
	return &task, nil
}

// DeleteTask entfernt den Task nach Bestätigung durch den Server sofort
// lokal und lädt danach neu.
func (c *Coordinator) DeleteTask(ctx context.Context, taskID string) error {
	if err := c.store.DeleteTodo(ctx, taskID); err != nil {
		c.reportFailure(err, "Failed to delete task!")
		return fmt.Errorf("task-Löschen fehlgeschlagen: %w", err)
	}

	c.Tasks.Remove(taskID)
	c.notifier.Success("Task deleted successfully!")
	c.refreshAfterMutation(ctx)
	return nil
}

// ToggleCompletion schaltet den Task optimistisch um. Lehnt der Server ab,
// wird der alte Wert wiederhergestellt (ToggleRolledBack) und der Fehler
// zurückgegeben. Kein automatischer Retry.
func (c *Coordinator) ToggleCompletion(ctx context.Context, taskID string) (ToggleResult, error) {
	task, ok := c.Tasks.Find(taskID)
	if !ok {
		return ToggleResult{TaskID: taskID, Status: ToggleRolledBack}, fmt.Errorf("task %s: %w", taskID, ErrTaskNotLoaded)
	}

	previous := task.Completed
	c.Tasks.SetCompleted(taskID, !previous)

	if err := c.store.ToggleTodoCompletion(ctx, taskID); err != nil {
		c.Tasks.SetCompleted(taskID, previous)
		c.notifier.Error("Failed to update task status!")
		return ToggleResult{TaskID: taskID, Previous: previous, Completed: previous, Status: ToggleRolledBack},
			fmt.Errorf("task-Status-Update fehlgeschlagen: %w", err)
	}

	if !previous {
		c.notifier.Success("Task marked as completed!")
	}
	c.refreshAfterMutation(ctx)

	return ToggleResult{TaskID: taskID, Previous: previous, Completed: !previous, Status: ToggleCommitted}, nil
}

// Project operations

func (c *Coordinator) CreateProject(ctx context.Context, in todo.ProjectInput) (*todo.Project, error) {
	in = normalizeProjectInput(in)
	if err := validate.Project(in); err != nil {
		return nil, err
	}

	created, err := c.store.CreateProject(ctx, c.mapper.ToProjectRequest(in))
	if err != nil {
		c.reportFailure(err, "Failed to add project!")
		return nil, fmt.Errorf("projekt-Erstellung fehlgeschlagen: %w", err)
	}

	c.notifier.Success("Project added successfully!")
	if err := c.FetchProjects(ctx); err != nil && c.mapper.verbose {
		fmt.Printf("⚠️  %v\n", err)
	}

	project := c.mapper.ToProject(*created)
	return &project, nil
}

// UpdateProject speichert Name/Beschreibung und wählt das Projekt aus.
func (c *Coordinator) UpdateProject(ctx context.Context, projectID string, in todo.ProjectInput) (*todo.Project, error) {
	in = normalizeProjectInput(in)
	if err := validate.Project(in); err != nil {
		return nil, err
	}

	updated, err := c.store.UpdateProject(ctx, projectID, c.mapper.ToProjectRequest(in))
	if err != nil {
		c.reportFailure(err, "Failed to update project!")
		return nil, fmt.Errorf("projekt-Update fehlgeschlagen: %w", err)
	}

	project := c.mapper.ToProject(*updated)
	if project.ID == "" {
		project.ID = projectID
	}
	c.Projects.Replace(project)
	c.notifier.Success("Project updated successfully!")
	c.refreshAfterMutation(ctx)

	return &project, nil
}

// DeleteProject löscht das Projekt; war es ausgewählt, geht die Ansicht
// zurück auf "alle Tasks".
func (c *Coordinator) DeleteProject(ctx context.Context, projectID string) error {
	if err := c.store.DeleteProject(ctx, projectID); err != nil {
		c.reportFailure(err, "Failed to delete project!")
		return fmt.Errorf("projekt-Löschen fehlgeschlagen: %w", err)
	}

	if c.Projects.Selected() == projectID {
		c.UI.SetView(todo.ViewAllTasks)
	}
	c.Projects.Remove(projectID)
	c.notifier.Success("Project deleted successfully!")

	if err := c.FetchProjects(ctx); err != nil && c.mapper.verbose {
		fmt.Printf("⚠️  %v\n", err)
	}
	c.refreshAfterMutation(ctx)
	return nil
}

// refreshAfterMutation lädt die Tasks neu. Fehler wurden bereits per Toast
// gemeldet; die Änderung selbst war erfolgreich.
func (c *Coordinator) refreshAfterMutation(ctx context.Context) {
	if err := c.FetchTodos(ctx); err != nil && c.mapper.verbose {
		fmt.Printf("⚠️  %v\n", err)
	}
}

func (c *Coordinator) notifySummary(summary timing.Summary) {
	if n := len(summary.Overdue); n > 0 {
		c.notifier.Warning(fmt.Sprintf("You have %d overdue tasks!", n))
	}
	if n := len(summary.DueToday); n > 0 {
		c.notifier.Info(fmt.Sprintf("You have %d tasks due today!", n))
	}
}

// reportFailure zeigt den generischen Fehler-Toast, außer bei 4xx: die gelten
// als Validierungsfehler, die schon im Formular stehen.
func (c *Coordinator) reportFailure(err error, message string) {
	if taskstore.IsClientError(err) {
		return
	}
	c.notifier.Error(message)
}

func normalizeTaskInput(in todo.TaskInput) todo.TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ProjectID = strings.TrimSpace(in.ProjectID)
	return in
}

func normalizeProjectInput(in todo.ProjectInput) todo.ProjectInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
