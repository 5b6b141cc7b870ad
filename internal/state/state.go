// Package state hält den clientseitigen Zustand: Projekte, Tasks und UI.
// Jeder Container ist unabhängig konstruierbar und wird vom Besitzer
// (Coordinator) per Referenz weitergegeben.
package state

import (
	"slices"
	"sync"

	"hufschlaeger.net/todo-client/internal/domain/todo"
)

type ProjectState struct {
	mu       sync.RWMutex
	projects []todo.Project
	selected string
}

func NewProjectState() *ProjectState {
	return &ProjectState{}
}

func (s *ProjectState) Set(projects []todo.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = slices.Clone(projects)
}

func (s *ProjectState) Projects() []todo.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

// Find sucht ein Projekt per ID
func (s *ProjectState) Find(id string) (todo.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return todo.Project{}, false
}

// Replace ersetzt ein Projekt nach dem Bearbeiten und wählt es aus.
func (s *ProjectState) Replace(updated todo.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.projects {
		if p.ID == updated.ID {
			s.projects[i] = updated
		}
	}
	s.selected = updated.ID
}

func (s *ProjectState) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = slices.DeleteFunc(s.projects, func(p todo.Project) bool { return p.ID == id })
	if s.selected == id {
		s.selected = ""
	}
}

// Select setzt den Projektfilter; "" entfernt ihn.
func (s *ProjectState) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

func (s *ProjectState) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// TaskState hält die zuletzt geladene Rohliste und die daraus abgeleitete,
// gefilterte und sortierte Liste.
type TaskState struct {
	mu        sync.RWMutex
	raw       []todo.Task
	presented []todo.Task
}

func NewTaskState() *TaskState {
	return &TaskState{}
}

func (s *TaskState) Set(raw, presented []todo.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = slices.Clone(raw)
	s.presented = slices.Clone(presented)
}

func (s *TaskState) Raw() []todo.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.raw)
}

func (s *TaskState) Presented() []todo.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.presented)
}

func (s *TaskState) Find(id string) (todo.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.raw {
		if t.ID == id {
			return t, true
		}
	}
	return todo.Task{}, false
}

// SetCompleted setzt das Erledigt-Flag in beiden Listen und liefert den
// vorherigen Wert. ok ist false, wenn der Task nicht im Cache ist.
func (s *TaskState) SetCompleted(id string, completed bool) (previous bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.raw {
		if s.raw[i].ID == id {
			previous, ok = s.raw[i].Completed, true
			s.raw[i].Completed = completed
		}
	}
	for i := range s.presented {
		if s.presented[i].ID == id {
			s.presented[i].Completed = completed
		}
	}
	return previous, ok
}

func (s *TaskState) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match := func(t todo.Task) bool { return t.ID == id }
	s.raw = slices.DeleteFunc(s.raw, match)
	s.presented = slices.DeleteFunc(s.presented, match)
}

type UIState struct {
	mu   sync.RWMutex
	view todo.ViewMode
}

// NewUIState startet in der Ansicht "alle Tasks".
func NewUIState() *UIState {
	return &UIState{view: todo.ViewAllTasks}
}

func (s *UIState) SetView(view todo.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

func (s *UIState) View() todo.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Latch feuert genau einmal pro Session.
type Latch struct {
	mu    sync.Mutex
	fired bool
}

// Fire liefert true beim ersten Aufruf, danach immer false.
func (l *Latch) Fire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fired {
		return false
	}
	l.fired = true
	return true
}
