// Package fakestore ist ein In-Memory-Task-Store für Tests. Er spricht
// dieselben Routen wie die echte API.
package fakestore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	storeDomain "hufschlaeger.net/todo-client/internal/domain/store"
)

type Server struct {
	mu       sync.Mutex
	projects []storeDomain.Project
	todos    []storeDomain.Todo
	nextID   int
	failures map[string]int
	requests []string

	engine *gin.Engine
}

func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		nextID:   1,
		failures: make(map[string]int),
		engine:   gin.New(),
	}
	s.engine.Use(s.record, s.injectFailures)

	api := s.engine.Group("/api")
	api.GET("/projects", s.listProjects)
	api.POST("/projects", s.createProject)
	api.PATCH("/projects/:id", s.updateProject)
	api.DELETE("/projects/:id", s.deleteProject)
	api.GET("/todos", s.listTodos)
	api.POST("/todos", s.createTodo)
	api.PATCH("/todos/:id", s.updateTodo)
	api.DELETE("/todos/:id", s.deleteTodo)
	api.PUT("/todos/completed/:id", s.toggleTodo)

	return s
}

// Start startet einen httptest-Server; BaseURL ist srv.URL + "/api".
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.engine)
}

// Fail lässt eine Route (z.B. "PUT /api/todos/completed/:id") mit status
// antworten, bis Recover aufgerufen wird.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

func (s *Server) SeedProject(p storeDomain.Project) storeDomain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Key() == "" {
		p.ID = s.newIDLocked()
	}
	s.projects = append(s.projects, p)
	return p
}

func (s *Server) SeedTodo(t storeDomain.Todo) storeDomain.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = s.newIDLocked()
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	s.todos = append(s.todos, t)
	return t
}

func (s *Server) Todos() []storeDomain.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.todos)
}

func (s *Server) Projects() []storeDomain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.projects)
}

// Requests liefert alle bisherigen Requests als "METHOD /path".
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

func (s *Server) newIDLocked() storeDomain.ID {
	id := s.nextID
	s.nextID++
	return storeDomain.ID(strconv.Itoa(id))
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Method+" "+c.Request.URL.Path)
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFailures(c *gin.Context) {
	s.mu.Lock()
	status, ok := s.failures[c.Request.Method+" "+c.FullPath()]
	s.mu.Unlock()

	if ok {
		c.AbortWithStatusJSON(status, storeDomain.ErrorBody{Detail: http.StatusText(status)})
		return
	}
	c.Next()
}

func (s *Server) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.Projects())
}

func (s *Server) createProject(c *gin.Context) {
	var req storeDomain.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"name": []string{"This field is required."}})
		return
	}
	p := s.SeedProject(storeDomain.Project{Name: req.Name, Description: req.Description})
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProject(c *gin.Context) {
	var req storeDomain.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"name": []string{"This field is required."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.projects, func(p storeDomain.Project) bool { return string(p.Key()) == c.Param("id") })
	if i < 0 {
		c.JSON(http.StatusNotFound, storeDomain.ErrorBody{Detail: "Project not found."})
		return
	}
	s.projects[i].Name = req.Name
	s.projects[i].Description = req.Description
	c.JSON(http.StatusOK, s.projects[i])
}

func (s *Server) deleteProject(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Tasks behalten ihre (dann hängende) Projekt-Referenz
	s.projects = slices.DeleteFunc(s.projects, func(p storeDomain.Project) bool { return string(p.Key()) == c.Param("id") })
	c.Status(http.StatusNoContent)
}

func (s *Server) listTodos(c *gin.Context) {
	c.JSON(http.StatusOK, s.Todos())
}

func (s *Server) createTodo(c *gin.Context) {
	var req storeDomain.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.DueDate == "" || req.Priority == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "title, priority and due_date are required"})
		return
	}
	t := s.SeedTodo(storeDomain.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
	})
	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTodo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, storeDomain.ErrorBody{Detail: err.Error()})
		return
	}
	var req storeDomain.UpdateTodoRequest
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, storeDomain.ErrorBody{Detail: err.Error()})
		return
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		c.JSON(http.StatusBadRequest, storeDomain.ErrorBody{Detail: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.todoIndexLocked(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, storeDomain.ErrorBody{Detail: "Todo not found."})
		return
	}
	t := &s.todos[i]
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	// "project_id": null hebt die Zuordnung auf, ein fehlendes Feld nicht.
	if _, ok := fields["project_id"]; ok {
		t.ProjectID = ""
		if req.ProjectID != nil {
			t.ProjectID = *req.ProjectID
		}
	}
	c.JSON(http.StatusOK, *t)
}

func (s *Server) deleteTodo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.todoIndexLocked(c.Param("id")) < 0 {
		c.JSON(http.StatusNotFound, storeDomain.ErrorBody{Detail: "Todo not found."})
		return
	}
	s.todos = slices.DeleteFunc(s.todos, func(t storeDomain.Todo) bool { return string(t.ID) == c.Param("id") })
	c.Status(http.StatusNoContent)
}

func (s *Server) toggleTodo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.todoIndexLocked(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, storeDomain.ErrorBody{Detail: "Todo not found."})
		return
	}
	s.todos[i].IsCompleted = !s.todos[i].IsCompleted
	c.JSON(http.StatusOK, storeDomain.ErrorBody{Detail: "Todo status updated successfully."})
}

func (s *Server) todoIndexLocked(id string) int {
	return slices.IndexFunc(s.todos, func(t storeDomain.Todo) bool { return string(t.ID) == id })
}
