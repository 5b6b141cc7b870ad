package taskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"hufschlaeger.net/todo-client/internal/config"
	storeDomain "hufschlaeger.net/todo-client/internal/domain/store"
)

// Error ist eine Nicht-2xx-Antwort der API.
type Error struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed %d: %s", e.Op, e.StatusCode, e.Body)
}

// IsClientError: 4xx gelten als Validierungsproblem, das schon im Formular
// gemeldet wurde.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Detail liefert das "detail"-Feld der Fehlerantwort, sonst den Body.
func (e *Error) Detail() string {
	var body storeDomain.ErrorBody
	if err := json.Unmarshal([]byte(e.Body), &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return e.Body
}

// IsClientError prüft, ob err (auch gewrappt) eine 4xx-Antwort ist.
func IsClientError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsClientError()
}

type Repository struct {
	config     *config.Config
	httpClient *http.Client
	baseURL    string
}

func NewRepository(cfg *config.Config) *Repository {
	return &Repository{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:    cfg.GetAPIBaseURL(),
	}
}

// Project operations

func (r *Repository) GetProjects(ctx context.Context) ([]storeDomain.Project, error) {
	var projects []storeDomain.Project
	err := r.do(ctx, "get projects", http.MethodGet, "/projects", nil, &projects)
	return projects, err
}

func (r *Repository) CreateProject(ctx context.Context, project storeDomain.ProjectRequest) (*storeDomain.Project, error) {
	var created storeDomain.Project
	if err := r.do(ctx, "create project", http.MethodPost, "/projects", project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Repository) UpdateProject(ctx context.Context, projectID string, project storeDomain.ProjectRequest) (*storeDomain.Project, error) {
	var updated storeDomain.Project
	if err := r.do(ctx, "update project", http.MethodPatch, "/projects/"+url.PathEscape(projectID), project, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) DeleteProject(ctx context.Context, projectID string) error {
	return r.do(ctx, "delete project", http.MethodDelete, "/projects/"+url.PathEscape(projectID), nil, nil)
}

// Todo operations

func (r *Repository) GetTodos(ctx context.Context) ([]storeDomain.Todo, error) {
	var todos []storeDomain.Todo
	err := r.do(ctx, "get todos", http.MethodGet, "/todos", nil, &todos)
	return todos, err
}

func (r *Repository) CreateTodo(ctx context.Context, todo storeDomain.CreateTodoRequest) (*storeDomain.Todo, error) {
	var created storeDomain.Todo
	if err := r.do(ctx, "create todo", http.MethodPost, "/todos", todo, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Repository) UpdateTodo(ctx context.Context, todoID string, updates storeDomain.UpdateTodoRequest) (*storeDomain.Todo, error) {
	var updated storeDomain.Todo
	if err := r.do(ctx, "update todo", http.MethodPatch, "/todos/"+url.PathEscape(todoID), updates, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) DeleteTodo(ctx context.Context, todoID string) error {
	return r.do(ctx, "delete todo", http.MethodDelete, "/todos/"+url.PathEscape(todoID), nil, nil)
}

// ToggleTodoCompletion schaltet is_completed serverseitig um.
func (r *Repository) ToggleTodoCompletion(ctx context.Context, todoID string) error {
	return r.do(ctx, "toggle todo", http.MethodPut, "/todos/completed/"+url.PathEscape(todoID), nil, nil)
}

// ValidateConnection prüft ob die API erreichbar ist
func (r *Repository) ValidateConnection(ctx context.Context) error {
	if _, err := r.GetProjects(ctx); err != nil {
		return fmt.Errorf("task store connection failed: %w", err)
	}
	return nil
}

// do schickt einen Request; in und out dürfen nil sein.
func (r *Repository) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.config.Verbose {
		fmt.Printf("🌐 %s %s (%s)\n", method, req.URL.Path, requestID)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && r.config.Verbose {
			fmt.Printf("⚠️  fehler beim Schliessen des Response bodies: %v\n", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &Error{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
