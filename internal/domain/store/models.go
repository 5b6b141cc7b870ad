package store

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID ist ein opaker Schlüssel der Task-Store-API. Die API liefert numerische
// IDs, der Client behandelt sie als Strings. Nur kanonische Dezimalzahlen
// ("42", nicht "007" oder "+5") gehen als JSON-Zahl zurück.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

type Todo struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
	IsCompleted bool   `json:"is_completed"`
	ProjectID   ID     `json:"project_id,omitempty"`
}

// Project wird je nach API-Version mit "id" oder "project_id" ausgeliefert.
type Project struct {
	ID          ID     `json:"id,omitempty"`
	ProjectID   ID     `json:"project_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Key liefert die gesetzte ID des Projekts.
func (p Project) Key() ID {
	if p.ID != "" {
		return p.ID
	}
	return p.ProjectID
}

type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	ProjectID   ID     `json:"project_id"`
}

// UpdateTodoRequest: project_id wird immer gesendet, nil bzw. "" als null.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	ProjectID   *ID     `json:"project_id"`
}

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorBody ist das Fehlerformat der API ({"detail": "..."}).
type ErrorBody struct {
	Detail string `json:"detail"`
}
