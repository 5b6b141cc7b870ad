// Package validate prüft Formulareingaben, bevor eine Anfrage rausgeht.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"hufschlaeger.net/todo-client/internal/domain/todo"
)

var v = validator.New(validator.WithRequiredStructEnabled())

type FieldError struct {
	Field   string
	Message string
}

// Errors sammelt alle Feldfehler eines Formulars.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message liefert die Meldung für ein Feld oder "".
func (e Errors) Message(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

var fieldNames = map[string]string{
	"Title":       "title",
	"Description": "description",
	"Priority":    "priority",
	"DueDate":     "due_date",
	"Name":        "name",
}

// Meldungen wie im Web-Formular
var messages = map[string]string{
	"TaskInput.Title.required":     "Task title is required",
	"TaskInput.Title.min":          "Task title must be at least 2 characters long",
	"TaskInput.Title.max":          "Task title cannot exceed 100 characters",
	"TaskInput.Description.min":    "Task description must be at least 5 characters long",
	"TaskInput.Priority.required":  "Select a priority",
	"TaskInput.Priority.oneof":     "Select a priority",
	"TaskInput.DueDate.required":   "Select a due date",
	"ProjectInput.Name.required":   "Project name is required",
	"ProjectInput.Name.max":        "Project name cannot exceed 100 characters",
	"ProjectInput.Description.min": "Description must be at least 10 characters",
	"ProjectInput.Description.max": "Description cannot exceed 200 characters",
}

func Task(in todo.TaskInput) error {
	return check(in)
}

func Project(in todo.ProjectInput) error {
	return check(in)
}

func check(in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldNames[fe.StructField()]
		if field == "" {
			field = strings.ToLower(fe.StructField())
		}
		msg, ok := messages[fe.StructNamespace()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}
