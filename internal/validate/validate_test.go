package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hufschlaeger.net/todo-client/internal/domain/todo"
)

func validTask() todo.TaskInput {
	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	return todo.TaskInput{
		Title:       "Buy milk",
		Description: "two litres",
		Priority:    todo.PriorityHigh,
		DueDate:     &due,
	}
}

func TestTask_Valid(t *testing.T) {
	assert.NoError(t, Task(validTask()))

	in := validTask()
	in.Description = ""
	assert.NoError(t, Task(in), "description is optional")
}

func TestTask_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*todo.TaskInput)
		field  string
		msg    string
	}{
		{"missing title", func(in *todo.TaskInput) { in.Title = "" }, "title", "Task title is required"},
		{"short title", func(in *todo.TaskInput) { in.Title = "x" }, "title", "Task title must be at least 2 characters long"},
		{"long title", func(in *todo.TaskInput) { in.Title = strings.Repeat("x", 101) }, "title", "Task title cannot exceed 100 characters"},
		{"short description", func(in *todo.TaskInput) { in.Description = "abc" }, "description", "Task description must be at least 5 characters long"},
		{"missing priority", func(in *todo.TaskInput) { in.Priority = "" }, "priority", "Select a priority"},
		{"bad priority", func(in *todo.TaskInput) { in.Priority = "urgent" }, "priority", "Select a priority"},
		{"missing due date", func(in *todo.TaskInput) { in.DueDate = nil }, "due_date", "Select a due date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTask()
			tt.mutate(&in)

			err := Task(in)

			var verrs Errors
			require.True(t, errors.As(err, &verrs), "expected validate.Errors, got %v", err)
			assert.Equal(t, tt.msg, verrs.Message(tt.field))
		})
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name  string
		in    todo.ProjectInput
		field string
		msg   string
	}{
		{"valid without description", todo.ProjectInput{Name: "Home"}, "", ""},
		{"valid with description", todo.ProjectInput{Name: "Home", Description: "chores around the house"}, "", ""},
		{"missing name", todo.ProjectInput{}, "name", "Project name is required"},
		{"short description", todo.ProjectInput{Name: "Home", Description: "too short"}, "description", "Description must be at least 10 characters"},
		{"long description", todo.ProjectInput{Name: "Home", Description: strings.Repeat("d", 201)}, "description", "Description cannot exceed 200 characters"},
		{"description at limits", todo.ProjectInput{Name: "Home", Description: strings.Repeat("d", 200)}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Project(tt.in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verrs Errors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.msg, verrs.Message(tt.field))
		})
	}
}

func TestErrors_ErrorString(t *testing.T) {
	err := Errors{{Field: "title", Message: "Task title is required"}, {Field: "due_date", Message: "Select a due date"}}

	assert.Equal(t, "validation failed: title: Task title is required; due_date: Select a due date", err.Error())
}
