package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hufschlaeger.net/todo-client/internal/domain/todo"
	"hufschlaeger.net/todo-client/internal/repository/taskstore"
	"hufschlaeger.net/todo-client/internal/service"
	"hufschlaeger.net/todo-client/internal/timing"
	"hufschlaeger.net/todo-client/internal/validate"
	"hufschlaeger.net/todo-client/pkg/utils"
)

func newTasksCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Tasks der aktuellen Ansicht anzeigen (dringendste zuerst)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context(), true); err != nil {
				return err
			}
			if a.cfg.Verbose {
				s := a.coord.Summary()
				fmt.Fprintf(cmd.ErrOrStderr(), "🔍 Überfällig: %d, heute fällig: %d (alle Projekte)\n", len(s.Overdue), len(s.DueToday))
			}
			return a.printTasks(a.coord.Tasks.Presented())
		},
	}
}

type taskFlags struct {
	description string
	priority    string
	due         string
	title       string
}

func newTaskCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Einzelne Tasks anlegen, bearbeiten, löschen oder abhaken",
	}
	cmd.AddCommand(
		newTaskAddCommand(a),
		newTaskEditCommand(a),
		newTaskDeleteCommand(a),
		newTaskToggleCommand(a),
	)
	return cmd
}

func newTaskAddCommand(a *app) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Neuen Task anlegen (Projekt über --project)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.load(ctx, false); err != nil {
				return err
			}

			priority, err := todo.ParsePriority(f.priority)
			if err != nil {
				return err
			}
			due, err := a.parseDue(f.due)
			if err != nil {
				return err
			}

			task, err := a.coord.CreateTask(ctx, todo.TaskInput{
				Title:       strings.Join(args, " "),
				Description: f.description,
				Priority:    priority,
				DueDate:     due,
			})
			if err != nil {
				return a.formError(err)
			}
			return a.printTask(*task)
		},
	}

	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Beschreibung (mindestens 5 Zeichen)")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", string(todo.PriorityLow), "Priorität: high, medium, low")
	cmd.Flags().StringVar(&f.due, "due", "", "Fälligkeit: YYYY-MM-DD, today oder tomorrow")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func newTaskEditCommand(a *app) *cobra.Command {
	var (
		f      taskFlags
		moveTo string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Task bearbeiten (nur angegebene Felder ändern sich)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.load(ctx, false); err != nil {
				return err
			}

			existing, ok := a.coord.Tasks.Find(args[0])
			if !ok {
				return fmt.Errorf("task %s: %w", args[0], service.ErrTaskNotLoaded)
			}
			in := service.TaskToInput(existing)

			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = f.title
			}
			if flags.Changed("description") {
				in.Description = f.description
			}
			if flags.Changed("priority") {
				p, err := todo.ParsePriority(f.priority)
				if err != nil {
					return err
				}
				in.Priority = p
			}
			if flags.Changed("due") {
				due, err := a.parseDue(f.due)
				if err != nil {
					return err
				}
				in.DueDate = due
			}
			if flags.Changed("move-to") {
				in.ProjectID = ""
				if strings.TrimSpace(moveTo) != "" {
					p, err := a.resolveProject(moveTo)
					if err != nil {
						return err
					}
					in.ProjectID = p.ID
				}
			}

			task, err := a.coord.UpdateTask(ctx, existing.ID, in)
			if err != nil {
				return a.formError(err)
			}
			return a.printTask(*task)
		},
	}

	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Neuer Titel")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Neue Beschreibung")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "Neue Priorität: high, medium, low")
	cmd.Flags().StringVar(&f.due, "due", "", "Neue Fälligkeit: YYYY-MM-DD, today oder tomorrow")
	cmd.Flags().StringVar(&moveTo, "move-to", "", "In anderes Projekt verschieben (ID oder Name, \"\" entfernt die Zuordnung)")
	return cmd
}

func newTaskDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Task löschen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !a.confirm("Are you sure you want to delete this todo?") {
				fmt.Fprintln(a.out, "⏭️  Abgebrochen")
				return nil
			}

			a.coord.SuppressSummary()
			if err := a.coord.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "🗑️  Task %s gelöscht\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Ohne Rückfrage löschen")
	return cmd
}

func newTaskToggleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Task als erledigt/offen markieren",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.load(ctx, false); err != nil {
				return err
			}

			res, err := a.coord.ToggleCompletion(ctx, args[0])
			if err != nil {
				return err
			}

			state := "offen"
			if res.Completed {
				state = "erledigt"
			}
			fmt.Fprintf(a.out, "🔄 Task %s: %s\n", res.TaskID, state)
			return nil
		},
	}
}

// parseDue akzeptiert YYYY-MM-DD (und die anderen API-Formate), today und tomorrow.
func (a *app) parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	today := timing.Today(a.clock)

	var due time.Time
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "today":
		due = today
	case "tomorrow":
		due = timing.AddDays(today, 1)
	default:
		parsed, err := utils.ParseDate(s, today.Location())
		if err != nil {
			return nil, fmt.Errorf("--due: %w", err)
		}
		due = parsed
	}
	return &due, nil
}

// formError gibt Feldfehler zeilenweise aus, wie sie im Formular stünden.
// 4xx-Antworten der API bekommen keinen Toast, daher hier deren Detail.
func (a *app) formError(err error) error {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fmt.Fprintf(a.out, "❌ %s: %s\n", fe.Field, fe.Message)
		}
		return err
	}

	var apiErr *taskstore.Error
	if errors.As(err, &apiErr) && apiErr.IsClientError() {
		fmt.Fprintf(a.out, "❌ %s\n", apiErr.Detail())
	}
	return err
}
