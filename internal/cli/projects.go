package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hufschlaeger.net/todo-client/internal/domain/todo"
)

func newProjectsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Projekte anzeigen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadProjects(cmd.Context()); err != nil {
				return err
			}
			return a.printProjects(a.coord.Projects.Projects())
		},
	}
}

func newProjectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Projekte anlegen, bearbeiten oder löschen",
	}
	cmd.AddCommand(
		newProjectAddCommand(a),
		newProjectEditCommand(a),
		newProjectDeleteCommand(a),
	)
	return cmd
}

func newProjectAddCommand(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Neues Projekt anlegen",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.coord.CreateProject(cmd.Context(), todo.ProjectInput{
				Name:        strings.Join(args, " "),
				Description: description,
			})
			if err != nil {
				return a.formError(err)
			}
			return a.printProjects([]todo.Project{*project})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Beschreibung (10-200 Zeichen)")
	return cmd
}

func newProjectEditCommand(a *app) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Projekt umbenennen oder Beschreibung ändern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.coord.SuppressSummary()
			if err := a.loadProjects(ctx); err != nil {
				return err
			}

			existing, err := a.resolveProject(args[0])
			if err != nil {
				return err
			}
			in := todo.ProjectInput{Name: existing.Name, Description: existing.Description}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}

			project, err := a.coord.UpdateProject(ctx, existing.ID, in)
			if err != nil {
				return a.formError(err)
			}
			return a.printProjects([]todo.Project{*project})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Neuer Name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Neue Beschreibung")
	return cmd
}

func newProjectDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Projekt löschen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a.coord.SuppressSummary()
			if err := a.loadProjects(ctx); err != nil {
				return err
			}

			project, err := a.resolveProject(args[0])
			if err != nil {
				return err
			}
			if !yes && !a.confirm("Are you sure you want to delete this project?") {
				fmt.Fprintln(a.out, "⏭️  Abgebrochen")
				return nil
			}

			if err := a.coord.DeleteProject(ctx, project.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "🗑️  Projekt %s gelöscht\n", project.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Ohne Rückfrage löschen")
	return cmd
}
