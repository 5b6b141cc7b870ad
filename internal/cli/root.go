package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hufschlaeger.net/todo-client/internal/config"
	"hufschlaeger.net/todo-client/internal/domain/todo"
	"hufschlaeger.net/todo-client/internal/notify"
	"hufschlaeger.net/todo-client/internal/repository/taskstore"
	"hufschlaeger.net/todo-client/internal/service"
	"hufschlaeger.net/todo-client/internal/timing"
)

// Deps erlaubt es, Uhr, Task Store und Eingabe auszutauschen (Tests).
type Deps struct {
	Clock timing.Clock
	Store service.TaskStore
	In    io.Reader
}

type rootOptions struct {
	apiURL  string
	view    string
	project string
	output  string
	verbose bool
}

// app ist der pro Aufruf aufgebaute Zustand.
type app struct {
	opts    rootOptions
	deps    Deps
	cfg     *config.Config
	loc     *time.Location
	clock   timing.Clock
	store   service.TaskStore
	toaster *notify.Toaster
	coord   *service.Coordinator
	out     io.Writer
	in      io.Reader
}

const longUsage = `Todo Client für die Task-Store-API

Zeigt Projekte und Tasks an, sortiert nach Dringlichkeit, und legt Tasks
und Projekte an, bearbeitet und löscht sie.

Beispiele:
  # Alle Tasks, dringendste zuerst
  todo tasks

  # Heute fällige Tasks eines Projekts
  todo tasks --view today --project Home

  # Task anlegen
  todo task add "Write report" --priority high --due 2024-06-12

  # Als Markdown exportieren
  todo export --view next7days

  # Verbindung zur API prüfen
  todo status

Environment Variables:
  TODO_API_BASE_URL    Basis-URL der API (Standard: http://localhost:8000/api)
  TODO_HTTP_TIMEOUT    Timeout für API-Requests (z.B. 30s)
  TODO_TOAST_DURATION  Anzeigedauer von Hinweisen
  TODO_TOAST_THROTTLE  Mindestabstand zwischen Hinweisen
  TODO_TOAST_LIMIT     Maximal gleichzeitig sichtbare Hinweise
  TODO_TIMEZONE        Zeitzone für Tagesvergleiche (Standard: lokal)
  TODO_CONFIG          Pfad zur YAML-Konfiguration
  VERBOSE              Debug-Ausgaben aktivieren`

// NewRootCommand baut den Kommandobaum.
func NewRootCommand(deps Deps) *cobra.Command {
	a := &app{deps: deps}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Todo Client für die Task-Store-API",
		Long:          longUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.cfg != nil && a.cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "🔔 Aktive Hinweise: %d\n", len(a.toaster.Active()))
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.apiURL, "api-url", "", "Basis-URL der API (überschreibt TODO_API_BASE_URL)")
	flags.StringVar(&a.opts.view, "view", "all", "Ansicht: all, today, next7days")
	flags.StringVar(&a.opts.project, "project", "", "Projekt (ID oder Name) als Filter")
	flags.StringVarP(&a.opts.output, "output", "o", "table", "Ausgabeformat: table, json, yaml")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Debug-Ausgaben")

	root.AddCommand(
		newTasksCommand(a),
		newTaskCommand(a),
		newProjectsCommand(a),
		newProjectCommand(a),
		newExportCommand(a),
		newStatusCommand(a),
	)

	return root
}

// Execute führt den Kommandobaum mit os.Args aus.
func Execute(ctx context.Context) error {
	return NewRootCommand(Deps{}).ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	if _, err := parseOutput(a.opts.output); err != nil {
		return err
	}
	view, err := todo.ParseViewMode(a.opts.view)
	if err != nil {
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	if a.opts.apiURL != "" {
		cfg.APIBaseURL = a.opts.apiURL
	}
	if a.opts.verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("konfiguration ungültig: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.loc = loc
	a.out = cmd.OutOrStdout()
	a.in = a.deps.In
	if a.in == nil {
		a.in = os.Stdin
	}

	a.clock = a.deps.Clock
	if a.clock == nil {
		a.clock = timing.SystemClock{Location: loc}
	}

	a.store = a.deps.Store
	if a.store == nil {
		a.store = taskstore.NewRepository(cfg)
	}

	a.toaster = notify.NewToaster(cmd.ErrOrStderr(), notify.Options{
		Duration: cfg.ToastDuration,
		Throttle: cfg.ToastThrottle,
		Limit:    cfg.ToastLimit,
		Clock:    a.clock,
	})

	a.coord = service.NewCoordinator(a.store, service.NewMapper(loc, cfg.Verbose), a.clock, a.toaster)
	a.coord.UI.SetView(view)
	return nil
}

// loadProjects lädt die Projekte und wendet --project an.
func (a *app) loadProjects(ctx context.Context) error {
	if err := a.coord.FetchProjects(ctx); err != nil {
		return err
	}
	if a.opts.project == "" {
		return nil
	}
	project, err := a.resolveProject(a.opts.project)
	if err != nil {
		return err
	}
	a.coord.SelectProject(project.ID)
	return nil
}

// load lädt Projekte und Tasks. withSummary steuert den Erstlade-Hinweis.
func (a *app) load(ctx context.Context, withSummary bool) error {
	if !withSummary {
		a.coord.SuppressSummary()
	}
	if err := a.loadProjects(ctx); err != nil {
		return err
	}
	return a.coord.FetchTodos(ctx)
}

// resolveProject akzeptiert ID oder Namen (ohne Groß-/Kleinschreibung).
func (a *app) resolveProject(ref string) (todo.Project, error) {
	if p, ok := a.coord.Projects.Find(ref); ok {
		return p, nil
	}
	for _, p := range a.coord.Projects.Projects() {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return todo.Project{}, fmt.Errorf("unbekanntes Projekt: %q", ref)
}

func (a *app) projectName(id string) string {
	if p, ok := a.coord.Projects.Find(id); ok {
		return p.Name
	}
	return ""
}
