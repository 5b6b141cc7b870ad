package cli

import (
	"github.com/spf13/cobra"

	"hufschlaeger.net/todo-client/internal/service"
)

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [datei]",
		Short: "Aktuelle Ansicht als Markdown exportieren",
		Long: `Exportiert die Tasks der aktuellen Ansicht (--view, --project) als Markdown.

Ohne Dateiname: todos-<ansicht>[-<projekt>]-YYYY-MM-DD.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context(), false); err != nil {
				return err
			}

			var filename string
			if len(args) == 1 {
				filename = args[0]
			}
			_, err := service.NewExporter(a.coord, a.clock, a.out).ExportToFile(filename)
			return err
		},
	}
}
