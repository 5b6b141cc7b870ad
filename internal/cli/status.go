package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type connectionChecker interface {
	ValidateConnection(ctx context.Context) error
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Konfiguration und API-Verbindung anzeigen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, "Todo Client Status")
			fmt.Fprintln(a.out, strings.Repeat("=", 40))

			fmt.Fprintf(a.out, "  API URL:   %s\n", a.cfg.GetAPIBaseURL())
			fmt.Fprintf(a.out, "  Timeout:   %s\n", a.cfg.HTTPTimeout)
			fmt.Fprintf(a.out, "  Zeitzone:  %s\n", a.loc)
			fmt.Fprintf(a.out, "  Ansicht:   %s\n", a.coord.UI.View())
			if a.cfg.ConfigFile != "" {
				fmt.Fprintf(a.out, "  Config:    %s\n", a.cfg.ConfigFile)
			}

			checker, ok := a.store.(connectionChecker)
			if !ok {
				fmt.Fprintln(a.out, "  Status:    unbekannt")
				return nil
			}
			if err := checker.ValidateConnection(cmd.Context()); err != nil {
				fmt.Fprintf(a.out, "  Status:    FAILED (%s)\n", err)
				return err
			}
			fmt.Fprintln(a.out, "  Status:    CONNECTED")
			return nil
		},
	}
}
