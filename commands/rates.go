// Package commands holds the CLI subcommands registered on the PocketBase
// root command.
package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"freightcalc/collections"
	"freightcalc/services"
)

// NewRatesCommand returns the "rates" command group for managing the stored
// rate snapshot from the terminal.
func NewRatesCommand(app core.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage the stored freight rate table",
	}
	cmd.AddCommand(newRatesImportCommand(app), newRatesShowCommand(app))
	return cmd
}

func newRatesImportCommand(app core.App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Parse a rate workbook and store it as the current snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			result, err := services.ParseRateWorkbook(f, path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Parsed %d sheet(s): %d air route(s), %d sea route(s)\n",
				result.Sheets,
				result.Table.RouteCount(services.ModeAir),
				result.Table.RouteCount(services.ModeSea))
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "  skipped %s\n", w.String())
			}
			if result.Table.Empty() {
				return fmt.Errorf("%s: %w", path, services.ErrNoRateTable)
			}
			if dryRun {
				fmt.Fprintln(out, "Dry run: snapshot not updated.")
				return nil
			}

			collections.Setup(app)
			store := &services.RecordStore{App: app}
			if err := store.Save(cmd.Context(), result.Table); err != nil {
				return err
			}
			zap.L().Info("rates: snapshot imported from cli",
				zap.String("path", path),
				zap.Int("air_routes", result.Table.RouteCount(services.ModeAir)),
				zap.Int("sea_routes", result.Table.RouteCount(services.ModeSea)),
			)
			fmt.Fprintln(out, "Snapshot updated.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without saving")
	return cmd
}

func newRatesShowCommand(app core.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored rate snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)
			store := &services.RecordStore{App: app}
			table, err := store.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), table)
		},
	}
}

func printTable(w io.Writer, table *services.RateTable) error {
	fmt.Fprintf(w, "Source: %s\nLoaded: %s\n\n", table.Source, table.LoadedAt.Format("2006-01-02 15:04 MST"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Mode\tCountry\tOrigin\tDestination\tRate")
	for _, e := range table.Entries() {
		dest := e.Destination
		if dest == "" {
			dest = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Mode.Label(), e.Country, e.Origin, dest, services.FormatNumber(e.Rate))
	}
	return tw.Flush()
}
