package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/board"
	"github.com/twiced-technology-gmbh/weekplan/internal/output"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"stats"},
	Short:   "Show task counts, overdue work and the coming weeks",
	Args:    cobra.NoArgs,
	RunE:    runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, warnings, err := a.svc.List(context.Background())
	if err != nil {
		return err
	}
	o := board.Summary(a.cfg.Name, tasks, a.svc.Today())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, o)
	case output.FormatCompact:
		output.SummaryCompact(os.Stdout, o)
	default:
		output.SummaryTable(os.Stdout, o)
	}
	printWarnings(warnings)
	return nil
}
