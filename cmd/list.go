package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/board"
	"github.com/twiced-technology-gmbh/weekplan/internal/date"
	"github.com/twiced-technology-gmbh/weekplan/internal/output"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every task",
	Long: `Lists all tasks in store order, whatever their date.

Filters combine with AND logic. Date bounds use DD/MM/YYYY and are inclusive;
tasks whose stored date does not parse never match a bound.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	f := listCmd.Flags()
	f.Bool("pending", false, "show only pending tasks (same as --status pending)")
	f.String("status", "", "filter by status: pending or done")
	f.String("search", "", "case-insensitive title search")
	f.String("from", "", "only tasks dated on or after DD/MM/YYYY")
	f.String("to", "", "only tasks dated on or before DD/MM/YYYY")
	f.String("by", "", "only tasks completed by this name")
	f.String("sort", board.FieldID, "sort by: id, date or title")
	f.BoolP("reverse", "r", false, "reverse sort order")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	opts, err := listFilter(cmd)
	if err != nil {
		return err
	}
	sortField, _ := cmd.Flags().GetString("sort")
	if err := board.ValidateSortField(sortField); err != nil {
		return err
	}
	reverse, _ := cmd.Flags().GetBool("reverse")

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, warnings, err := a.svc.List(context.Background())
	if err != nil {
		return err
	}
	tasks = board.Filter(tasks, opts)
	board.Sort(tasks, sortField, reverse)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.TaskList{Tasks: tasks, Warnings: warnings})
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks)
	}
	printWarnings(warnings)
	return nil
}

func listFilter(cmd *cobra.Command) (board.FilterOptions, error) {
	var opts board.FilterOptions
	f := cmd.Flags()

	opts.Status, _ = f.GetString("status")
	if pending, _ := f.GetBool("pending"); pending {
		opts.Status = board.StatusPending
	}
	if err := board.ValidateStatus(opts.Status); err != nil {
		return opts, err
	}
	opts.Search, _ = f.GetString("search")
	opts.Assignee, _ = f.GetString("by")

	var err error
	if opts.From, err = dateFlag(cmd, "from"); err != nil {
		return opts, err
	}
	if opts.To, err = dateFlag(cmd, "to"); err != nil {
		return opts, err
	}
	return opts, nil
}

func dateFlag(cmd *cobra.Command, name string) (*date.Date, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil //nolint:nilnil // unset flag
	}
	if err := task.ValidateDate(name, s); err != nil {
		return nil, err
	}
	d, err := date.Parse(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
