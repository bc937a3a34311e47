package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/calendar"
	"github.com/twiced-technology-gmbh/weekplan/internal/output"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a task's title or date",
	Long:  `Replaces the title and/or date of a task. Completion state is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("date", "", "new date as DD/MM/YYYY")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	var opts calendar.EditOptions
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		opts.Title = &v
	}
	if cmd.Flags().Changed("date") {
		v, _ := cmd.Flags().GetString("date")
		opts.Date = &v
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.svc.Edit(context.Background(), a.caller(""), id, opts)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, []task.Task{t})
	default:
		output.TaskDetail(os.Stdout, t)
	}
	return nil
}
