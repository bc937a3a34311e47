package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/output"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

var doneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Mark a task as completed",
	Long:  `Completes a pending task, recording who did it (your user name unless --as is given).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func init() {
	doneCmd.Flags().String("as", "", "name recorded as having completed the task")
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}
	as, _ := cmd.Flags().GetString("as")

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.svc.MarkDone(context.Background(), a.caller(as), id)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Completed task #%d: %s (by %s)", t.ID, t.Title, t.ValidatedBy)
	return nil
}
