package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/output"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

var removeCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a task",
	Long: `Deletes a task for good. The remaining tasks are renumbered 1..N, so IDs shown earlier may change.
Prompts for confirmation in interactive mode.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		tasks, _, err := a.svc.List(ctx)
		if err != nil {
			return err
		}
		t, err := task.Find(tasks, id)
		if err != nil {
			return err
		}
		ok, err := confirm(fmt.Sprintf("Remove task #%d %q?", t.ID, t.Title))
		if err != nil || !ok {
			return err
		}
	}

	t, err := a.svc.Remove(ctx, a.caller(""), id)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "removed",
			"id":     id,
			"title":  t.Title,
		})
	}
	output.Messagef(os.Stdout, "Removed task #%d: %s", id, t.Title)
	return nil
}
