package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/output"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every task",
	Long:  `Deletes all tasks. Prompts for confirmation in interactive mode.`,
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := confirm("Remove ALL tasks?")
		if err != nil || !ok {
			return err
		}
	}

	n, err := a.svc.Clear(context.Background(), a.caller(""))
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "cleared",
			"removed": n,
		})
	}
	output.Messagef(os.Stdout, "Removed %d tasks", n)
	return nil
}
