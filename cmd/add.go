package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/output"
)

var addCmd = &cobra.Command{
	Use:     "add [TITLE] [DATE]",
	Aliases: []string{"create"},
	Short:   "Add a task",
	Long: `Adds a pending task dated DD/MM/YYYY.

Title and date can be given as positional arguments or via --title and --date.`,
	Args: cobra.MaximumNArgs(2), //nolint:mnd // title and date
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	addCmd.Flags().String("date", "", "task date as DD/MM/YYYY (alternative to positional argument)")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "due" {
			name = "date"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	day, _ := cmd.Flags().GetString("date")
	if len(args) > 0 {
		title = args[0]
	}
	if len(args) > 1 {
		day = args[1]
	}
	if title == "" {
		return clierr.New(clierr.InvalidInput, "title is required (positional argument or --title)")
	}
	if day == "" {
		return clierr.New(clierr.InvalidInput, "date is required (positional argument or --date)")
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.svc.Add(context.Background(), a.caller(""), title, day)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Added task #%d: %s – %s", t.ID, t.Date, t.Title)
	return nil
}
