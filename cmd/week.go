package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/weekplan/internal/output"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show a week of the planning",
	Long: `Shows the tasks dated in the current week (Monday to Sunday), or another week with --offset.
This is the default command.`,
	Args: cobra.NoArgs,
	RunE: runWeek,
}

func init() {
	for _, c := range []*cobra.Command{weekCmd, rootCmd} {
		c.Flags().IntP("offset", "o", 0, "weeks away from the current one (negative for past weeks)")
		c.Flags().Bool("plain", false, "plain table instead of rendered markdown")
	}
	rootCmd.AddCommand(weekCmd)
}

func runWeek(cmd *cobra.Command, _ []string) error {
	offset, _ := cmd.Flags().GetInt("offset")
	plain, _ := cmd.Flags().GetBool("plain")

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	v, err := a.svc.Week(ctx, offset)
	if err != nil {
		return err
	}

	format := outputFormat()
	switch format {
	case output.FormatJSON:
		return output.JSON(os.Stdout, v)
	case output.FormatCompact:
		tasks, _, err := a.svc.List(ctx)
		if err != nil {
			return err
		}
		output.WeekCompact(os.Stdout, v, tasks)
		return nil
	case output.FormatTable:
		output.WeekTable(os.Stdout, v)
		return nil
	}

	stdout := int(os.Stdout.Fd()) //nolint:gosec // fd fits in int
	tty := term.IsTerminal(stdout)
	if format == output.FormatAuto && (plain || !tty) {
		output.WeekTable(os.Stdout, v)
		return nil
	}
	width := 0
	if tty {
		if w, _, err := term.GetSize(stdout); err == nil {
			width = w
		}
	}
	return output.RenderMarkdown(os.Stdout, output.WeekMarkdown(v), width, tty && !colorDisabled())
}
