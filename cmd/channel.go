package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/calendar"
	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/output"
)

var channelCmd = &cobra.Command{
	Use:   "channel [CHANNEL_ID]",
	Short: "Show or set the planning channel",
	Long: `Without an argument, shows where the pinned planning message lives.
With a channel ID, posts a fresh planning message there and keeps it in sync from now on.
Posting needs the bot token.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChannel,
}

func init() {
	rootCmd.AddCommand(channelCmd)
}

func runChannel(_ *cobra.Command, args []string) error {
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if len(args) == 0 {
		p, ok, err := a.svc.Pointer(ctx)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"configured": ok, "channel_id": p.ChannelID, "message_id": p.MessageID})
		}
		if !ok {
			output.Messagef(os.Stdout, "No planning channel configured.")
			return nil
		}
		output.Messagef(os.Stdout, "Planning message %s in channel %s", p.MessageID, p.ChannelID)
		return nil
	}

	p, err := a.svc.Configure(ctx, a.caller(""), args[0])
	if errors.Is(err, calendar.ErrNoMessenger) {
		return clierr.Newf(clierr.InvalidInput, "no bot token: set %s to post the planning", a.cfg.Discord.TokenEnv)
	}
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, p)
	}
	output.Messagef(os.Stdout, "Planning posted in channel %s (message %s)", p.ChannelID, p.MessageID)
	return nil
}
