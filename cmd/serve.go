package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/discord"
	"github.com/twiced-technology-gmbh/weekplan/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Discord bot",
	Long: `Connects to Discord, registers the calendar slash commands and answers them until interrupted.

With --watch, hand edits to the tasks file also refresh the pinned planning message.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Bool("watch", false, "refresh the planning message when the tasks file changes")
	serveCmd.Flags().String("guild", "", "register commands in this server only (overrides discord.guild_id)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	token, ok := cfg.Token()
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "no bot token: set %s in the environment or a .env file", cfg.Discord.TokenEnv).
			WithDetails(map[string]any{"env": cfg.Discord.TokenEnv})
	}

	session, err := discord.NewSession(token)
	if err != nil {
		return err
	}

	level := cfg.LogLevel()
	log := newLogger(cfg, os.Stderr)
	a, err := openApp(appOptions{
		messenger: discord.NewMessenger(session, log),
		logLevel:  &level,
		deferSync: true,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	guild := cfg.Discord.GuildID
	if cmd.Flags().Changed("guild") {
		guild, _ = cmd.Flags().GetString("guild")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		startSyncWatcher(ctx, a)
	}

	a.log.Info("starting bot", "name", cfg.Name, "backend", cfg.Storage.Backend, "guild_id", guild)
	return discord.NewBot(session, a.svc, a.log, guild).Run(ctx)
}

// startSyncWatcher refreshes the pinned message when the tasks file is
// edited outside the bot.
func startSyncWatcher(ctx context.Context, a *app) {
	path := a.stores.WatchPath
	if path == "" {
		a.log.Warn("--watch ignored: storage backend has no tasks file", "backend", a.cfg.Storage.Backend)
		return
	}

	w, err := watcher.New(filepath.Dir(path), []string{path}, func() {
		a.log.Info("tasks file changed, refreshing planning", "path", path)
		a.svc.Syncer().Refresh(ctx)
	})
	if err != nil {
		a.log.Warn("watching tasks file", "path", path, "error", err)
		return
	}
	go func() {
		defer w.Close()
		w.Run(ctx, func(err error) {
			a.log.Warn("watcher error", "error", err)
		})
	}()
}
