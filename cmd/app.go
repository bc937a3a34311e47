package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/weekplan/internal/activity"
	"github.com/twiced-technology-gmbh/weekplan/internal/calendar"
	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/config"
	"github.com/twiced-technology-gmbh/weekplan/internal/discord"
	"github.com/twiced-technology-gmbh/weekplan/internal/store"
)

// app bundles what a command needs to run calendar operations.
type app struct {
	cfg    *config.Config
	stores *store.Set
	svc    *calendar.Service
	log    *slog.Logger
}

// appOptions tune openApp.
type appOptions struct {
	// messenger overrides the REST messenger built from the bot token.
	messenger calendar.Messenger
	// logLevel replaces the configured level. Nil keeps one-shot commands
	// quiet: only warnings and errors reach stderr.
	logLevel *slog.Level
	// deferSync leaves refreshing the pinned message to the caller.
	deferSync bool
}

// openApp loads the config and .env files, opens storage and builds the
// service. When a bot token is available, mutations made from the CLI
// also refresh the pinned planning message.
func openApp(opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if opts.logLevel != nil {
		level = *opts.logLevel
	}
	cfg.Log.Level = level.String()
	log := newLogger(cfg, os.Stderr)

	loc, err := cfg.Location()
	if err != nil {
		return nil, clierr.Wrap(clierr.InvalidInput, err, "loading timezone")
	}

	stores, err := store.Open(cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	msgr := opts.messenger
	if msgr == nil {
		if token, ok := cfg.Token(); ok {
			session, err := discord.NewSession(token)
			if err != nil {
				_ = stores.Close()
				return nil, err
			}
			msgr = discord.NewMessenger(session, log)
		} else {
			log.Debug("no bot token, planning message will not be refreshed", "env", cfg.Discord.TokenEnv)
		}
	}

	svcOpts := []calendar.Option{
		calendar.WithLogger(log),
		calendar.WithLocation(loc),
		calendar.WithActivityLog(activity.Open(cfg.Dir())),
	}
	if stores.LockPath != "" {
		svcOpts = append(svcOpts, calendar.WithLockFile(stores.LockPath))
	}
	if opts.deferSync {
		svcOpts = append(svcOpts, calendar.WithDeferredSync())
	}

	return &app{
		cfg:    cfg,
		stores: stores,
		svc:    calendar.New(stores.Tasks, stores.Pointer, msgr, svcOpts...),
		log:    log,
	}, nil
}

// Close releases storage.
func (a *app) Close() error {
	return a.stores.Close()
}

// caller returns the local operator, who is always an administrator.
func (a *app) caller(name string) calendar.Caller {
	if name == "" {
		name = localName()
	}
	return calendar.Caller{ID: "local", Name: name, Admin: true}
}

// confirm asks a yes/no question on the terminal. Without a terminal it
// refuses so scripts must pass --yes.
func confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(os.Stderr, "Canceled.")
		return false, nil
	}
	return true, nil
}
