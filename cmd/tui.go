package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/tui"
	"github.com/twiced-technology-gmbh/weekplan/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the planning in a terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Only errors are logged while the alternate screen is active.
	quiet := slog.LevelError
	a, err := openApp(appOptions{logLevel: &quiet})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewWeek(ctx, a.svc, a.caller(""))
	p := tea.NewProgram(model, tea.WithAltScreen())

	go startTUIWatcher(ctx, a, p)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, a *app, p *tea.Program) {
	path := a.stores.WatchPath
	if path == "" {
		return
	}
	w, err := watcher.New(filepath.Dir(path), []string{path}, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
