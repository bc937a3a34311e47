// Package cmd implements the weekplan CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/config"
	"github.com/twiced-technology-gmbh/weekplan/internal/output"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagMD      bool
	flagOutput  string
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "weekplan",
	Short: "Weekly task calendar with a Discord bot",
	Long: `weekplan keeps a dated task list and publishes the current week to a Discord channel.
Administrators add tasks with slash commands or this CLI; anyone can mark them done from the
pinned planning message, which refreshes after every change.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runWeek,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagOutput != "" {
			if _, err := output.Parse(flagOutput); err != nil {
				return err
			}
		}
		if colorDisabled() {
			output.DisableColor()
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().BoolVar(&flagMD, "markdown", false, "render markdown where supported")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "O", "",
		"output format: "+strings.Join(output.Names(), ", ")+" (default from "+output.EnvVar+")")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to weekplan directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError: exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error: wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

func colorDisabled() bool {
	return flagNoColor || termenv.EnvNoColor()
}

// defaultHomeDir returns the path to ~/.config/weekplan.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", config.DefaultDir), nil
}

// resolveDir returns the weekplan directory: --dir, then the nearest
// weekplan/ above the working directory, then ~/.config/weekplan.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}
	return defaultHomeDir()
}

// loadConfig finds and loads the config. The home default is created on
// first use so the CLI works without an explicit init.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, clierr.New(clierr.BoardNotFound, err.Error())
	}
	return config.Init(homeDir, config.NewDefault(config.DefaultDir))
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(output.Selection{
		Name:     flagOutput,
		JSON:     flagJSON,
		Compact:  flagCompact,
		Table:    flagTable,
		Markdown: flagMD,
	})
}

// newLogger builds the structured logger described by the config.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// printWarnings writes task load warnings to stderr.
func printWarnings(warnings []task.Warning) {
	output.Warnings(os.Stderr, warnings)
}

// localName returns the name recorded when the CLI completes a task.
func localName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "cli"
}
