package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/config"
	"github.com/twiced-technology-gmbh/weekplan/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new weekplan directory",
	Long:  `Creates a weekplan directory holding config.yml. Tasks and the planning channel are stored next to it.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("name", "", "calendar name (defaults to current directory name)")
	initCmd.Flags().String("timezone", config.DefaultTimezone, "IANA timezone deciding the current week")
	initCmd.Flags().String("backend", config.DefaultBackend, "storage backend (file, sqlite)")
	initCmd.Flags().String("guild", "", "Discord server ID for guild-scoped slash commands")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.BoardAlreadyExists, "weekplan already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		name = filepath.Base(cwd)
	}

	cfg := config.NewDefault(name)
	cfg.Timezone, _ = cmd.Flags().GetString("timezone")
	cfg.Storage.Backend, _ = cmd.Flags().GetString("backend")
	cfg.Discord.GuildID, _ = cmd.Flags().GetString("guild")

	cfg, err = config.Init(absDir, cfg)
	if err != nil {
		return clierr.Wrap(clierr.InvalidInput, err, "initializing")
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":   "initialized",
			"dir":      absDir,
			"name":     name,
			"config":   cfg.ConfigPath(),
			"backend":  cfg.Storage.Backend,
			"timezone": cfg.Timezone,
		})
	}

	output.Messagef(os.Stdout, "Initialized weekplan %q in %s", name, absDir)
	output.Messagef(os.Stdout, "  Config:   %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Backend:  %s", cfg.Storage.Backend)
	output.Messagef(os.Stdout, "  Timezone: %s", cfg.Timezone)
	output.Messagef(os.Stdout, "  Hint:     put %s=<bot token> in %s, then run: weekplan serve",
		cfg.Discord.TokenEnv, filepath.Join(absDir, config.EnvFileName))
	return nil
}
