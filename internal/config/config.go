package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/store"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no weekplan board found (run 'weekplan init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the board configuration.
type Config struct {
	Version  int           `yaml:"version"`
	Name     string        `yaml:"name"`
	Timezone string        `yaml:"timezone"`
	Storage  StorageConfig `yaml:"storage"`
	Discord  DiscordConfig `yaml:"discord"`
	Log      LogConfig     `yaml:"log"`

	// dir is the absolute path to the board directory (not serialized).
	dir string `yaml:"-"`
}

// StorageConfig selects where tasks and the pinned message pointer live.
type StorageConfig struct {
	Backend     string `yaml:"backend"`
	TasksFile   string `yaml:"tasks_file"`
	ChannelFile string `yaml:"channel_file"`
	SQLitePath  string `yaml:"sqlite_path,omitempty"`
}

// DiscordConfig holds bot settings. The token itself never lives here.
type DiscordConfig struct {
	TokenEnv string `yaml:"token_env"`
	GuildID  string `yaml:"guild_id,omitempty"`
}

// LogConfig controls the structured logger used by serve.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dir returns the absolute path to the board directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the board directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version:  CurrentVersion,
		Name:     name,
		Timezone: DefaultTimezone,
		Storage: StorageConfig{
			Backend:     DefaultBackend,
			TasksFile:   DefaultTasksFile,
			ChannelFile: DefaultChannelFile,
			SQLitePath:  DefaultSQLitePath,
		},
		Discord: DiscordConfig{TokenEnv: DefaultTokenEnv},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Location returns the timezone used to decide what "this week" is.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// StoreOptions returns the storage options with paths relative to the board.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     c.Storage.Backend,
		Dir:         c.dir,
		TasksFile:   c.Storage.TasksFile,
		ChannelFile: c.Storage.ChannelFile,
		SQLitePath:  c.Storage.SQLitePath,
	}
}

// LogLevel maps log.level to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %w", ErrInvalid, c.Timezone, err)
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if c.Discord.TokenEnv == "" {
		return fmt.Errorf("%w: discord.token_env is required", ErrInvalid)
	}
	if !slices.Contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("%w: log.level %q must be one of %v", ErrInvalid, c.Log.Level, validLogLevels)
	}
	if !slices.Contains(validLogFormats, c.Log.Format) {
		return fmt.Errorf("%w: log.format %q must be one of %v", ErrInvalid, c.Log.Format, validLogFormats)
	}
	return nil
}

func (c *Config) validateStorage() error {
	s := c.Storage
	if !slices.Contains(validBackends, s.Backend) {
		return fmt.Errorf("%w: storage.backend %q must be one of %v", ErrInvalid, s.Backend, validBackends)
	}
	switch s.Backend {
	case "file":
		if s.TasksFile == "" || s.ChannelFile == "" {
			return fmt.Errorf("%w: storage.tasks_file and storage.channel_file are required", ErrInvalid)
		}
		if filepath.Clean(s.TasksFile) == filepath.Clean(s.ChannelFile) {
			return fmt.Errorf("%w: storage.tasks_file and storage.channel_file must differ", ErrInvalid)
		}
	case "sqlite":
		if s.SQLitePath == "" {
			return fmt.Errorf("%w: storage.sqlite_path is required for the sqlite backend", ErrInvalid)
		}
	}
	return nil
}

// Init creates a board in dir with the given config, which must validate.
func Init(dir string, cfg *Config) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg.SetDir(absDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating board directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given board directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindDir walks upward from startDir looking for a board directory
// containing config.yml. Returns the absolute path to the board directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the board directory itself.
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound, ErrNotFound.Error())
		}
		dir = parent
	}
}
