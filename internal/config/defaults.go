// Package config handles weekplan board configuration.
package config

const (
	// DefaultDir is the board directory name looked up from the working directory.
	DefaultDir = "weekplan"
	// ConfigFileName is the name of the config file within the board directory.
	ConfigFileName = "config.yml"
	// CurrentVersion is the current config schema version.
	CurrentVersion = 2

	// DefaultTimezone resolves to the host's local zone.
	DefaultTimezone = "Local"
	// DefaultBackend stores documents as JSON files.
	DefaultBackend = "file"
	// DefaultTasksFile is the task list document.
	DefaultTasksFile = "calendar.json"
	// DefaultChannelFile is the pinned message pointer document.
	DefaultChannelFile = "calendar_channel.json"
	// DefaultSQLitePath is the database used by the sqlite backend.
	DefaultSQLitePath = "weekplan.db"
	// DefaultTokenEnv is the environment variable holding the bot token.
	DefaultTokenEnv = "DISCORD_TOKEN"
	// DefaultLogLevel is the slog level name used by serve.
	DefaultLogLevel = "info"
	// DefaultLogFormat selects slog's text handler.
	DefaultLogFormat = "text"
)

var (
	validBackends   = []string{"file", "sqlite"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)
