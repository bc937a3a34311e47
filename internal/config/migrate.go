package config

import "fmt"

// migrate upgrades a config from its current version to CurrentVersion,
// one version at a time. Versions newer than this binary are rejected.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf("%w: config version %d is newer than supported version %d (upgrade weekplan)",
			ErrInvalid, cfg.Version, CurrentVersion)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}
	return nil
}

// migrations maps each version to the function moving it one version on.
// Each function must increment cfg.Version.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
}

// migrateV1ToV2 adds the log section and the sqlite backend settings.
// Version 1 files only pointed at the bot's two JSON documents and may
// omit any setting, so every field v2 validates is defaulted here.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.Storage.TasksFile == "" {
		cfg.Storage.TasksFile = DefaultTasksFile
	}
	if cfg.Storage.ChannelFile == "" {
		cfg.Storage.ChannelFile = DefaultChannelFile
	}
	if cfg.Discord.TokenEnv == "" {
		cfg.Discord.TokenEnv = DefaultTokenEnv
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultBackend
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = DefaultSQLitePath
	}
	cfg.Version = 2
	return nil
}
