package config

const (
	defaultConfigPath       = "~/.config/zipwatch/config.toml"
	defaultWatchDir         = "~/Drive/Incoming"
	defaultDestinationDir   = "~/Dev"
	defaultTodoFile         = "~/Dev/todo.md"
	defaultLogDir           = "~/.local/share/zipwatch/logs"
	defaultArchiveExtension = ".zip"
	defaultPollInterval     = 600
	defaultLockRetries      = 30
	defaultLockRetryDelay   = 2
	defaultSettleDelay      = 3
	defaultNotifyTimeout    = 10
	defaultLogFormat        = "line"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir:       defaultWatchDir,
			DestinationDir: defaultDestinationDir,
			TodoFile:       defaultTodoFile,
			LogDir:         defaultLogDir,
		},
		Watch: Watch{
			ArchiveExtension: defaultArchiveExtension,
			PollInterval:     defaultPollInterval,
			LockRetries:      defaultLockRetries,
			LockRetryDelay:   defaultLockRetryDelay,
			SettleDelay:      defaultSettleDelay,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
