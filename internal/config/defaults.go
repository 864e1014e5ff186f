package config

const (
	defaultStateDir        = "~/.local/state/cosmic-screenshot"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultNotifyTimeoutMS = 5000
	defaultHistoryKeep     = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Capture: Capture{
			Interactive: true,
			Modal:       true,
		},
		Notifications: Notifications{
			Enabled:   true,
			TimeoutMS: defaultNotifyTimeoutMS,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
