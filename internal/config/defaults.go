package config

const (
	defaultDataDir             = "~/.local/share/siro"
	defaultLogDir              = "~/.local/share/siro/logs"
	defaultActivityWindow      = 5
	defaultRotateAfterRequests = 50
	defaultRequestsPerSecond   = 2.0
	defaultWebhookTimeout      = 10
	defaultPollInterval        = 300
	defaultLiveRetryDelay      = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		YouTube: YouTube{
			ActivityWindow:      defaultActivityWindow,
			RotateAfterRequests: defaultRotateAfterRequests,
			RequestsPerSecond:   defaultRequestsPerSecond,
		},
		Discord: Discord{
			RequestTimeout: defaultWebhookTimeout,
		},
		Watch: Watch{
			PollInterval:   defaultPollInterval,
			LiveRetryDelay: defaultLiveRetryDelay,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
