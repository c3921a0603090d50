package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/BlackDragon0207/siro/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.YouTube.APIKeys = []string{"test-key"}
	cfgVal.YouTube.ChannelID = "UCtest"
	cfgVal.YouTube.ChannelName = "테스트 채널"
	cfgVal.Discord.WebhookURL = "https://discord.example/webhook"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKeys sets the credential pool on the test config.
func WithAPIKeys(keys ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.APIKeys = keys
	}
}

// WithWebhooks sets the upload and live webhook URLs on the test config.
func WithWebhooks(upload, live string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Discord.WebhookURL = upload
		b.cfg.Discord.LiveWebhookURL = live
	}
}
