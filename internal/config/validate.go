package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateDiscord(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if len(c.YouTube.APIKeys) == 0 {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/siro/config.toml"
		}
		return fmt.Errorf("youtube.api_keys is required. Set SIRO_YOUTUBE_API_KEYS env var or edit %s (create with 'siro config init')", defaultPath)
	}
	if c.YouTube.ChannelID == "" {
		return errors.New("youtube.channel_id is required. Set SIRO_CHANNEL_ID env var or edit the config file")
	}
	if c.YouTube.ActivityWindow > 50 {
		return errors.New("youtube.activity_window must be at most 50")
	}
	return nil
}

func (c *Config) validateDiscord() error {
	if c.Discord.WebhookURL == "" && c.Discord.LiveWebhookURL == "" {
		return errors.New("at least one of discord.webhook_url or discord.live_webhook_url must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
