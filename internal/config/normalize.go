package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeDiscord()
	c.normalizeWatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeYouTube() {
	if value, ok := os.LookupEnv("SIRO_YOUTUBE_API_KEYS"); ok {
		c.YouTube.APIKeys = splitKeyList(value)
	}
	if value, ok := os.LookupEnv("SIRO_CHANNEL_ID"); ok {
		c.YouTube.ChannelID = strings.TrimSpace(value)
	}

	keys := make([]string, 0, len(c.YouTube.APIKeys))
	for _, key := range c.YouTube.APIKeys {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	c.YouTube.APIKeys = keys
	c.YouTube.ChannelID = strings.TrimSpace(c.YouTube.ChannelID)
	c.YouTube.ChannelName = strings.TrimSpace(c.YouTube.ChannelName)

	if c.YouTube.ActivityWindow <= 0 {
		c.YouTube.ActivityWindow = defaultActivityWindow
	}
	if c.YouTube.RotateAfterRequests <= 0 {
		c.YouTube.RotateAfterRequests = defaultRotateAfterRequests
	}
	if c.YouTube.RequestsPerSecond <= 0 {
		c.YouTube.RequestsPerSecond = defaultRequestsPerSecond
	}
}

func (c *Config) normalizeDiscord() {
	if value, ok := os.LookupEnv("SIRO_DISCORD_WEBHOOK"); ok {
		c.Discord.WebhookURL = value
	}
	if value, ok := os.LookupEnv("SIRO_DISCORD_LIVE_WEBHOOK"); ok {
		c.Discord.LiveWebhookURL = value
	}
	c.Discord.WebhookURL = strings.TrimSpace(c.Discord.WebhookURL)
	c.Discord.LiveWebhookURL = strings.TrimSpace(c.Discord.LiveWebhookURL)
	if c.Discord.RequestTimeout <= 0 {
		c.Discord.RequestTimeout = defaultWebhookTimeout
	}
}

func (c *Config) normalizeWatch() {
	if c.Watch.PollInterval <= 0 {
		c.Watch.PollInterval = defaultPollInterval
	}
	if c.Watch.LiveRetryDelay <= 0 {
		c.Watch.LiveRetryDelay = defaultLiveRetryDelay
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func splitKeyList(value string) []string {
	parts := strings.Split(value, ",")
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}
