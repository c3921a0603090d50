package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BlackDragon0207/siro/internal/config"
)

const userAgent = "Siro/0.1.0"

// Service defines the notification surface exposed to the scanners.
type Service interface {
	NotifyUpload(ctx context.Context, title, videoID string) error
	NotifyShort(ctx context.Context, title, videoID string) error
	NotifyLive(ctx context.Context, title, videoID string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by Discord webhooks when
// configured. When no webhook is configured, a noop implementation is
// returned.
func NewService(cfg *config.Config) Service {
	uploadURL := strings.TrimSpace(cfg.Discord.WebhookURL)
	liveURL := strings.TrimSpace(cfg.Discord.LiveWebhookURL)
	if uploadURL == "" && liveURL == "" {
		return noopService{}
	}
	if uploadURL == "" {
		uploadURL = liveURL
	}
	if liveURL == "" {
		liveURL = uploadURL
	}

	timeout := time.Duration(cfg.Discord.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &discordService{
		uploadEndpoint: uploadURL,
		liveEndpoint:   liveURL,
		channelName:    strings.TrimSpace(cfg.YouTube.ChannelName),
		client:         client,
	}
}

type discordService struct {
	uploadEndpoint string
	liveEndpoint   string
	channelName    string
	client         *http.Client
}

func (d *discordService) NotifyUpload(ctx context.Context, title, videoID string) error {
	title = strings.TrimSpace(title)
	message := fmt.Sprintf("**%s 채널에 새로운 영상이 업로드 되었습니다!**\n%s\n%s",
		d.displayName(), title, watchURL(videoID))
	return d.send(ctx, d.uploadEndpoint, message)
}

func (d *discordService) NotifyShort(ctx context.Context, title, videoID string) error {
	title = strings.TrimSpace(title)
	message := fmt.Sprintf("**%s 채널에 새로운 쇼츠가 업로드 되었습니다!**\n%s\n%s",
		d.displayName(), title, shortsURL(videoID))
	return d.send(ctx, d.uploadEndpoint, message)
}

func (d *discordService) NotifyLive(ctx context.Context, title, videoID string) error {
	title = strings.TrimSpace(title)
	message := fmt.Sprintf("🔴 **%s 채널에서 라이브 방송이 시작되었습니다!**\n%s\n%s",
		d.displayName(), title, watchURL(videoID))
	return d.send(ctx, d.liveEndpoint, message)
}

func (d *discordService) TestNotification(ctx context.Context) error {
	message := fmt.Sprintf("**%s 알림 테스트입니다.**", d.displayName())
	return d.send(ctx, d.uploadEndpoint, message)
}

func (d *discordService) displayName() string {
	if d.channelName != "" {
		return d.channelName
	}
	return "구독"
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func shortsURL(videoID string) string {
	return "https://www.youtube.com/shorts/" + videoID
}

func (d *discordService) send(ctx context.Context, endpoint, message string) error {
	if d == nil || d.client == nil {
		return nil
	}

	body, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyUpload(context.Context, string, string) error { return nil }
func (noopService) NotifyShort(context.Context, string, string) error  { return nil }
func (noopService) NotifyLive(context.Context, string, string) error   { return nil }
func (noopService) TestNotification(context.Context) error             { return nil }
