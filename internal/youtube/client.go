package youtube

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/BlackDragon0207/siro/internal/creds"
	"github.com/BlackDragon0207/siro/internal/logging"
)

// Upload identifies the most recent published video of a channel.
type Upload struct {
	ID          string
	Title       string
	PublishedAt string
}

// Details carries the per-video fields the scanners act on. Optional upstream
// fields are empty strings when the API omits them; check before use.
type Details struct {
	ID              string
	Title           string
	Description     string
	PublishedAt     string
	Duration        string // ISO-8601 code, empty when the API omits it
	LiveBroadcast   string // "none", "upcoming", "live", or empty
	ActualStartTime string
	ActualEndTime   string
}

// LiveFlagged reports whether the video carries an active or pending
// broadcast flag. Such uploads belong to the live scanner.
func (d *Details) LiveFlagged() bool {
	return d.LiveBroadcast != "" && d.LiveBroadcast != "none"
}

// CurrentlyLive reports whether the video is an in-progress broadcast: it is
// flagged live or has started, and has not recorded an end time.
func (d *Details) CurrentlyLive() bool {
	if d.ActualEndTime != "" {
		return false
	}
	return d.LiveFlagged() || d.ActualStartTime != ""
}

// Client executes the three logical Data API queries, substituting one
// credential from the pool per request and rotating across the pool on quota
// failures. Attempts per call are bounded by the pool size.
type Client struct {
	pool     *creds.Pool
	services map[creds.Credential]*yt.Service
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	endpoint          string
	requestsPerSecond float64
	logger            *slog.Logger
}

// WithEndpoint overrides the API base URL (used in tests).
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		o.endpoint = endpoint
	}
}

// WithRequestRate caps outbound requests per second across all callers.
func WithRequestRate(rps float64) Option {
	return func(o *clientOptions) {
		o.requestsPerSecond = rps
	}
}

// WithLogger attaches a logger for rotation events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// New builds a client with one API service per credential in the pool.
func New(ctx context.Context, pool *creds.Pool, opts ...Option) (*Client, error) {
	if pool == nil {
		return nil, fmt.Errorf("youtube client requires a credential pool")
	}
	options := &clientOptions{requestsPerSecond: 2}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	services := make(map[creds.Credential]*yt.Service, pool.Size())
	for _, key := range pool.Keys() {
		clientOpts := []option.ClientOption{option.WithAPIKey(string(key))}
		if options.endpoint != "" {
			clientOpts = append(clientOpts, option.WithEndpoint(options.endpoint))
		}
		svc, err := yt.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("build youtube service: %w", err)
		}
		services[key] = svc
	}

	return &Client{
		pool:     pool,
		services: services,
		limiter:  rate.NewLimiter(rate.Limit(options.requestsPerSecond), 1),
		logger:   logging.NewComponentLogger(logger, "youtube"),
	}, nil
}

// LatestUpload fetches the single most recently published video of the
// channel. A nil result with nil error means the channel has no uploads.
func (c *Client) LatestUpload(ctx context.Context, channelID string) (*Upload, error) {
	var resp *yt.SearchListResponse
	err := c.do(ctx, func(svc *yt.Service) error {
		r, err := svc.Search.List([]string{"id", "snippet"}).
			ChannelId(channelID).
			Type("video").
			Order("date").
			MaxResults(1).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("latest upload: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	item := resp.Items[0]
	if item.Id == nil || item.Id.VideoId == "" {
		return nil, nil
	}
	upload := &Upload{ID: item.Id.VideoId}
	if item.Snippet != nil {
		upload.Title = item.Snippet.Title
		upload.PublishedAt = item.Snippet.PublishedAt
	}
	return upload, nil
}

// VideoDetails fetches duration, broadcast flag, and live timestamps for one
// video. A nil result with nil error means the video no longer exists.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*Details, error) {
	var resp *yt.VideoListResponse
	err := c.do(ctx, func(svc *yt.Service) error {
		r, err := svc.Videos.List([]string{"snippet", "contentDetails", "liveStreamingDetails"}).
			Id(videoID).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("video details %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	item := resp.Items[0]
	if item.Snippet == nil {
		return nil, fmt.Errorf("%w: video %s has no snippet", ErrMalformed, videoID)
	}

	details := &Details{
		ID:            item.Id,
		Title:         item.Snippet.Title,
		Description:   item.Snippet.Description,
		PublishedAt:   item.Snippet.PublishedAt,
		LiveBroadcast: item.Snippet.LiveBroadcastContent,
	}
	if item.ContentDetails != nil {
		details.Duration = item.ContentDetails.Duration
	}
	if item.LiveStreamingDetails != nil {
		details.ActualStartTime = item.LiveStreamingDetails.ActualStartTime
		details.ActualEndTime = item.LiveStreamingDetails.ActualEndTime
	}
	return details, nil
}

// RecentUploadIDs lists video ids referenced by the channel's most recent
// activities, newest first. Activities that do not reference an upload are
// skipped.
func (c *Client) RecentUploadIDs(ctx context.Context, channelID string, window int64) ([]string, error) {
	var resp *yt.ActivityListResponse
	err := c.do(ctx, func(svc *yt.Service) error {
		r, err := svc.Activities.List([]string{"contentDetails"}).
			ChannelId(channelID).
			MaxResults(window).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails == nil || item.ContentDetails.Upload == nil {
			continue
		}
		if id := item.ContentDetails.Upload.VideoId; id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// do runs one logical request, trying each credential at most once. Quota
// failures rotate the pool and retry; anything else fails immediately.
func (c *Client) do(ctx context.Context, call func(*yt.Service) error) error {
	attempts := c.pool.Size()
	for i := 0; i < attempts; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrUpstream, err)
		}

		cred := c.pool.Current()
		err := call(c.services[cred])
		if err == nil {
			c.pool.ReportSuccessfulUse()
			return nil
		}
		if IsQuotaError(err) {
			c.logger.Warn("credential over quota, rotating",
				logging.Int("attempt", i+1),
				logging.Int("pool_size", attempts))
			c.pool.ReportFailure(cred)
			continue
		}
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return ErrQuotaExhausted
}
