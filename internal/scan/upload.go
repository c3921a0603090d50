package scan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BlackDragon0207/siro/internal/logging"
	"github.com/BlackDragon0207/siro/internal/notify"
	"github.com/BlackDragon0207/siro/internal/state"
	"github.com/BlackDragon0207/siro/internal/youtube"
)

// Source is the slice of the upstream client the scanners consume.
type Source interface {
	LatestUpload(ctx context.Context, channelID string) (*youtube.Upload, error)
	VideoDetails(ctx context.Context, videoID string) (*youtube.Details, error)
	RecentUploadIDs(ctx context.Context, channelID string, window int64) ([]string, error)
}

// UploadScanner detects new non-live uploads and notifies once per video,
// classifying each as a short or a standard upload.
type UploadScanner struct {
	source    Source
	store     *state.Store
	notifier  notify.Service
	channelID string
	logger    *slog.Logger
}

// NewUploadScanner wires an upload scanner from its collaborators.
func NewUploadScanner(source Source, store *state.Store, notifier notify.Service, channelID string, logger *slog.Logger) *UploadScanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &UploadScanner{
		source:    source,
		store:     store,
		notifier:  notifier,
		channelID: channelID,
		logger:    logging.NewComponentLogger(logger, "upload-scan"),
	}
}

// Scan checks the channel's newest upload once. A fetch failure aborts the
// scan with no state mutated; the next tick retries from scratch.
func (s *UploadScanner) Scan(ctx context.Context) error {
	latest, err := s.source.LatestUpload(ctx, s.channelID)
	if err != nil {
		return fmt.Errorf("fetch latest upload: %w", err)
	}
	if latest == nil {
		s.logger.Debug("channel has no uploads")
		return nil
	}

	uploadState := s.store.Read(ctx, state.KindUpload)
	shortsState := s.store.Read(ctx, state.KindShorts)
	if latest.ID == uploadState.LastID || latest.ID == shortsState.LastID {
		return nil
	}

	details, err := s.source.VideoDetails(ctx, latest.ID)
	if err != nil {
		return fmt.Errorf("fetch video details: %w", err)
	}
	if details == nil {
		s.logger.Debug("newest upload vanished before details lookup",
			logging.String("video_id", latest.ID))
		return nil
	}

	// Broadcast uploads belong to the live scanner; leaving state untouched
	// keeps this from racing the live notification.
	if details.LiveFlagged() {
		return nil
	}

	class := Classify(details)
	kind := state.KindUpload
	if class == ClassShort {
		kind = state.KindShorts
	}

	if err := s.store.Write(ctx, kind, state.Record{LastID: details.ID}); err != nil {
		s.logger.Error("persist upload state failed, duplicate notification possible",
			logging.String("video_id", details.ID),
			logging.Error(err))
	}

	s.logger.Info("new upload detected",
		logging.String("video_id", details.ID),
		logging.String("class", class.String()),
		logging.String("title", details.Title))

	var notifyErr error
	if class == ClassShort {
		notifyErr = s.notifier.NotifyShort(ctx, details.Title, details.ID)
	} else {
		notifyErr = s.notifier.NotifyUpload(ctx, details.Title, details.ID)
	}
	if notifyErr != nil {
		s.logger.Error("upload notification failed",
			logging.String("video_id", details.ID),
			logging.Error(notifyErr))
	}
	return nil
}
