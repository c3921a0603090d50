package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BlackDragon0207/siro/internal/logging"
	"github.com/BlackDragon0207/siro/internal/notify"
	"github.com/BlackDragon0207/siro/internal/state"
	"github.com/BlackDragon0207/siro/internal/youtube"
)

// LiveScanner tracks the channel's live broadcast lifecycle. It notifies
// exactly once when a broadcast starts and silently clears its record when
// the broadcast ends.
type LiveScanner struct {
	source    Source
	store     *state.Store
	notifier  notify.Service
	channelID string
	window    int64
	logger    *slog.Logger
}

// NewLiveScanner wires a live scanner from its collaborators. window bounds
// how many recent activity items are inspected per scan.
func NewLiveScanner(source Source, store *state.Store, notifier notify.Service, channelID string, window int64, logger *slog.Logger) *LiveScanner {
	if window <= 0 {
		window = 5
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LiveScanner{
		source:    source,
		store:     store,
		notifier:  notifier,
		channelID: channelID,
		window:    window,
		logger:    logging.NewComponentLogger(logger, "live-scan"),
	}
}

// Scan inspects the channel's recent uploads for an in-progress broadcast.
// A fetch failure aborts the scan with no state mutated; the scheduler may
// retry once off-cycle since live detection is latency sensitive.
func (s *LiveScanner) Scan(ctx context.Context) error {
	ids, err := s.source.RecentUploadIDs(ctx, s.channelID, s.window)
	if err != nil {
		return fmt.Errorf("fetch recent uploads: %w", err)
	}

	// Activity items arrive newest first, so the first live item in window
	// order is the most recent broadcast.
	var active *youtube.Details
	for _, id := range ids {
		details, err := s.source.VideoDetails(ctx, id)
		if err != nil {
			if errors.Is(err, youtube.ErrMalformed) {
				s.logger.Debug("skipping item with missing details",
					logging.String("video_id", id))
				continue
			}
			return fmt.Errorf("fetch video details: %w", err)
		}
		if details == nil {
			continue
		}
		if details.CurrentlyLive() {
			active = details
			break
		}
	}

	liveState := s.store.Read(ctx, state.KindLive)

	if active == nil {
		if liveState.LastID != "" {
			// End of broadcast. Endings are silent; only the record clears.
			s.logger.Info("broadcast ended",
				logging.String("video_id", liveState.LastID))
			if err := s.store.Reset(ctx, state.KindLive); err != nil {
				s.logger.Error("clear live state failed",
					logging.Error(err))
			}
		}
		return nil
	}

	startTime := active.ActualStartTime
	if startTime == "" {
		// Flagged live before the start timestamp appears; the publish time
		// keeps the record pair complete until the real one shows up.
		startTime = active.PublishedAt
	}

	if active.ID == liveState.LastID {
		if startTime == liveState.LastStartTime {
			return nil
		}
		if liveState.LastStartTime == active.PublishedAt && active.ActualStartTime != "" {
			// The real start timestamp replaced the placeholder. Same
			// broadcast, so upgrade the record without notifying again.
			if err := s.store.Write(ctx, state.KindLive, state.Record{LastID: active.ID, LastStartTime: startTime}); err != nil {
				s.logger.Error("persist live state failed",
					logging.Error(err))
			}
			return nil
		}
	}

	if err := s.store.Write(ctx, state.KindLive, state.Record{LastID: active.ID, LastStartTime: startTime}); err != nil {
		s.logger.Error("persist live state failed, duplicate notification possible",
			logging.String("video_id", active.ID),
			logging.Error(err))
	}

	s.logger.Info("broadcast started",
		logging.String("video_id", active.ID),
		logging.String("start_time", startTime),
		logging.String("title", active.Title))

	if err := s.notifier.NotifyLive(ctx, active.Title, active.ID); err != nil {
		s.logger.Error("live notification failed",
			logging.String("video_id", active.ID),
			logging.Error(err))
	}
	return nil
}
