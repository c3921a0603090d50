package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BlackDragon0207/siro/internal/config"
	"github.com/BlackDragon0207/siro/internal/logging"
)

// Scanner is one per-tick detection pass.
type Scanner interface {
	Scan(ctx context.Context) error
}

// Watcher drives the upload and live scanners on a fixed interval. The first
// tick fires immediately on start. A failed live scan earns one off-cycle
// retry after a short delay; a second failure folds back into the regular
// schedule.
type Watcher struct {
	upload         Scanner
	live           Scanner
	logger         *slog.Logger
	pollInterval   time.Duration
	liveRetryDelay time.Duration

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	trigger  chan struct{}
	ticks    uint64
	lastTick time.Time
	lastErr  error
}

// Status is a point-in-time snapshot of the watcher for reporting.
type Status struct {
	Running      bool
	Ticks        uint64
	LastTick     time.Time
	LastError    string
	PollInterval time.Duration
}

// NewWatcher constructs a watcher over the given scanners using the
// configured poll timing.
func NewWatcher(cfg *config.Config, upload, live Scanner, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		upload:         upload,
		live:           live,
		logger:         logging.NewComponentLogger(logger, "watch"),
		pollInterval:   time.Duration(cfg.Watch.PollInterval) * time.Second,
		liveRetryDelay: time.Duration(cfg.Watch.LiveRetryDelay) * time.Second,
		trigger:        make(chan struct{}, 1),
	}
}

// Start begins the scan loop. The first tick runs immediately.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	go w.run(runCtx)
	return nil
}

// Stop terminates the scan loop and waits for the in-flight tick to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.cancel = nil
	w.mu.Unlock()

	cancel()
	w.wg.Wait()
}

// ScanNow requests an immediate off-schedule tick. Returns an error when the
// watcher is not running. A tick already pending coalesces with this one.
func (w *Watcher) ScanNow() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if !running {
		return errors.New("watcher not running")
	}
	select {
	case w.trigger <- struct{}{}:
	default:
	}
	return nil
}

// Status reports the watcher's current state.
func (w *Watcher) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	status := Status{
		Running:      w.running,
		Ticks:        w.ticks,
		LastTick:     w.lastTick,
		PollInterval: w.pollInterval,
	}
	if w.lastErr != nil {
		status.LastError = w.lastErr.Error()
	}
	return status
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	var liveRetry <-chan time.Time
	if w.runTick(ctx) {
		liveRetry = time.After(w.liveRetryDelay)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			liveRetry = nil
			if w.runTick(ctx) {
				liveRetry = time.After(w.liveRetryDelay)
			}
		case <-w.trigger:
			if w.runTick(ctx) && liveRetry == nil {
				liveRetry = time.After(w.liveRetryDelay)
			}
		case <-liveRetry:
			liveRetry = nil
			w.retryLive(ctx)
		}
	}
}

// runTick executes one full scan cycle and reports whether the live scan
// failed and deserves the off-cycle retry.
func (w *Watcher) runTick(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	tickID := uuid.NewString()
	logger := w.logger.With(logging.String(logging.FieldTick, tickID))
	logger.Debug("tick started")

	var tickErr error
	if err := w.upload.Scan(ctx); err != nil && !errors.Is(err, context.Canceled) {
		tickErr = err
		logger.Error("upload scan failed", logging.Error(err))
	}

	liveFailed := false
	if err := w.live.Scan(ctx); err != nil && !errors.Is(err, context.Canceled) {
		tickErr = err
		liveFailed = true
		logger.Error("live scan failed, retrying off-cycle",
			logging.Error(err),
			logging.Duration("retry_delay", w.liveRetryDelay))
	}

	w.mu.Lock()
	w.ticks++
	w.lastTick = time.Now()
	w.lastErr = tickErr
	w.mu.Unlock()

	logger.Debug("tick finished")
	return liveFailed && ctx.Err() == nil
}

func (w *Watcher) retryLive(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.live.Scan(ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Error("live scan retry failed, waiting for next tick",
			logging.Error(err))
		w.mu.Lock()
		w.lastErr = err
		w.mu.Unlock()
	}
}
