package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/gofrs/flock"

	"github.com/BlackDragon0207/siro/internal/config"
	"github.com/BlackDragon0207/siro/internal/logging"
	"github.com/BlackDragon0207/siro/internal/notify"
	"github.com/BlackDragon0207/siro/internal/state"
	"github.com/BlackDragon0207/siro/internal/watch"
)

// Daemon coordinates the watch loop and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *state.Store
	watcher *watch.Watcher

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Watch        watch.Status
	StateDBPath  string
	LockFilePath string
	PID          int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *state.Store, watcher *watch.Watcher, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || watcher == nil {
		return nil, errors.New("daemon requires config, store, and watcher")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		watcher:  watcher,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start launches the watcher and acquires the daemon lock.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another siro daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.watcher.Start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start watcher: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("siro daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops the watch loop and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.watcher.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("siro daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// ScanNow triggers an immediate off-schedule scan cycle.
func (d *Daemon) ScanNow() error {
	if !d.running.Load() {
		return errors.New("daemon not running")
	}
	return d.watcher.ScanNow()
}

// StateList returns every deduplication record.
func (d *Daemon) StateList(ctx context.Context) ([]state.Entry, error) {
	if d.store == nil {
		return nil, errors.New("state store unavailable")
	}
	return d.store.List(ctx), nil
}

// StateReset clears the deduplication records for the given kinds. An empty
// list clears every record.
func (d *Daemon) StateReset(ctx context.Context, kinds []state.Kind) (int, error) {
	if d.store == nil {
		return 0, errors.New("state store unavailable")
	}
	if len(kinds) == 0 {
		kinds = state.Kinds()
	}
	cleared := 0
	for _, kind := range kinds {
		if err := d.store.Reset(ctx, kind); err != nil {
			return cleared, err
		}
		cleared++
		d.logger.Info("state record cleared", logging.String("kind", string(kind)))
	}
	return cleared, nil
}

// TestNotification triggers a test notification using the current configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if d.cfg == nil {
		return false, "configuration unavailable", errors.New("configuration unavailable")
	}
	if strings.TrimSpace(d.cfg.Discord.WebhookURL) == "" && strings.TrimSpace(d.cfg.Discord.LiveWebhookURL) == "" {
		return false, "no discord webhook configured", nil
	}
	notifier := notify.NewService(d.cfg)
	if err := notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		Watch:        d.watcher.Status(),
		StateDBPath:  d.cfg.StateDBPath(),
		LockFilePath: d.lockPath,
		PID:          os.Getpid(),
	}
}
