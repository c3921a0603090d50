package watch_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BlackDragon0207/siro/internal/config"
	"github.com/BlackDragon0207/siro/internal/watch"
)

type countingScanner struct {
	calls atomic.Int64
	errs  chan error
}

func (c *countingScanner) Scan(context.Context) error {
	c.calls.Add(1)
	select {
	case err := <-c.errs:
		return err
	default:
		return nil
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Watch.PollInterval = 3600
	cfg.Watch.LiveRetryDelay = 3600
	return &cfg
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcherRunsFirstTickImmediately(t *testing.T) {
	upload := &countingScanner{}
	live := &countingScanner{}
	watcher := watch.NewWatcher(testConfig(), upload, live, nil)

	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	waitFor(t, 2*time.Second, func() bool {
		return upload.calls.Load() == 1 && live.calls.Load() == 1
	})

	status := watcher.Status()
	if !status.Running || status.Ticks != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestWatcherRejectsDoubleStart(t *testing.T) {
	watcher := watch.NewWatcher(testConfig(), &countingScanner{}, &countingScanner{}, nil)
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(context.Background()); err == nil {
		t.Fatal("expected second Start to fail")
	}
}

func TestWatcherScanNowTriggersExtraTick(t *testing.T) {
	upload := &countingScanner{}
	live := &countingScanner{}
	watcher := watch.NewWatcher(testConfig(), upload, live, nil)

	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	waitFor(t, 2*time.Second, func() bool { return upload.calls.Load() == 1 })

	if err := watcher.ScanNow(); err != nil {
		t.Fatalf("ScanNow failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return upload.calls.Load() == 2 })
}

func TestWatcherScanNowRequiresRunning(t *testing.T) {
	watcher := watch.NewWatcher(testConfig(), &countingScanner{}, &countingScanner{}, nil)
	if err := watcher.ScanNow(); err == nil {
		t.Fatal("expected ScanNow to fail when stopped")
	}
}

func TestWatcherRetriesLiveScanOnceOffCycle(t *testing.T) {
	cfg := testConfig()
	cfg.Watch.LiveRetryDelay = 0 // fires on the next loop iteration

	upload := &countingScanner{}
	live := &countingScanner{errs: make(chan error, 1)}
	live.errs <- errors.New("activity fetch failed")
	watcher := watch.NewWatcher(cfg, upload, live, nil)

	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	// First tick fails the live scan, then exactly one retry runs.
	waitFor(t, 2*time.Second, func() bool { return live.calls.Load() == 2 })

	time.Sleep(50 * time.Millisecond)
	if got := live.calls.Load(); got != 2 {
		t.Fatalf("expected a single off-cycle retry, got %d live scans", got)
	}
	if got := upload.calls.Load(); got != 1 {
		t.Fatalf("retry must not rerun the upload scanner, got %d scans", got)
	}
}

func TestWatcherStopHaltsLoop(t *testing.T) {
	upload := &countingScanner{}
	live := &countingScanner{}
	watcher := watch.NewWatcher(testConfig(), upload, live, nil)

	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return upload.calls.Load() == 1 })
	watcher.Stop()

	if status := watcher.Status(); status.Running {
		t.Fatalf("expected stopped status, got %+v", status)
	}

	before := upload.calls.Load()
	if err := watcher.ScanNow(); err == nil {
		t.Fatal("expected ScanNow to fail after Stop")
	}
	time.Sleep(20 * time.Millisecond)
	if upload.calls.Load() != before {
		t.Fatal("scan ran after Stop")
	}
}

func TestWatcherStatusRecordsLastError(t *testing.T) {
	cfg := testConfig()
	upload := &countingScanner{errs: make(chan error, 1)}
	upload.errs <- errors.New("search failed")
	live := &countingScanner{}
	watcher := watch.NewWatcher(cfg, upload, live, nil)

	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	waitFor(t, 2*time.Second, func() bool {
		return watcher.Status().LastError != ""
	})
}
