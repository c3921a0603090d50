package daemon_test

import (
	"context"
	"testing"
	"time"

	"github.com/BlackDragon0207/siro/internal/daemon"
	"github.com/BlackDragon0207/siro/internal/state"
	"github.com/BlackDragon0207/siro/internal/testsupport"
	"github.com/BlackDragon0207/siro/internal/watch"
)

type noopScanner struct{}

func (noopScanner) Scan(context.Context) error { return nil }

func newTestDaemon(t *testing.T) (*daemon.Daemon, *state.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	watcher := watch.NewWatcher(cfg, noopScanner{}, noopScanner{}, nil)
	d, err := daemon.New(cfg, store, watcher, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Stop()
	})
	return d, store
}

func TestDaemonStartStop(t *testing.T) {
	d, _ := newTestDaemon(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	status := d.Status()
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}

	// Second start should fail
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	time.Sleep(50 * time.Millisecond)
	if d.Status().Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestDaemonScanNowRequiresRunning(t *testing.T) {
	d, _ := newTestDaemon(t)
	if err := d.ScanNow(); err == nil {
		t.Fatal("expected ScanNow to fail while stopped")
	}

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := d.ScanNow(); err != nil {
		t.Fatalf("ScanNow failed: %v", err)
	}
}

func TestDaemonStateResetClearsRecords(t *testing.T) {
	d, store := newTestDaemon(t)

	ctx := context.Background()
	if err := store.Write(ctx, state.KindUpload, state.Record{LastID: "v1"}); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	if err := store.Write(ctx, state.KindLive, state.Record{LastID: "A", LastStartTime: "2024-05-01T12:00:00Z"}); err != nil {
		t.Fatalf("seed state: %v", err)
	}

	cleared, err := d.StateReset(ctx, nil)
	if err != nil {
		t.Fatalf("StateReset failed: %v", err)
	}
	if cleared != len(state.Kinds()) {
		t.Fatalf("expected %d records cleared, got %d", len(state.Kinds()), cleared)
	}
	for _, entry := range store.List(ctx) {
		if !entry.Record.Empty() {
			t.Fatalf("expected %s cleared, got %+v", entry.Kind, entry.Record)
		}
	}
}

func TestDaemonTestNotificationRequiresWebhook(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithWebhooks("", ""))
	store := testsupport.MustOpenStore(t, cfg)
	watcher := watch.NewWatcher(cfg, noopScanner{}, noopScanner{}, nil)
	d, err := daemon.New(cfg, store, watcher, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	sent, message, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("TestNotification errored: %v", err)
	}
	if sent || message == "" {
		t.Fatalf("expected not-sent with explanation, got sent=%v message=%q", sent, message)
	}
}
