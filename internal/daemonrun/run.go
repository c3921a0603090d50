// Package daemonrun assembles and runs the siro daemon process: logger,
// state store, upstream client, scanners, watcher, and IPC server. Both the
// sirod binary and `siro daemon` call into it.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/BlackDragon0207/siro/internal/config"
	"github.com/BlackDragon0207/siro/internal/creds"
	"github.com/BlackDragon0207/siro/internal/daemon"
	"github.com/BlackDragon0207/siro/internal/ipc"
	"github.com/BlackDragon0207/siro/internal/logging"
	"github.com/BlackDragon0207/siro/internal/notify"
	"github.com/BlackDragon0207/siro/internal/scan"
	"github.com/BlackDragon0207/siro/internal/state"
	"github.com/BlackDragon0207/siro/internal/watch"
	"github.com/BlackDragon0207/siro/internal/youtube"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
}

// Run starts the siro daemon runtime loop and blocks until the context is
// canceled or a termination signal arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", cfg.LogFilePath()},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pidPath := filepath.Join(cfg.Paths.DataDir, "sirod.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := state.Open(cfg, logger)
	if err != nil {
		logger.Error("open state store", logging.Error(err))
		return err
	}
	defer store.Close()

	pool, err := creds.NewPool(cfg.YouTube.APIKeys, cfg.YouTube.RotateAfterRequests)
	if err != nil {
		return fmt.Errorf("build credential pool: %w", err)
	}
	client, err := youtube.New(signalCtx, pool,
		youtube.WithRequestRate(cfg.YouTube.RequestsPerSecond),
		youtube.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("build youtube client: %w", err)
	}

	notifier := notify.NewService(cfg)
	uploadScanner := scan.NewUploadScanner(client, store, notifier, cfg.YouTube.ChannelID, logger)
	liveScanner := scan.NewLiveScanner(client, store, notifier, cfg.YouTube.ChannelID, int64(cfg.YouTube.ActivityWindow), logger)
	watcher := watch.NewWatcher(cfg, uploadScanner, liveScanner, logger)

	d, err := daemon.New(cfg, store, watcher, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(signalCtx, cfg.SocketPath(), d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Warn("daemon start", logging.Error(err))
	}

	<-signalCtx.Done()
	logger.Info("siro daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
