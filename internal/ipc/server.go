package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"github.com/BlackDragon0207/siro/internal/daemon"
	"github.com/BlackDragon0207/siro/internal/logging"
	"github.com/BlackDragon0207/siro/internal/state"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logging.NewComponentLogger(logger, "ipc"), ctx: ctx}
	if err := rpcServer.RegisterName("Siro", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	s.logger.Debug("daemon start requested")
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "daemon started"
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.logger.Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Running = status.Running
	resp.Ticks = status.Watch.Ticks
	if !status.Watch.LastTick.IsZero() {
		resp.LastTick = status.Watch.LastTick.Format(time.RFC3339)
	}
	resp.LastError = status.Watch.LastError
	resp.PollIntervalSecs = int(status.Watch.PollInterval / time.Second)
	resp.StateDBPath = status.StateDBPath
	resp.LockPath = status.LockFilePath
	resp.PID = status.PID
	return nil
}

func (s *service) ScanNow(_ ScanNowRequest, resp *ScanNowResponse) error {
	s.logger.Debug("immediate scan requested")
	if err := s.daemon.ScanNow(); err != nil {
		resp.Triggered = false
		resp.Message = err.Error()
		return nil
	}
	resp.Triggered = true
	resp.Message = "scan triggered"
	return nil
}

func (s *service) StateList(_ StateListRequest, resp *StateListResponse) error {
	entries, err := s.daemon.StateList(s.ctx)
	if err != nil {
		return err
	}
	resp.Records = make([]StateRecord, 0, len(entries))
	for _, entry := range entries {
		record := StateRecord{
			Kind:          string(entry.Kind),
			LastID:        entry.Record.LastID,
			LastStartTime: entry.Record.LastStartTime,
		}
		if !entry.Record.UpdatedAt.IsZero() {
			record.UpdatedAt = entry.Record.UpdatedAt.Format(time.RFC3339)
		}
		resp.Records = append(resp.Records, record)
	}
	return nil
}

func (s *service) StateReset(req StateResetRequest, resp *StateResetResponse) error {
	kinds := make([]state.Kind, 0, len(req.Kinds))
	for _, raw := range req.Kinds {
		kind, ok := parseKind(raw)
		if !ok {
			return fmt.Errorf("unknown state kind %q", raw)
		}
		kinds = append(kinds, kind)
	}
	cleared, err := s.daemon.StateReset(s.ctx, kinds)
	if err != nil {
		return err
	}
	resp.Cleared = cleared
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.ctx)
	resp.Sent = sent
	resp.Message = message
	return err
}

func parseKind(raw string) (state.Kind, bool) {
	for _, kind := range state.Kinds() {
		if raw == string(kind) {
			return kind, true
		}
	}
	return "", false
}
