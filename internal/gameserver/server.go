// Package gameserver hosts game client connections: framing, the client
// registry, packet dispatch to the equip engine and fan-out of its replies.
package gameserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/ddongo/internal/config"
	"github.com/udisondev/ddongo/internal/constants"
	"github.com/udisondev/ddongo/internal/observe"
	"github.com/udisondev/ddongo/internal/protocol"
)

// Server is the GameServer that accepts game client connections.
type Server struct {
	cfg     config.GameServer
	handler *Handler
	metrics *observe.Metrics

	readPool  *BytePool
	writePool *BytePool // shared pool for framed outgoing packets

	clientManager *ClientManager

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a new GameServer.
func NewServer(cfg config.GameServer, handler *Handler, clientManager *ClientManager) (*Server, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	if clientManager == nil {
		return nil, fmt.Errorf("client manager is required")
	}
	return &Server{
		cfg:           cfg,
		handler:       handler,
		readPool:      NewBytePool(constants.DefaultReadBufSize),
		writePool:     NewBytePool(constants.GameServerWriteBufSize),
		clientManager: clientManager,
	}, nil
}

// SetMetrics sets the metrics recorder. Optional.
func (s *Server) SetMetrics(m *observe.Metrics) {
	s.metrics = m
}

// Addr returns the address the server is listening on.
// Returns nil if the server hasn't started yet.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ClientManager returns the client manager for this server.
func (s *Server) ClientManager() *ClientManager {
	return s.clientManager
}

// Close closes the listener.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Run begins listening for game client connections.
// Creates a listener on cfg.BindAddress:cfg.Port and blocks until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.BindAddress, fmt.Sprint(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is done, then waits for
// connection goroutines to finish. Used directly by tests with custom listeners.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	slog.Info("game server started", "address", ln.Addr())

	var wg sync.WaitGroup
	acceptLoop(ctx, &wg, s, ln)
	wg.Wait()

	slog.Info("game server stopped")
	return nil
}

func acceptLoop(
	ctx context.Context,
	wg *sync.WaitGroup,
	srv *Server,
	ln net.Listener,
) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			slog.Error("failed to accept new connection", "error", err)
			continue
		}

		// Enable TCP keepalive (detect dead connections)
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if err := tcpConn.SetKeepAlive(true); err != nil {
				slog.Warn("set keepalive failed", "error", err)
			}
			if err := tcpConn.SetKeepAlivePeriod(30 * time.Second); err != nil {
				slog.Warn("set keepalive period failed", "error", err)
			}
		}

		wg.Go(func() {
			handleConnection(ctx, srv, conn)
		})
	}
}

func handleConnection(ctx context.Context, srv *Server, conn net.Conn) {
	defer conn.Close()

	client, err := NewGameClient(conn, srv.writePool, srv.cfg.SendQueueSize, srv.cfg.WriteTimeout)
	if err != nil {
		slog.Error("failed to create game client", "error", err)
		return
	}

	srv.clientManager.Register(client)
	srv.metrics.ClientConnected(ctx)
	slog.Info("new game client connection", "remote", client.IP())

	defer func() {
		// отдельный context: ctx уже может быть отменён при shutdown
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		OnDisconnection(cleanupCtx, client, srv.clientManager, srv.handler)
		srv.metrics.ClientDisconnected(cleanupCtx)
	}()

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-connCtx.Done()
		conn.Close()
	}()

	go client.writePump()
	defer client.Close() // CloseAsync + conn.Close → stops writePump

	readTimeout := srv.cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	// read → handle → queue replies
	for connCtx.Err() == nil {
		keepOpen, err := handlePacket(connCtx, srv, client, readTimeout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				slog.Info("client disconnected", "client", client.IP())
			} else {
				slog.Error("packet handling error", "error", err, "client", client.IP())
			}
			return
		}
		if !keepOpen {
			slog.Info("closing client connection", "client", client.IP())
			return
		}
	}
}

func handlePacket(ctx context.Context, srv *Server, client *GameClient, readTimeout time.Duration) (bool, error) {
	readBuf := srv.readPool.Get(constants.DefaultReadBufSize)
	defer srv.readPool.Put(readBuf)

	// Read timeout: idle client disconnects
	if err := client.Conn().SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return false, fmt.Errorf("setting read deadline: %w", err)
	}

	payload, err := protocol.ReadPacket(client.Conn(), readBuf)
	if err != nil {
		return false, fmt.Errorf("reading packet: %w", err)
	}

	keepOpen, err := srv.handler.HandlePacket(ctx, client, payload)
	if err != nil {
		return false, fmt.Errorf("handling packet: %w", err)
	}
	return keepOpen, nil
}
