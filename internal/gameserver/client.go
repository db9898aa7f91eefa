package gameserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
)

// Default write queue / timeout constants.
// Overridden by config values when available.
const (
	defaultSendQueueSize = 256
	defaultWriteTimeout  = 5 * time.Second
	defaultReadTimeout   = 120 * time.Second
)

// ErrClientClosed is returned when sending to a closed client.
var ErrClientClosed = errors.New("client closed")

// GameClient represents a single game client connection to the game server.
type GameClient struct {
	conn net.Conn
	ip   string

	// state использует atomic.Int32 для lock-free reads в hot path
	state atomic.Int32

	// mu защищает character (меняется один раз, на EnterWorld)
	mu        sync.Mutex
	character *model.Character

	// Per-client write queue: framed packets (pool-backed)
	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once

	writePool    *BytePool     // shared pool for returning buffers after write
	writeTimeout time.Duration // per-write deadline
}

var _ equip.Requester = (*GameClient)(nil)

// NewGameClient creates a new game client state for the given connection.
func NewGameClient(conn net.Conn, writePool *BytePool, sendQueueSize int, writeTimeout time.Duration) (*GameClient, error) {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		// net.Pipe и unix sockets не имеют host:port
		host = conn.RemoteAddr().String()
	}
	if writePool == nil {
		return nil, fmt.Errorf("write pool is required")
	}

	if sendQueueSize <= 0 {
		sendQueueSize = defaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	client := &GameClient{
		conn:         conn,
		ip:           host,
		sendCh:       make(chan []byte, sendQueueSize),
		closeCh:      make(chan struct{}),
		writePool:    writePool,
		writeTimeout: writeTimeout,
	}
	client.state.Store(int32(ClientStateConnected))
	return client, nil
}

// Conn returns the underlying network connection.
func (c *GameClient) Conn() net.Conn {
	return c.conn
}

// IP returns the client's remote IP address.
func (c *GameClient) IP() string {
	return c.ip
}

// State returns the current connection state.
func (c *GameClient) State() ClientConnectionState {
	return ClientConnectionState(c.state.Load())
}

// SetState sets the connection state.
func (c *GameClient) SetState(s ClientConnectionState) {
	c.state.Store(int32(s))
}

// Character returns the character bound on EnterWorld (nil before).
func (c *GameClient) Character() *model.Character {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.character
}

// SetCharacter binds the character to the connection.
func (c *GameClient) SetCharacter(ch *model.Character) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.character = ch
}

// writePump is a dedicated writer goroutine for this client.
// Reads framed packets from sendCh and writes them to conn.
// Uses net.Buffers (writev syscall) for batching and pool.Put for buffer return.
func (c *GameClient) writePump() {
	bufs := make(net.Buffers, 0, 64)
	poolBufs := make([][]byte, 0, 64)

	defer func() {
		// writer мёртв — дальнейшие Send должны падать сразу
		c.CloseAsync()
		// Drain remaining packets and return to pool
		for {
			select {
			case pkt := <-c.sendCh:
				c.writePool.Put(pkt)
			default:
				return
			}
		}
	}()

	for {
		select {
		case pkt := <-c.sendCh:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				slog.Warn("set write deadline failed", "client", c.ip, "error", err)
				c.writePool.Put(pkt)
				return
			}

			queued := len(c.sendCh)
			if queued == 0 {
				_, err := c.conn.Write(pkt)
				c.writePool.Put(pkt)
				if err != nil {
					slog.Warn("write failed", "client", c.ip, "error", err)
					return
				}
				continue
			}

			// Multiple packets — net.Buffers keeps queue order in one writev
			bufs = bufs[:0]
			poolBufs = poolBufs[:0]

			bufs = append(bufs, pkt)
			poolBufs = append(poolBufs, pkt)
			for range queued {
				p := <-c.sendCh
				bufs = append(bufs, p)
				poolBufs = append(poolBufs, p)
			}

			_, err := bufs.WriteTo(c.conn)

			// ALWAYS return buffers to pool (even on error)
			for _, b := range poolBufs {
				c.writePool.Put(b)
			}

			if err != nil {
				slog.Warn("batch write failed", "client", c.ip, "error", err)
				return
			}

		case <-c.closeCh:
			return
		}
	}
}

// Send queues a framed packet and blocks until accepted, timeout or close.
// OWNERSHIP: takes ownership of frame (pool buffer).
func (c *GameClient) Send(frame []byte) error {
	timer := time.NewTimer(c.writeTimeout)
	defer timer.Stop()
	select {
	case c.sendCh <- frame:
		return nil
	case <-timer.C:
		c.writePool.Put(frame)
		slog.Warn("send queue full, disconnecting slow client", "client", c.ip)
		c.CloseAsync()
		return fmt.Errorf("send timeout after %v", c.writeTimeout)
	case <-c.closeCh:
		c.writePool.Put(frame)
		return ErrClientClosed
	}
}

// SendPacket serializes pkt and queues it. Packets sent by one goroutine
// reach the wire in call order.
func (c *GameClient) SendPacket(pkt serverpackets.Packet) error {
	if c.State() == ClientStateDisconnected {
		return ErrClientClosed
	}
	frame, err := c.writePool.EncodeFrame(pkt)
	if err != nil {
		return fmt.Errorf("encoding %T: %w", pkt, err)
	}
	return c.Send(frame)
}

// CloseAsync signals the writePump to stop without blocking.
// Safe to call multiple times.
func (c *GameClient) CloseAsync() {
	c.closeOnce.Do(func() {
		c.state.Store(int32(ClientStateDisconnected))
		close(c.closeCh)
	})
}

// Close closes the connection and stops the writePump.
func (c *GameClient) Close() error {
	c.CloseAsync()
	return c.conn.Close()
}
