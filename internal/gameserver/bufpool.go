package gameserver

import (
	"sync"

	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/protocol"
)

// BytePool is a pool of reusable []byte buffers.
// Reduces GC pressure by reusing allocations.
type BytePool struct {
	pool sync.Pool
}

// NewBytePool creates a buffer pool with the specified default capacity for new slices.
func NewBytePool(defaultCap int) *BytePool {
	p := &BytePool{}
	p.pool.New = func() any {
		return make([]byte, 0, defaultCap)
	}
	return p
}

// Get returns a slice of length size, preferably from the pool.
func (p *BytePool) Get(size int) []byte {
	b := p.pool.Get().([]byte)
	if cap(b) < size {
		p.pool.Put(b)
		return make([]byte, size)
	}
	b = b[:size]
	clear(b)
	return b
}

// Put returns the slice to the pool for reuse.
func (p *BytePool) Put(b []byte) {
	if b == nil {
		return
	}
	p.pool.Put(b[:0])
}

// EncodeFrame serializes pkt and frames it into a pooled buffer.
// OWNERSHIP: caller must return the buffer with Put (GameClient.Send does it).
func (p *BytePool) EncodeFrame(pkt serverpackets.Packet) ([]byte, error) {
	payload, err := pkt.Write()
	if err != nil {
		return nil, err
	}
	frame, err := protocol.AppendFrame(p.Get(0), payload)
	if err != nil {
		return nil, err
	}
	return frame, nil
}
