package packet

import (
	"bytes"
)

// Writer provides methods for writing packet data.
// Uses Little-Endian byte order for all multi-byte values.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new packet writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{
		buf: bytes.NewBuffer(make([]byte, 0, capacity)),
	}
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteShort writes an int16 (2 bytes, LE).
func (w *Writer) WriteShort(val int16) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
}

// WriteInt writes an int32 (4 bytes, LE).
func (w *Writer) WriteInt(val int32) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val >> 16))
	w.buf.WriteByte(byte(val >> 24))
}

// WriteString writes a UTF-16LE null-terminated string.
// Runes > 0xFFFF are written as surrogate pairs.
func (w *Writer) WriteString(s string) {
	estimatedSize := len(s)*2 + 2
	if w.buf.Cap()-w.buf.Len() < estimatedSize {
		w.buf.Grow(estimatedSize)
	}

	for _, r := range s {
		if r <= 0xFFFF {
			w.buf.WriteByte(byte(r))
			w.buf.WriteByte(byte(r >> 8))
		} else {
			r := r - 0x10000
			high := uint16((r >> 10) + 0xD800)
			low := uint16((r & 0x3FF) + 0xDC00)
			w.buf.WriteByte(byte(high))
			w.buf.WriteByte(byte(high >> 8))
			w.buf.WriteByte(byte(low))
			w.buf.WriteByte(byte(low >> 8))
		}
	}

	// Null terminator (UTF-16LE: 0x0000)
	w.buf.WriteByte(0x00)
	w.buf.WriteByte(0x00)
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	_, _ = w.buf.Write(data)
}

// Bytes returns the accumulated packet data.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the current length of the packet.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf.Reset()
}
