// Package protocol implements game client framing: a 2-byte little-endian
// length header (header included) followed by the payload. Payload[0] is the
// opcode.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/udisondev/ddongo/internal/constants"
)

// Frame prepends the length header to payload.
// Returns a new slice; payload is not modified.
func Frame(payload []byte) ([]byte, error) {
	return AppendFrame(nil, payload)
}

// AppendFrame appends header + payload to dst.
// dst is typically a pooled buffer with len 0.
func AppendFrame(dst, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("frame: empty payload")
	}
	totalLen := constants.PacketHeaderSize + len(payload)
	if totalLen > constants.MaxPacketSize {
		return nil, fmt.Errorf("frame: payload %d exceeds max packet size", len(payload))
	}
	dst = binary.LittleEndian.AppendUint16(dst, uint16(totalLen))
	return append(dst, payload...), nil
}

// WritePacket frames payload and writes it to w.
func WritePacket(w io.Writer, payload []byte) error {
	frame, err := Frame(payload)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("writing packet: %w", err)
	}
	return nil
}

// ReadPacket reads one packet from r into buf.
// Returns a subslice of buf with the payload (without the length header).
func ReadPacket(r io.Reader, buf []byte) ([]byte, error) {
	var header [constants.PacketHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading packet header: %w", err)
	}

	totalLen := int(binary.LittleEndian.Uint16(header[:]))
	if totalLen < constants.PacketHeaderSize {
		return nil, fmt.Errorf("invalid packet length: %d", totalLen)
	}

	payloadLen := totalLen - constants.PacketHeaderSize
	if payloadLen == 0 {
		return nil, fmt.Errorf("empty packet")
	}

	if payloadLen > len(buf) {
		return nil, fmt.Errorf("packet payload %d exceeds buffer size %d", payloadLen, len(buf))
	}

	payload := buf[:payloadLen]
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("reading packet payload: %w", err)
	}

	return payload, nil
}
