package clientpackets

import (
	"fmt"

	"github.com/udisondev/ddongo/internal/gameserver/packet"
)

// OpcodeEnterWorld is the opcode for EnterWorld packet (C2S 0x01).
const OpcodeEnterWorld = 0x01

// EnterWorld represents the EnterWorld packet sent by client.
// Client sends this first to bind the connection to a character.
type EnterWorld struct {
	CharacterID uint32
}

// ParseEnterWorld parses EnterWorld packet.
// Packet structure (body after opcode):
//   - characterID (int32)
func ParseEnterWorld(data []byte) (*EnterWorld, error) {
	r := packet.NewReader(data)

	characterID, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading characterID: %w", err)
	}
	if characterID == 0 {
		return nil, fmt.Errorf("characterID must be non-zero")
	}

	return &EnterWorld{CharacterID: characterID}, nil
}
