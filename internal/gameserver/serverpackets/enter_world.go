package serverpackets

import (
	"github.com/udisondev/ddongo/internal/gameserver/packet"
	"github.com/udisondev/ddongo/internal/model"
)

const (
	// OpcodeEnterWorldRes confirms character selection (S2C 0x01).
	OpcodeEnterWorldRes = 0x01
	// OpcodeErrorRes reports a rejected request (S2C 0x02).
	OpcodeErrorRes = 0x02
)

// EnterWorldRes (S2C 0x01) — персонаж загружен, клиент в игре.
type EnterWorldRes struct {
	CharacterID uint32
	Name        string
	Job         model.JobID
	Pawns       []PawnEntry
}

// PawnEntry is one owned pawn in EnterWorldRes.
type PawnEntry struct {
	PawnID uint32
	Name   string
	Job    model.JobID
}

// Write serializes EnterWorldRes.
//
//	opcode (byte) = 0x01
//	characterID (int32)
//	name (string)
//	job (byte)
//	pawnCount (byte), pawns: pawnID (int32), name (string), job (byte)
func (p *EnterWorldRes) Write() ([]byte, error) {
	w := packet.NewWriter(64)
	_ = w.WriteByte(OpcodeEnterWorldRes)
	w.WriteInt(int32(p.CharacterID))
	w.WriteString(p.Name)
	_ = w.WriteByte(byte(p.Job))
	_ = w.WriteByte(byte(len(p.Pawns)))
	for _, pawn := range p.Pawns {
		w.WriteInt(int32(pawn.PawnID))
		w.WriteString(pawn.Name)
		_ = w.WriteByte(byte(pawn.Job))
	}
	return w.Bytes(), nil
}

// Error codes carried by ErrorRes.
const (
	ErrorCodeInternal      uint32 = 1
	ErrorCodeNotFound      uint32 = 2
	ErrorCodeInvalidInput  uint32 = 3
	ErrorCodeStorageFull   uint32 = 4
	ErrorCodeNotInWorld    uint32 = 5
	ErrorCodeUnknownPacket uint32 = 6

	// ErrorCodeAlreadyInWorld — персонаж уже привязан к другому соединению.
	ErrorCodeAlreadyInWorld uint32 = 7
)

// ErrorRes (S2C 0x02) — запрос отклонён целиком.
type ErrorRes struct {
	RequestOpcode byte
	Code          uint32
}

// Write serializes ErrorRes.
//
//	opcode (byte) = 0x02
//	requestOpcode (byte)
//	code (int32)
func (p *ErrorRes) Write() ([]byte, error) {
	w := packet.NewWriter(6)
	_ = w.WriteByte(OpcodeErrorRes)
	_ = w.WriteByte(p.RequestOpcode)
	w.WriteInt(int32(p.Code))
	return w.Bytes(), nil
}
