package constants

// Packet Structure Constants
const (
	// PacketHeaderSize is the packet length header size (2 bytes, little-endian uint16).
	// Длина включает сам заголовок.
	PacketHeaderSize = 2

	// MaxPacketSize is the largest frame the uint16 header can describe.
	MaxPacketSize = 1<<16 - 1
)

// Game Server Buffer Constants
const (
	// DefaultReadBufSize is the read buffer size for game client connections.
	// Equip batches с 30 записями и 32-символьными UID укладываются с запасом.
	DefaultReadBufSize = 4096

	// GameServerWriteBufSize is the default capacity of pooled outgoing frames.
	GameServerWriteBufSize = 1024
)

// Game Server Defaults
const (
	// DefaultGameServerPort is the default game client port.
	DefaultGameServerPort = 52000
)
