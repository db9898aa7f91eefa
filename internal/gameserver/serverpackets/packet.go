package serverpackets

// Packet is any server→client message.
type Packet interface {
	Write() ([]byte, error)
}
