package gameserver

// ClientConnectionState represents the state machine for a GameClient→GameServer connection.
type ClientConnectionState int

const (
	ClientStateConnected    ClientConnectionState = iota // TCP connected, ждём EnterWorld
	ClientStateInGame                                    // Character bound to the connection
	ClientStateDisconnected                              // Connection closed
)

func (s ClientConnectionState) String() string {
	switch s {
	case ClientStateConnected:
		return "CONNECTED"
	case ClientStateInGame:
		return "IN_GAME"
	case ClientStateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}
