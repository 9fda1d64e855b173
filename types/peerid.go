package types

import (
	"encoding/hex"
	"fmt"
	"log/slog"
)

// Peer client ID, as sent in the handshake.
type PeerID [20]byte

var _ slog.LogValuer = PeerID{}

func (me PeerID) LogValue() slog.Value {
	return slog.StringValue(me.String())
}

// Prints Azureus-style IDs (BEP 20) with the client prefix readable and the rest as hex. Anything
// else is quoted.
func (me PeerID) String() string {
	if me[0] == '-' && me[7] == '-' {
		return string(me[:8]) + hex.EncodeToString(me[8:])
	}
	return fmt.Sprintf("%+q", me[:])
}

// Fails unless b is exactly 20 bytes.
func PeerIDFromBytes(b []byte) (id PeerID, err error) {
	if len(b) != len(id) {
		err = fmt.Errorf("peer id has bad length: %d", len(b))
		return
	}
	copy(id[:], b)
	return
}
