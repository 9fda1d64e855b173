package torrent

import (
	"fmt"
)

// Progress of the BitTorrent handshake on a connection. Each side sends exactly one handshake, and
// they may cross on the wire, so Sent and Received are both reachable from Pending.
type HandshakeState uint8

const (
	HandshakePending HandshakeState = iota
	HandshakeSent
	HandshakeReceived
	HandshakeComplete
)

func (me HandshakeState) String() string {
	switch me {
	case HandshakePending:
		return "pending"
	case HandshakeSent:
		return "sent"
	case HandshakeReceived:
		return "received"
	case HandshakeComplete:
		return "complete"
	default:
		return fmt.Sprintf("HandshakeState(%d)", uint8(me))
	}
}

// Returns the state after our handshake has been written. Repeating it is a no-op.
func (me HandshakeState) SentHandshake() HandshakeState {
	switch me {
	case HandshakePending:
		return HandshakeSent
	case HandshakeReceived:
		return HandshakeComplete
	}
	return me
}

// Returns the state after the remote handshake has been read.
func (me HandshakeState) ReceivedHandshake() HandshakeState {
	switch me {
	case HandshakePending:
		return HandshakeReceived
	case HandshakeSent:
		return HandshakeComplete
	}
	return me
}

func (me HandshakeState) HandshakeSentFlag() bool {
	return me == HandshakeSent || me == HandshakeComplete
}

func (me HandshakeState) HandshakeReceivedFlag() bool {
	return me == HandshakeReceived || me == HandshakeComplete
}

func (me HandshakeState) Complete() bool {
	return me == HandshakeComplete
}
