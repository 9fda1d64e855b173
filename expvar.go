package torrent

import (
	"expvar"
)

var (
	handshakesCompleted = expvar.NewInt("handshakesCompleted")
	// Keyed by message type. Keepalives aren't counted.
	messageTypesReceived = expvar.NewMap("messageTypesReceived")
)
