package torrent

import (
	"github.com/pkg/errors"
)

var (
	// A peer message arrived on a connection that has not finished the handshake.
	ErrHandshakeIncomplete = errors.New("handshake incomplete")
	ErrBitfieldTooLong     = errors.New("bitfield longer than piece count")
	ErrPieceOutOfRange     = errors.New("piece index out of range")
)
