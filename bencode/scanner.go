package bencode

import (
	"errors"
	"io"
)

type byteScanReader interface {
	io.Reader
	io.ByteScanner
}

// Implements io.ByteScanner over io.Reader, for use in Decoder, to ensure
// that as little as the undecoded input Reader is consumed as possible.
type scanner struct {
	io.Reader
	b      [1]byte // Buffer for ReadByte
	unread bool    // True if b has been unread, and so should be returned next
}

var errAlreadyUnreadByte = errors.New("byte already unread")

func (me *scanner) ReadByte() (byte, error) {
	if me.unread {
		me.unread = false
	} else if n, err := io.ReadFull(me.Reader, me.b[:]); n != 1 {
		return me.b[0], err
	}
	return me.b[0], nil
}

func (me *scanner) UnreadByte() error {
	if me.unread {
		return errAlreadyUnreadByte
	}
	me.unread = true
	return nil
}

// Delivers an unread byte before reading further from the underlying Reader.
func (me *scanner) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return
	}
	if me.unread {
		me.unread = false
		p[0] = me.b[0]
		return 1, nil
	}
	return me.Reader.Read(p)
}
