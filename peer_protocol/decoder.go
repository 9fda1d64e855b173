package peer_protocol

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Reads length-prefixed messages. Framing only: nothing here validates a message against any
// connection state.
type Decoder struct {
	R *bufio.Reader
	// Longest message body accepted, excluding the length prefix.
	MaxLength Integer
}

var ErrMessageTooLong = errors.New("message too long")

// io.EOF is returned if the source terminates cleanly on a message boundary.
func (d *Decoder) Decode(msg *Message) (err error) {
	*msg = Message{}
	var length Integer
	err = length.Read(d.R)
	if err == io.EOF {
		return
	}
	if err != nil {
		return errors.Wrap(err, "reading message length")
	}
	if length > d.MaxLength {
		return errors.WithStack(ErrMessageTooLong)
	}
	if length == 0 {
		msg.Keepalive = true
		return
	}
	// From this point onwards, EOF is unexpected
	defer func() {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}()
	r := io.LimitReader(d.R, int64(length))
	// Body bytes not yet consumed.
	remaining := int64(length)
	var c [1]byte
	_, err = io.ReadFull(r, c[:])
	if err != nil {
		return
	}
	remaining--
	msg.Type = MessageType(c[0])
	readInts := func(is ...*Integer) error {
		for _, i := range is {
			if err := i.Read(r); err != nil {
				return err
			}
			remaining -= 4
		}
		return nil
	}
	readRest := func() (b []byte, err error) {
		b = make([]byte, remaining)
		_, err = io.ReadFull(r, b)
		remaining = 0
		return
	}
	switch msg.Type {
	case Choke, Unchoke, Interested, NotInterested, HaveAll, HaveNone:
	case Have, AllowedFast, Suggest:
		err = readInts(&msg.Index)
	case Request, Cancel, Reject:
		err = readInts(&msg.Index, &msg.Begin, &msg.Length)
	case Bitfield:
		var b []byte
		b, err = readRest()
		msg.Bitfield = UnmarshalBitfield(b)
	case Piece:
		err = readInts(&msg.Index, &msg.Begin)
		if err == nil {
			msg.Piece, err = readRest()
		}
	case Extended:
		_, err = io.ReadFull(r, c[:])
		if err != nil {
			break
		}
		remaining--
		msg.ExtendedID = ExtensionNumber(c[0])
		msg.ExtendedPayload, err = readRest()
	case Port:
		var b [2]byte
		_, err = io.ReadFull(r, b[:])
		msg.Port = binary.BigEndian.Uint16(b[:])
		remaining -= 2
	default:
		err = fmt.Errorf("unknown message type %#v", c[0])
	}
	if err == nil && remaining != 0 {
		err = fmt.Errorf("%v unused bytes in message type %v", remaining, msg.Type)
	}
	return
}
