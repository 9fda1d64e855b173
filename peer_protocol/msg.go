package peer_protocol

import (
	"bufio"
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
)

// This is a lazy union representing all the possible fields for messages. Which ones are meaningful
// depends on Type. Fields are ordered to minimize struct size and padding.
type Message struct {
	Piece                []byte
	Bitfield             []bool
	ExtendedPayload      []byte
	Index, Begin, Length Integer
	Port                 uint16
	Type                 MessageType
	ExtendedID           ExtensionNumber
	Keepalive            bool
}

var _ interface {
	encoding.BinaryUnmarshaler
	encoding.BinaryMarshaler
} = (*Message)(nil)

// A block of a piece.
type RequestSpec struct {
	Index, Begin, Length Integer
}

func (r RequestSpec) String() string {
	return fmt.Sprintf("piece %v, %v bytes at %v", r.Index, r.Length, r.Begin)
}

func MakeCancelMessage(piece, offset, length Integer) Message {
	return Message{
		Type:   Cancel,
		Index:  piece,
		Begin:  offset,
		Length: length,
	}
}

func (msg Message) RequestSpec() RequestSpec {
	length := msg.Length
	if msg.Type == Piece {
		length = Integer(len(msg.Piece))
	}
	return RequestSpec{msg.Index, msg.Begin, length}
}

func (msg Message) String() string {
	if msg.Keepalive {
		return "Keepalive"
	}
	switch msg.Type {
	case Have, Suggest, AllowedFast:
		return fmt.Sprintf("%v(%v)", msg.Type, msg.Index)
	case Request, Cancel, Reject, Piece:
		return fmt.Sprintf("%v(%v)", msg.Type, msg.RequestSpec())
	case Bitfield:
		return fmt.Sprintf("Bitfield(%d bits)", len(msg.Bitfield))
	case Port:
		return fmt.Sprintf("Port(%d)", msg.Port)
	case Extended:
		return fmt.Sprintf("Extended(%d, %d bytes)", msg.ExtendedID, len(msg.ExtendedPayload))
	}
	return msg.Type.String()
}

func (msg Message) MustMarshalBinary() []byte {
	b, err := msg.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return b
}

// Appends the message body, without the length prefix.
func (msg Message) appendBody(b []byte) ([]byte, error) {
	b = append(b, byte(msg.Type))
	switch msg.Type {
	case Choke, Unchoke, Interested, NotInterested, HaveAll, HaveNone:
	case Have, AllowedFast, Suggest:
		b = binary.BigEndian.AppendUint32(b, msg.Index.Uint32())
	case Request, Cancel, Reject:
		for _, i := range []Integer{msg.Index, msg.Begin, msg.Length} {
			b = binary.BigEndian.AppendUint32(b, i.Uint32())
		}
	case Bitfield:
		b = append(b, MarshalBitfield(msg.Bitfield)...)
	case Piece:
		b = binary.BigEndian.AppendUint32(b, msg.Index.Uint32())
		b = binary.BigEndian.AppendUint32(b, msg.Begin.Uint32())
		b = append(b, msg.Piece...)
	case Extended:
		b = append(b, byte(msg.ExtendedID))
		b = append(b, msg.ExtendedPayload...)
	case Port:
		b = binary.BigEndian.AppendUint16(b, msg.Port)
	default:
		return b, fmt.Errorf("unknown message type: %v", msg.Type)
	}
	return b, nil
}

// Includes the 4-byte length prefix.
func (msg Message) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 4, 32)
	if !msg.Keepalive {
		data, err = msg.appendBody(data)
		if err != nil {
			return nil, err
		}
	}
	binary.BigEndian.PutUint32(data, uint32(len(data)-4))
	return
}

func (msg Message) WriteTo(w io.Writer) (n int64, err error) {
	b, err := msg.MarshalBinary()
	if err != nil {
		return
	}
	nn, err := w.Write(b)
	return int64(nn), err
}

// Expects exactly one message, length prefix included.
func (me *Message) UnmarshalBinary(b []byte) error {
	d := Decoder{
		R:         bufio.NewReader(bytes.NewReader(b)),
		MaxLength: Integer(len(b)),
	}
	err := d.Decode(me)
	if err != nil {
		return err
	}
	if d.R.Buffered() != 0 {
		return fmt.Errorf("%d trailing bytes", d.R.Buffered())
	}
	return nil
}
