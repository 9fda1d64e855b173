package peer_protocol

import (
	"encoding/binary"
	"io"
)

// A 4-byte big-endian integer: piece indexes, offsets and lengths on the wire.
type Integer uint32

func (i *Integer) Read(r io.Reader) error {
	var b [4]byte
	_, err := io.ReadFull(r, b[:])
	if err != nil {
		return err
	}
	*i = Integer(binary.BigEndian.Uint32(b[:]))
	return nil
}

func (i Integer) Int() int {
	return int(i)
}

func (i Integer) Uint32() uint32 {
	return uint32(i)
}
