package bencode

import (
	"unsafe"
)

// A bencode byte string. It's arbitrary binary data, not text: piece hashes and compact peer lists
// travel in it.
type Bytes []byte

func (Bytes) Kind() Kind { return StringKind }

// Returns a copy of the contents as a Go string.
func (me Bytes) String() string {
	return string(me)
}

// Wraps a Go string as a Bytes value, copying it.
func BytesFromString(s string) Bytes {
	return Bytes(s)
}

// Avoids the copy for byte slices that the caller owns and will never modify again.
func bytesAsString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
