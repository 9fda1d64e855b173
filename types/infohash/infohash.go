package infohash

import (
	"crypto/sha1"
	"encoding"
	"encoding/base32"
	"encoding/hex"
	"fmt"
)

const Size = sha1.Size

// A 20-byte SHA-1 digest. Used for the info hash of a torrent and for each piece checksum.
type T [Size]byte

var _ fmt.Formatter = (*T)(nil)

// Always formats as lowercase hex, whatever the verb.
func (t T) Format(f fmt.State, c rune) {
	f.Write([]byte(t.HexString()))
}

func (t T) Bytes() []byte {
	return t[:]
}

// The raw digest as a string, suitable as a map key or for wire formats that carry it unencoded.
func (t T) AsString() string {
	return string(t[:])
}

func (t T) String() string {
	return t.HexString()
}

func (t T) HexString() string {
	return hex.EncodeToString(t[:])
}

// The unpadded base32 form some magnet links carry.
func (t T) Base32String() string {
	return base32.StdEncoding.EncodeToString(t[:])
}

func (t T) IsZero() bool {
	return t == T{}
}

func (t *T) FromHexString(s string) (err error) {
	if len(s) != 2*Size {
		err = fmt.Errorf("hash hex string has bad length: %d", len(s))
		return
	}
	_, err = hex.Decode(t[:], []byte(s))
	return
}

var (
	_ encoding.TextUnmarshaler = (*T)(nil)
	_ encoding.TextMarshaler   = T{}
)

func (t *T) UnmarshalText(b []byte) error {
	return t.FromHexString(string(b))
}

func (t T) MarshalText() (text []byte, err error) {
	return []byte(t.HexString()), nil
}

// Panics on malformed input. For literals and tests.
func FromHexString(s string) (h T) {
	err := h.FromHexString(s)
	if err != nil {
		panic(err)
	}
	return
}

// Copies b into a T. b must be exactly Size bytes.
func FromBytes(b []byte) (h T, err error) {
	if len(b) != Size {
		err = fmt.Errorf("hash has bad length: %d", len(b))
		return
	}
	copy(h[:], b)
	return
}

func HashBytes(b []byte) T {
	return sha1.Sum(b)
}
