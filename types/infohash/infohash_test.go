package infohash

import (
	"fmt"
	"testing"

	qt "github.com/go-quicktest/qt"
)

func TestHashBytes(t *testing.T) {
	h := HashBytes([]byte("abc"))
	qt.Check(t, qt.Equals(h.HexString(), "a9993e364706816aba3e25717850c26c9cd0d89d"))
	qt.Check(t, qt.Equals(fmt.Sprintf("%v", h), h.HexString()))
	qt.Check(t, qt.Equals(fmt.Sprintf("%x", h), h.HexString()))
	qt.Check(t, qt.IsFalse(h.IsZero()))
	qt.Check(t, qt.IsTrue(T{}.IsZero()))
}

func TestHexRoundTrip(t *testing.T) {
	h := HashBytes([]byte("abc"))
	var h2 T
	qt.Assert(t, qt.IsNil(h2.UnmarshalText([]byte(h.HexString()))))
	qt.Check(t, qt.Equals(h2, h))
	qt.Check(t, qt.IsNotNil(h2.FromHexString("abc")))
	qt.Check(t, qt.IsNotNil(h2.FromHexString("zz993e364706816aba3e25717850c26c9cd0d89d")))
}

func TestFromBytes(t *testing.T) {
	_, err := FromBytes(make([]byte, 19))
	qt.Check(t, qt.ErrorMatches(err, "hash has bad length: 19"))
	h, err := FromBytes(make([]byte, 20))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsTrue(h.IsZero()))
}
