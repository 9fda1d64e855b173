package peer_protocol

import (
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/torrentclient/torrent/metainfo"
)

func TestV2BitLocation(t *testing.T) {
	var bits PeerExtensionBits
	bits.SetBit(ExtensionBitV2Upgrade, true)
	qt.Assert(t, qt.Equals(bits[7], byte(0x10)))
}

func TestExtensionBitsString(t *testing.T) {
	bits := NewPeerExtensionBytes(ExtensionBitDht, ExtensionBitLtep, ExtensionBitFast)
	qt.Check(t, qt.IsTrue(bits.SupportsDHT()))
	qt.Check(t, qt.IsTrue(bits.SupportsExtended()))
	qt.Check(t, qt.IsTrue(bits.SupportsFast()))
	qt.Check(t, qt.Equals(bits.String(), "0000000000100005 (ltep, fast, dht)"))
	bits.SetBit(30, true)
	qt.Check(t, qt.Equals(bits.String(), "0000000040100005 (ltep, fast, dht, 1 unknown)"))
	bits.SetBit(ExtensionBitDht, false)
	qt.Check(t, qt.IsFalse(bits.SupportsDHT()))
}

func TestHandshakeRoundTrip(t *testing.T) {
	h := Handshake{
		PeerExtensionBits: NewPeerExtensionBytes(ExtensionBitLtep),
		InfoHash:          metainfo.HashBytes([]byte("info")),
	}
	copy(h.PeerID[:], "-GT0001-abcdefghijkl")
	b, err := h.MarshalBinary()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(b, 68))
	qt.Check(t, qt.Equals(string(b[:20]), Protocol))

	var h2 Handshake
	qt.Assert(t, qt.IsNil(h2.UnmarshalBinary(b)))
	qt.Check(t, qt.Equals(h2, h))

	qt.Check(t, qt.IsNotNil(h2.UnmarshalBinary(b[:67])))
	b[1] = 'b'
	qt.Check(t, qt.ErrorMatches(h2.UnmarshalBinary(b), `unexpected protocol string .*`))
}
