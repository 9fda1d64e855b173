package metainfo

import (
	"github.com/torrentclient/torrent/types/infohash"
)

// Lives in types/infohash so that it can be used without importing all of metainfo.

const HashSize = infohash.Size

type Hash = infohash.T

var (
	NewHashFromHex = infohash.FromHexString
	HashBytes      = infohash.HashBytes
)

// Splits a concatenation of 20-byte checksums. Every complete record is kept. The caller checks
// that len(b) is a multiple of HashSize.
func splitPieceHashes(b []byte) []Hash {
	ret := make([]Hash, 0, len(b)/HashSize)
	for off := 0; off+HashSize <= len(b); off += HashSize {
		var h Hash
		copy(h[:], b[off:off+HashSize])
		ret = append(ret, h)
	}
	return ret
}
