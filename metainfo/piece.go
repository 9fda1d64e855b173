package metainfo

import (
	"fmt"

	g "github.com/anacrolix/generics"
	"github.com/anacrolix/missinggo/v2/panicif"
)

type PieceIndex = int

// A view of one piece of a MetaInfo.
type Piece struct {
	mi *MetaInfo
	i  PieceIndex
}

// Panics if i isn't the index of one of the descriptor's checksums.
func (mi *MetaInfo) Piece(i PieceIndex) Piece {
	panicif.True(i < 0 || i >= mi.NumPieces())
	return Piece{mi, i}
}

func (p Piece) String() string {
	return fmt.Sprintf("metainfo.Piece(Name=%q, i=%v)", p.mi.Name, p.i)
}

func (p Piece) Index() PieceIndex {
	return p.i
}

func (p Piece) Offset() int64 {
	return int64(p.i) * p.mi.PieceLength
}

// The number of bytes of file data the piece covers. Only the final piece may be short. Zero for
// checksums beyond the end of the data, which CheckPieceCount reports.
func (p Piece) Length() int64 {
	return max(0, min(p.mi.PieceLength, p.mi.TotalLength()-p.Offset()))
}

func (p Piece) Hash() Hash {
	return p.mi.Pieces[p.i]
}

// The checksum, if the piece covers any data.
func (p Piece) V1Hash() (ret g.Option[Hash]) {
	if p.Length() == 0 {
		return
	}
	return g.Some(p.Hash())
}

// The files overlapping the piece, in torrent order.
func (p Piece) Files() (ret []FileInfo) {
	start, end := p.Offset(), p.Offset()+p.Length()
	for _, fi := range p.mi.Files {
		if fi.TorrentOffset < end && fi.TorrentOffset+fi.Length > start {
			ret = append(ret, fi)
		}
	}
	return
}
