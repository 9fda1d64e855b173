package metainfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedNumPieces(t *testing.T) {
	for _, _case := range []struct {
		PieceLength int64
		Files       []FileInfo
		NumPieces   int
	}{
		{256 * 1024, []FileInfo{{Length: 1024*1024 + -1}}, 4},
		{256 * 1024, []FileInfo{{Length: 1024 * 1024}}, 4},
		{256 * 1024, []FileInfo{{Length: 1024*1024 + 1}}, 5},
		{5, []FileInfo{{Length: 1}, {Length: 12}}, 3},
		{5, []FileInfo{{Length: 4}, {Length: 12}}, 4},
		{5, []FileInfo{{Length: 0}}, 0},
	} {
		mi := MetaInfo{
			Files:       _case.Files,
			PieceLength: _case.PieceLength,
		}
		assert.EqualValues(t, _case.NumPieces, mi.ExpectedNumPieces())
	}
}

func TestPieceLengths(t *testing.T) {
	mi, err := FromValue(descriptor(multiFileInfo()))
	require.NoError(t, err)
	require.Equal(t, 3, mi.NumPieces())
	var lengths []int64
	for i := range mi.NumPieces() {
		p := mi.Piece(i)
		assert.Equal(t, i, p.Index())
		assert.EqualValues(t, int64(i)*8, p.Offset())
		assert.Equal(t, mi.Pieces[i], p.Hash())
		lengths = append(lengths, p.Length())
	}
	assert.Equal(t, []int64{8, 8, 1}, lengths)
	assert.Len(t, mi.Piece(0).Files(), 2)
	assert.Len(t, mi.Piece(2).Files(), 1)
	assert.Panics(t, func() { mi.Piece(3) })
	assert.Panics(t, func() { mi.Piece(-1) })
}

// A checksum past the end of the data covers nothing.
func TestExcessPiece(t *testing.T) {
	mi, err := FromValue(descriptor(singleFileInfo()))
	require.NoError(t, err)
	assert.EqualValues(t, 100, mi.Piece(0).Length())
	assert.True(t, mi.Piece(0).V1Hash().Ok)
	assert.EqualValues(t, 0, mi.Piece(1).Length())
	assert.False(t, mi.Piece(1).V1Hash().Ok)
	assert.Empty(t, mi.Piece(1).Files())
}
