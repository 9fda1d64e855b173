package metainfo

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/anacrolix/log"
	"github.com/pkg/errors"

	"github.com/torrentclient/torrent/bencode"
)

var logger = log.Default.WithNames("metainfo")

// A validated torrent descriptor. Use LoadFromFile, Load or FromValue to get one. All the fields are
// intended to be read-only.
type MetaInfo struct {
	Announce     string
	AnnounceList AnnounceList
	Comment      string
	CreatedBy    string
	CreationDate time.Time
	UrlList      UrlList

	Name        string
	PieceLength int64
	Private     bool
	// Set when info carried a "files" list, even if it has only one entry.
	MultiFile bool
	// Never empty.
	Files  []FileInfo
	Pieces []Hash
	// The info dictionary exactly as encoded in the source. When loaded with FromValue, it's the
	// dictionary re-encoded with its keys in their original order.
	InfoBytes []byte
	// SHA-1 of InfoBytes.
	InfoHash Hash
}

// Reads, decodes and validates the torrent file at filename.
func LoadFromFile(filename string) (*MetaInfo, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, &Error{Path: filename, Reason: "reading file", Err: errors.WithStack(err)}
	}
	return load(filename, b)
}

// Reads r to the end and loads the descriptor from it. Errors carry ReaderPath as their path.
func Load(r io.Reader) (*MetaInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Path: ReaderPath, Reason: "reading", Err: errors.WithStack(err)}
	}
	return load(ReaderPath, b)
}

func load(path string, b []byte) (*MetaInfo, error) {
	v, err := bencode.Decode(b)
	if err != nil {
		return nil, &Error{Path: path, Reason: "decoding", Err: err}
	}
	return loader{path: path, raw: b}.load(v)
}

// Validates an already decoded descriptor.
func FromValue(v bencode.Value) (*MetaInfo, error) {
	return loader{}.load(v)
}

// Validates v, which was decoded from b. Errors name path as the source. InfoHash covers the info
// dictionary bytes as they appear in b, even where the encoding isn't canonical.
func FromDecoded(path string, b []byte, v bencode.Value) (*MetaInfo, error) {
	return loader{path: path, raw: b}.load(v)
}

type loader struct {
	path string
	// Encoded descriptor, if known.
	raw []byte
}

func (l loader) describe() string {
	if l.path == "" {
		return "<value>"
	}
	return l.path
}

func (l loader) fail(field, reason string) error {
	return &Error{Path: l.path, Field: field, Reason: reason}
}

func (l loader) wrongType(field string, want bencode.Kind, got bencode.Value) error {
	return &Error{
		Path:   l.path,
		Field:  field,
		Reason: "wrong type",
		Err:    &bencode.TypeError{Want: want, Got: bencode.KindOf(got)},
	}
}

func fieldName(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Fetches key from d, which must be present and of type T.
func requireField[T bencode.Value](l loader, d *bencode.Dict, prefix, key string) (ret T, err error) {
	field := fieldName(prefix, key)
	v, ok := d.Get(key)
	if !ok {
		err = l.fail(field, "missing")
		return
	}
	ret, ok = v.(T)
	if !ok {
		err = l.wrongType(field, ret.Kind(), v)
	}
	return
}

func (l loader) load(v bencode.Value) (*MetaInfo, error) {
	root, ok := v.(*bencode.Dict)
	if !ok || root == nil {
		return nil, l.wrongType("", bencode.DictKind, v)
	}
	announce, err := requireField[bencode.Bytes](l, root, "", "announce")
	if err != nil {
		return nil, err
	}
	info, err := requireField[*bencode.Dict](l, root, "", "info")
	if err != nil {
		return nil, err
	}
	mi := &MetaInfo{Announce: announce.String()}
	err = l.loadInfo(mi, info)
	if err != nil {
		return nil, err
	}
	l.loadOptional(mi, root, info)
	mi.InfoBytes, err = l.infoBytes(info)
	if err != nil {
		return nil, err
	}
	mi.InfoHash = HashBytes(mi.InfoBytes)
	if err := mi.CheckPieceCount(); err != nil {
		logger.Levelf(log.Warning, "%s: %v", l.describe(), err)
	}
	return mi, nil
}

func (l loader) infoBytes(info *bencode.Dict) ([]byte, error) {
	if l.raw == nil {
		b, err := bencode.Marshal(info)
		if err != nil {
			return nil, &Error{Path: l.path, Field: "info", Reason: "re-encoding", Err: err}
		}
		return b, nil
	}
	b, ok, err := bencode.RawDictValue(l.raw, "info")
	if err == nil && !ok {
		err = errors.New("not in input")
	}
	if err != nil {
		return nil, &Error{Path: l.path, Field: "info", Reason: "locating encoded bytes", Err: err}
	}
	return b, nil
}

func (l loader) loadInfo(mi *MetaInfo, info *bencode.Dict) error {
	pieceLength, err := requireField[bencode.Int](l, info, "info", "piece length")
	if err != nil {
		return err
	}
	name, err := requireField[bencode.Bytes](l, info, "info", "name")
	if err != nil {
		return err
	}
	pieces, err := requireField[bencode.Bytes](l, info, "info", "pieces")
	if err != nil {
		return err
	}
	if pieceLength <= 0 {
		return l.fail("info.piece length", fmt.Sprintf("must be positive, got %d", pieceLength))
	}
	if len(pieces)%HashSize != 0 {
		return l.fail("info.pieces", fmt.Sprintf("length %d is not a multiple of %d", len(pieces), HashSize))
	}
	if reason := badPathSegment(name.String()); reason != "" {
		return l.fail("info.name", reason)
	}
	mi.PieceLength = int64(pieceLength)
	mi.Name = name.String()
	mi.Pieces = splitPieceHashes(pieces)
	if info.Has("files") {
		mi.MultiFile = true
		mi.Files, err = l.loadFiles(info)
	} else {
		mi.Files, err = l.loadSingleFile(info, mi.Name)
	}
	if err != nil {
		return err
	}
	var offset int64
	for i := range mi.Files {
		mi.Files[i].TorrentOffset = offset
		offset += mi.Files[i].Length
	}
	return nil
}

func (l loader) loadSingleFile(info *bencode.Dict, name string) ([]FileInfo, error) {
	length, err := requireField[bencode.Int](l, info, "info", "length")
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, l.fail("info.length", fmt.Sprintf("negative length %d", length))
	}
	return []FileInfo{{Path: name, Length: int64(length)}}, nil
}

func (l loader) loadFiles(info *bencode.Dict) ([]FileInfo, error) {
	files, err := requireField[bencode.List](l, info, "info", "files")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, l.fail("info.files", "empty file list")
	}
	ret := make([]FileInfo, 0, len(files))
	for i, v := range files {
		fi, err := l.loadFile(fmt.Sprintf("info.files[%d]", i), v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, fi)
	}
	return ret, nil
}

func (l loader) loadFile(field string, v bencode.Value) (fi FileInfo, err error) {
	d, ok := v.(*bencode.Dict)
	if !ok || d == nil {
		err = l.wrongType(field, bencode.DictKind, v)
		return
	}
	path, err := requireField[bencode.List](l, d, field, "path")
	if err != nil {
		return
	}
	length, err := requireField[bencode.Int](l, d, field, "length")
	if err != nil {
		return
	}
	if length < 0 {
		err = l.fail(field+".length", fmt.Sprintf("negative length %d", length))
		return
	}
	if len(path) == 0 {
		err = l.fail(field+".path", "empty path")
		return
	}
	segments := make([]string, 0, len(path))
	for j, sv := range path {
		segField := fmt.Sprintf("%s.path[%d]", field, j)
		s, ok := sv.(bencode.Bytes)
		if !ok {
			err = l.wrongType(segField, bencode.StringKind, sv)
			return
		}
		if reason := badPathSegment(s.String()); reason != "" {
			err = l.fail(segField, reason)
			return
		}
		segments = append(segments, s.String())
	}
	joined, ok := joinPathSegments(segments)
	if !ok {
		err = l.fail(field+".path", fmt.Sprintf("%q is not a local path", joined))
		return
	}
	fi = FileInfo{Path: joined, Length: int64(length)}
	return
}

// Optional fields are best effort: a value of the wrong type is dropped rather than failing the
// whole descriptor. Some creators write "creation date" as a string, for example.
func (l loader) loadOptional(mi *MetaInfo, root, info *bencode.Dict) {
	optional := func(d *bencode.Dict, key string, set func(bencode.Value) bool) {
		v, ok := d.Get(key)
		if !ok {
			return
		}
		if !set(v) {
			logger.Levelf(log.Debug, "%s: ignoring %q of type %v", l.describe(), key, bencode.KindOf(v))
		}
	}
	optional(root, "announce-list", func(v bencode.Value) (ok bool) {
		mi.AnnounceList, ok = announceListFromValue(v)
		return
	})
	optional(root, "comment", func(v bencode.Value) bool {
		b, ok := v.(bencode.Bytes)
		mi.Comment = b.String()
		return ok
	})
	optional(root, "created by", func(v bencode.Value) bool {
		b, ok := v.(bencode.Bytes)
		mi.CreatedBy = b.String()
		return ok
	})
	optional(root, "creation date", func(v bencode.Value) bool {
		i, ok := v.(bencode.Int)
		if ok {
			mi.CreationDate = time.Unix(int64(i), 0)
		}
		return ok
	})
	optional(root, "url-list", func(v bencode.Value) (ok bool) {
		mi.UrlList, ok = urlListFromValue(v)
		return
	})
	optional(info, "private", func(v bencode.Value) bool {
		i, ok := v.(bencode.Int)
		mi.Private = ok && i == 1
		return ok
	})
}

// Whether the torrent is a directory of files rather than a single file.
func (mi *MetaInfo) IsDir() bool {
	return mi.MultiFile
}

func (mi *MetaInfo) TotalLength() (ret int64) {
	for _, fi := range mi.Files {
		ret += fi.Length
	}
	return
}

// The number of piece checksums the descriptor carries.
func (mi *MetaInfo) NumPieces() int {
	return len(mi.Pieces)
}

// The number of pieces the file data divides into: ceil(TotalLength / PieceLength).
func (mi *MetaInfo) ExpectedNumPieces() int {
	if mi.PieceLength <= 0 {
		return 0
	}
	return int((mi.TotalLength() + mi.PieceLength - 1) / mi.PieceLength)
}

// Returns an error if the checksums don't cover the file data exactly.
func (mi *MetaInfo) CheckPieceCount() error {
	if expected := mi.ExpectedNumPieces(); expected != mi.NumPieces() {
		return fmt.Errorf(
			"have %d piece hashes, expected %d for %d bytes at piece length %d",
			mi.NumPieces(), expected, mi.TotalLength(), mi.PieceLength)
	}
	return nil
}
