package torrent

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"io"
	"net"
	"net/netip"
	"os"

	"github.com/anacrolix/log"
	"github.com/anacrolix/missinggo/v2/panicif"
	"github.com/pkg/errors"

	"github.com/torrentclient/torrent/bencode"
	"github.com/torrentclient/torrent/metainfo"
	pp "github.com/torrentclient/torrent/peer_protocol"
	"github.com/torrentclient/torrent/types"
	"github.com/torrentclient/torrent/version"
)

const (
	// Enough for a 16 KiB block in a piece message, plus a bitfield for a very large torrent.
	defaultMaxMessageLength = 256 << 10
)

// Our identity towards peers, and limits on decoding untrusted input. Probably not safe to modify
// after it has been handed out.
type ClientConfig struct {
	Logger log.Logger
	// Sent in our handshakes. Generated from Bep20 if left zero.
	PeerID types.PeerID
	// Client prefix for generated peer IDs.
	Bep20 string
	// Reserved bits advertised in our handshakes.
	Extensions pp.PeerExtensionBits
	// Longest bencoded string accepted. Non-positive means unlimited.
	DecodeMaxStrLen int64
	// Deepest list/dictionary nesting accepted. Non-positive means unlimited.
	DecodeMaxDepth int
	// Longest peer message body accepted, excluding the length prefix.
	MaxMessageLength pp.Integer
}

func NewDefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Logger:           log.Default.WithNames("torrent"),
		Bep20:            version.DefaultBep20Prefix,
		Extensions:       pp.NewPeerExtensionBytes(pp.ExtensionBitFast),
		DecodeMaxStrLen:  initIntFromEnv[int64]("TORRENT_DECODE_MAX_STR_LEN", bencode.DefaultDecodeMaxStrLen, 64),
		DecodeMaxDepth:   initIntFromEnv("TORRENT_DECODE_MAX_DEPTH", bencode.DefaultDecodeMaxDepth, 0),
		MaxMessageLength: initIntFromEnv[pp.Integer]("TORRENT_MAX_MESSAGE_LENGTH", defaultMaxMessageLength, 32),
	}
}

func (cfg *ClientConfig) NewBencodeDecoder(r io.Reader) *bencode.Decoder {
	d := bencode.NewDecoder(r)
	d.MaxStrLen = cfg.DecodeMaxStrLen
	d.MaxDepth = cfg.DecodeMaxDepth
	return d
}

func (cfg *ClientConfig) NewMessageDecoder(r io.Reader) *pp.Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &pp.Decoder{
		R:         br,
		MaxLength: cfg.MaxMessageLength,
	}
}

// Loads the torrent file at filename, decoding under the configured limits.
func (cfg *ClientConfig) LoadMetaInfo(filename string) (*metainfo.MetaInfo, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, &metainfo.Error{Path: filename, Reason: "reading file", Err: errors.WithStack(err)}
	}
	r := bytes.NewReader(b)
	v, err := cfg.NewBencodeDecoder(r).Decode()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err == nil && r.Len() != 0 {
		err = bencode.ErrUnusedTrailingBytes{NumUnusedBytes: r.Len()}
	}
	if err != nil {
		return nil, &metainfo.Error{Path: filename, Reason: "decoding", Err: err}
	}
	mi, err := metainfo.FromDecoded(filename, b, v)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Levelf(log.Debug, "loaded %q: %d files, %d pieces", filename, len(mi.Files), mi.NumPieces())
	return mi, nil
}

// Returns PeerID, filling it in from Bep20 and random bytes the first time.
func (cfg *ClientConfig) peerID() types.PeerID {
	if cfg.PeerID == (types.PeerID{}) {
		n := copy(cfg.PeerID[:], cfg.Bep20)
		_, err := rand.Read(cfg.PeerID[n:])
		panicif.Err(err)
	}
	return cfg.PeerID
}

// Our handshake record for the torrent with the given infohash.
func (cfg *ClientConfig) Handshake(infoHash metainfo.Hash) pp.Handshake {
	return pp.Handshake{
		PeerExtensionBits: cfg.Extensions,
		InfoHash:          infoHash,
		PeerID:            cfg.peerID(),
	}
}

// Like NewPeerState, logging through the configured logger.
func (cfg *ClientConfig) NewPeerState(conn net.Conn, addr netip.AddrPort) *PeerState {
	ps := NewPeerState(conn, addr)
	ps.logger = cfg.Logger.WithNames("peer")
	return ps
}
