package torrent

import (
	"fmt"
	"net"
	"net/netip"

	g "github.com/anacrolix/generics"
	"github.com/anacrolix/log"
	"github.com/anacrolix/missinggo/v2/panicif"

	pp "github.com/torrentclient/torrent/peer_protocol"
	typedRoaring "github.com/torrentclient/torrent/typed-roaring"
	"github.com/torrentclient/torrent/types"
)

type pieceIndex = types.PieceIndex

// Negotiated state of one peer connection. It's a passive record: whatever reads messages off Conn
// mutates it, and no other goroutine may touch it.
type PeerState struct {
	// Owned by the transport. Nothing here reads or writes it.
	Conn       net.Conn
	RemoteAddr netip.AddrPort

	// The remote is choking us.
	AmChoked     bool
	AmInterested bool
	// We are choking the remote.
	IsChoked     bool
	IsInterested bool

	Handshake HandshakeState
	// Set when the remote handshake arrives.
	PeerID g.Option[types.PeerID]

	// Pieces the remote has announced.
	Bitfield typedRoaring.Bitmap[pieceIndex]
	// Set once the torrent's piece count is known, to validate bitfields and haves.
	numPieces g.Option[int]

	logger log.Logger
}

func NewPeerState(conn net.Conn, addr netip.AddrPort) *PeerState {
	return &PeerState{
		Conn:       conn,
		RemoteAddr: addr,
		AmChoked:   true,
		IsChoked:   true,
		logger:     log.Default.WithNames("peer"),
	}
}

func (ps *PeerState) String() string {
	return fmt.Sprintf(
		"%v, sent: %v, received: %v",
		ps.RemoteAddr, ps.Handshake.HandshakeSentFlag(), ps.Handshake.HandshakeReceivedFlag())
}

func (ps *PeerState) SentHandshake() {
	ps.Handshake = ps.Handshake.SentHandshake()
	ps.noteHandshakeProgress()
}

func (ps *PeerState) ReceivedHandshake(id types.PeerID) {
	ps.Handshake = ps.Handshake.ReceivedHandshake()
	ps.PeerID = g.Some(id)
	ps.noteHandshakeProgress()
}

func (ps *PeerState) noteHandshakeProgress() {
	if ps.Handshake.Complete() {
		handshakesCompleted.Add(1)
		ps.logger.Levelf(log.Debug, "%v: handshake complete with %v", ps.RemoteAddr, ps.PeerID.UnwrapOrZeroValue())
	}
}

// Choke and interest flags only mean something once both handshakes have crossed.
func (ps *PeerState) Negotiated() bool {
	return ps.Handshake.Complete()
}

// Whether we may send block requests to the remote.
func (ps *PeerState) CanRequest() bool {
	return ps.Negotiated() && ps.AmInterested && !ps.AmChoked
}

// Fixes the piece count so later bitfields and haves can be range checked. Pieces already recorded
// beyond the count are dropped.
func (ps *PeerState) SetNumPieces(n int) {
	panicif.True(n < 0)
	ps.numPieces = g.Some(n)
	ps.Bitfield.RemoveRange(uint64(n), 1<<32)
}

// Zero if the piece count is unknown.
func (ps *PeerState) NumPieces() int {
	return ps.numPieces.UnwrapOrZeroValue()
}

// Replaces the bitfield wholesale.
func (ps *PeerState) SetBitfield(bf []bool) {
	ps.Bitfield.SetBools(bf)
}

func (ps *PeerState) SetHave(piece pieceIndex) {
	ps.Bitfield.Add(piece)
}

func (ps *PeerState) HasPiece(piece pieceIndex) bool {
	return ps.Bitfield.Contains(piece)
}

// The number of pieces the remote has announced.
func (ps *PeerState) PeerPieceCount() int {
	return ps.Bitfield.Len()
}

func (ps *PeerState) checkPiece(piece pp.Integer) error {
	if n := ps.numPieces; n.Ok && int(piece) >= n.Value {
		return fmt.Errorf("%w: %d >= %d", ErrPieceOutOfRange, piece, n.Value)
	}
	return nil
}

func (ps *PeerState) checkBitfield(bf []bool) ([]bool, error) {
	if !ps.numPieces.Ok {
		return bf, nil
	}
	n := ps.numPieces.Value
	// Bitfields are padded to a whole byte, but the padding must be clear.
	if len(bf) > (n+7)/8*8 {
		return nil, fmt.Errorf("%w: %d bits for %d pieces", ErrBitfieldTooLong, len(bf), n)
	}
	for i := n; i < len(bf); i++ {
		if bf[i] {
			return nil, fmt.Errorf("%w: piece %d set with %d pieces", ErrBitfieldTooLong, i, n)
		}
	}
	return bf[:min(len(bf), n)], nil
}

// Updates the state from a decoded peer message. Messages that only a download loop can act on
// (requests, blocks, extensions) are accepted without effect. Returns ErrHandshakeIncomplete, leaving
// the state untouched, for anything but a keepalive before the handshake completes.
func (ps *PeerState) Apply(msg pp.Message) error {
	if msg.Keepalive {
		return nil
	}
	messageTypesReceived.Add(msg.Type.String(), 1)
	if !ps.Negotiated() {
		return fmt.Errorf("%w: got %v in state %v", ErrHandshakeIncomplete, msg.Type, ps.Handshake)
	}
	switch msg.Type {
	case pp.Choke:
		ps.AmChoked = true
	case pp.Unchoke:
		ps.AmChoked = false
	case pp.Interested:
		ps.IsInterested = true
	case pp.NotInterested:
		ps.IsInterested = false
	case pp.Have:
		if err := ps.checkPiece(msg.Index); err != nil {
			return err
		}
		ps.SetHave(pieceIndex(msg.Index))
	case pp.Bitfield:
		bf, err := ps.checkBitfield(msg.Bitfield)
		if err != nil {
			return err
		}
		ps.SetBitfield(bf)
	case pp.HaveAll:
		if !ps.numPieces.Ok {
			return fmt.Errorf("got %v before the piece count is known", msg.Type)
		}
		ps.Bitfield.Clear()
		ps.Bitfield.AddRange(0, uint64(ps.numPieces.Value))
	case pp.HaveNone:
		ps.Bitfield.Clear()
	default:
		ps.logger.Levelf(log.Debug, "%v: not applying %v", ps.RemoteAddr, msg)
	}
	return nil
}
