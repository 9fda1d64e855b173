package tracker

import (
	"bytes"
	"fmt"
	"net/netip"
	"slices"
	"strconv"

	"github.com/anacrolix/multiless"

	"github.com/torrentclient/torrent/bencode"
	"github.com/torrentclient/torrent/types"
)

// A remote peer as a tracker describes it.
type Peer struct {
	// Optional. Compact records never carry it.
	ID   []byte
	IP   netip.Addr
	Port uint16
}

// Returned when a peer record is malformed.
type PeerError struct {
	Field  string
	Reason string
	Err    error
}

func (e *PeerError) Error() string {
	s := "tracker: bad peer"
	if e.Field != "" {
		s += " " + strconv.Quote(e.Field)
	}
	s += ": " + e.Reason
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *PeerError) Unwrap() error {
	return e.Err
}

// Set from the non-compact form in BEP 3. "ip" may be textual IPv4 or IPv6, or the 4 or 16 raw bytes
// of an address. "port" is truncated to 16 bits.
func PeerFromDict(d *bencode.Dict) (p Peer, err error) {
	if d == nil {
		err = &PeerError{Reason: "not a dictionary"}
		return
	}
	ipv, ok := d.Get("ip")
	if !ok {
		err = &PeerError{Field: "ip", Reason: "missing"}
		return
	}
	ip, err := bencode.AsBytes(ipv)
	if err != nil {
		err = &PeerError{Field: "ip", Reason: "wrong type", Err: err}
		return
	}
	p.IP, err = parsePeerIP(ip)
	if err != nil {
		return
	}
	portv, ok := d.Get("port")
	if !ok {
		err = &PeerError{Field: "port", Reason: "missing"}
		return
	}
	port, err := bencode.AsInt(portv)
	if err != nil {
		err = &PeerError{Field: "port", Reason: "wrong type", Err: err}
		return
	}
	p.Port = uint16(port)
	if id, ok := d.Bytes("peer id"); ok && len(id) != 0 {
		p.ID = slices.Clone([]byte(id))
	}
	return
}

// Text first: "::1a" is both a valid IPv6 address and 4 bytes long. Raw forms are never valid text.
func parsePeerIP(b []byte) (netip.Addr, error) {
	addr, err := netip.ParseAddr(string(b))
	if err == nil {
		return addr.Unmap(), nil
	}
	switch len(b) {
	case 4:
		return netip.AddrFrom4([4]byte(b)), nil
	case 16:
		return netip.AddrFrom16([16]byte(b)).Unmap(), nil
	}
	return netip.Addr{}, &PeerError{Field: "ip", Reason: fmt.Sprintf("unparseable address %q", b), Err: err}
}

// Decodes a 6-byte compact record: the IPv4 address in order, then the port in network byte order.
func PeerFromCompact(b []byte) (p Peer, err error) {
	if len(b) != compactIPv4Len {
		err = &PeerError{Reason: fmt.Sprintf("compact record has length %d, expected %d", len(b), compactIPv4Len)}
		return
	}
	return peerFromCompact(b), nil
}

func (p Peer) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(p.IP, p.Port)
}

func (p Peer) String() string {
	loc := p.AddrPort().String()
	if id, err := types.PeerIDFromBytes(p.ID); err == nil {
		return fmt.Sprintf("%v at %s", id, loc)
	}
	if len(p.ID) != 0 {
		return fmt.Sprintf("%x at %s", p.ID, loc)
	}
	return loc
}

// Orders by address, then port, then ID.
func (p Peer) Compare(other Peer) int {
	return multiless.New().
		Cmp(p.IP.Compare(other.IP)).
		Int(int(p.Port), int(other.Port)).
		Cmp(bytes.Compare(p.ID, other.ID)).
		OrderingInt()
}

// Sorts peers and drops repeated endpoints. Where the same endpoint appears with and without an ID,
// the one with an ID is kept.
func DedupePeers(peers []Peer) []Peer {
	ret := slices.Clone(peers)
	slices.SortStableFunc(ret, func(a, b Peer) int {
		return multiless.New().
			Cmp(a.AddrPort().Compare(b.AddrPort())).
			Bool(len(a.ID) == 0, len(b.ID) == 0).
			OrderingInt()
	})
	return slices.CompactFunc(ret, func(a, b Peer) bool {
		return a.AddrPort() == b.AddrPort()
	})
}
