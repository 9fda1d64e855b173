package tracker

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

const (
	compactIPv4Len = 4 + 2
	compactIPv6Len = 16 + 2 // BEP 7
)

func peerFromCompact(b []byte) Peer {
	ipLen := len(b) - 2
	var addr netip.Addr
	if ipLen == 4 {
		addr = netip.AddrFrom4([4]byte(b[:4]))
	} else {
		addr = netip.AddrFrom16([16]byte(b[:16]))
	}
	return Peer{
		IP:   addr,
		Port: binary.BigEndian.Uint16(b[ipLen:]),
	}
}

func unmarshalCompact(b []byte, recordLen int) ([]Peer, error) {
	if len(b)%recordLen != 0 {
		return nil, &PeerError{Reason: fmt.Sprintf(
			"compact peer list length %d is not a multiple of %d", len(b), recordLen)}
	}
	ret := make([]Peer, 0, len(b)/recordLen)
	for off := 0; off < len(b); off += recordLen {
		ret = append(ret, peerFromCompact(b[off:off+recordLen]))
	}
	return ret, nil
}

// Splits a compact IPv4 peer list into 6-byte records.
func UnmarshalCompactPeers(b []byte) ([]Peer, error) {
	return unmarshalCompact(b, compactIPv4Len)
}

// Splits a BEP 7 "peers6" list into 18-byte records.
func UnmarshalCompactPeers6(b []byte) ([]Peer, error) {
	return unmarshalCompact(b, compactIPv6Len)
}

// The inverse of UnmarshalCompactPeers. Peer IDs are dropped. Fails on any peer that isn't IPv4
// (IPv4-mapped IPv6 addresses are accepted).
func MarshalCompactPeers(peers []Peer) ([]byte, error) {
	ret := make([]byte, 0, len(peers)*compactIPv4Len)
	for _, p := range peers {
		ip := p.IP.Unmap()
		if !ip.Is4() {
			return nil, &PeerError{Field: "ip", Reason: fmt.Sprintf("%v is not an IPv4 address", p.IP)}
		}
		a := ip.As4()
		ret = append(ret, a[:]...)
		ret = binary.BigEndian.AppendUint16(ret, p.Port)
	}
	return ret, nil
}

// The inverse of UnmarshalCompactPeers6.
func MarshalCompactPeers6(peers []Peer) ([]byte, error) {
	ret := make([]byte, 0, len(peers)*compactIPv6Len)
	for _, p := range peers {
		if !p.IP.IsValid() {
			return nil, &PeerError{Field: "ip", Reason: "invalid address"}
		}
		a := p.IP.As16()
		ret = append(ret, a[:]...)
		ret = binary.BigEndian.AppendUint16(ret, p.Port)
	}
	return ret, nil
}
