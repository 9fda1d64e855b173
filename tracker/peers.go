package tracker

import (
	"expvar"
	"fmt"

	"github.com/torrentclient/torrent/bencode"
)

var vars = expvar.NewMap("tracker")

// The "peers" value of an announce response, which trackers send either as a compact string or as a
// list of dictionaries.
type Peers struct {
	List    []Peer
	Compact bool
}

func PeersFromValue(v bencode.Value) (me Peers, err error) {
	switch v := v.(type) {
	case bencode.Bytes:
		vars.Add("responses with string peers", 1)
		me.Compact = true
		me.List, err = UnmarshalCompactPeers(v)
	case bencode.List:
		vars.Add("responses with list peers", 1)
		me.List = make([]Peer, 0, len(v))
		for i, pv := range v {
			d, err := bencode.AsDict(pv)
			if err != nil {
				return me, &PeerError{Field: fmt.Sprintf("peers[%d]", i), Reason: "wrong type", Err: err}
			}
			p, err := PeerFromDict(d)
			if err != nil {
				return me, fmt.Errorf("peers[%d]: %w", i, err)
			}
			me.List = append(me.List, p)
		}
	default:
		vars.Add("responses with unhandled peers type", 1)
		err = &PeerError{Field: "peers", Reason: "wrong type", Err: &bencode.TypeError{
			Want: bencode.StringKind, Got: bencode.KindOf(v)}}
	}
	return
}

// Encodes in the form the Peers was decoded from.
func (me Peers) Value() (bencode.Value, error) {
	if me.Compact {
		b, err := MarshalCompactPeers(me.List)
		return bencode.Bytes(b), err
	}
	l := make(bencode.List, 0, len(me.List))
	for _, p := range me.List {
		d := bencode.NewDict()
		d.Set("ip", bencode.BytesFromString(p.IP.String()))
		if len(p.ID) != 0 {
			d.Set("peer id", bencode.Bytes(p.ID))
		}
		d.Set("port", bencode.Int(p.Port))
		l = append(l, d)
	}
	return l, nil
}
