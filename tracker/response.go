package tracker

import (
	"time"

	"github.com/pkg/errors"

	"github.com/torrentclient/torrent/bencode"
)

// A tracker's reply to an announce (BEP 3, BEP 7).
type AnnounceResponse struct {
	Interval    time.Duration
	MinInterval time.Duration
	TrackerId   string
	Complete    int64 // seeders
	Incomplete  int64 // leechers
	Peers       Peers
	Peers6      []Peer
}

// The tracker rejected the announce.
type FailureError struct {
	Reason string
}

func (e *FailureError) Error() string {
	return "tracker failure: " + e.Reason
}

// Decodes an announce response body. A "failure reason" in the body is returned as a *FailureError.
func ParseAnnounceResponse(b []byte) (ret AnnounceResponse, err error) {
	v, err := bencode.Decode(b)
	if err != nil {
		err = errors.Wrap(err, "decoding announce response")
		return
	}
	d, err := bencode.AsDict(v)
	if err != nil {
		err = errors.Wrap(err, "announce response")
		return
	}
	return announceResponseFromDict(d)
}

func announceResponseFromDict(d *bencode.Dict) (ret AnnounceResponse, err error) {
	if reason, ok := d.Text("failure reason"); ok {
		err = &FailureError{Reason: reason}
		return
	}
	if i, ok := d.Int("interval"); ok {
		ret.Interval = time.Duration(i) * time.Second
	}
	if i, ok := d.Int("min interval"); ok {
		ret.MinInterval = time.Duration(i) * time.Second
	}
	ret.TrackerId, _ = d.Text("tracker id")
	ret.Complete, _ = d.Int("complete")
	ret.Incomplete, _ = d.Int("incomplete")
	if v, ok := d.Get("peers"); ok {
		ret.Peers, err = PeersFromValue(v)
		if err != nil {
			err = errors.Wrap(err, "peers")
			return
		}
	}
	if v, ok := d.Get("peers6"); ok {
		b, terr := bencode.AsBytes(v)
		if terr != nil {
			err = errors.Wrap(terr, "peers6 must be compact")
			return
		}
		ret.Peers6, err = UnmarshalCompactPeers6(b)
		if err != nil {
			err = errors.Wrap(err, "peers6")
			return
		}
	}
	return
}

// All peers from both address families.
func (r AnnounceResponse) AllPeers() []Peer {
	return append(append([]Peer(nil), r.Peers.List...), r.Peers6...)
}
