// Prints the peers in a saved tracker announce response.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/torrentclient/torrent/bencode"
	"github.com/torrentclient/torrent/tracker"
)

func main() {
	err := mainErr()
	if err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func mainErr() error {
	var args struct {
		NoDedupe bool   `help:"keep repeated addresses"`
		Compact  bool   `help:"print the compact encoding of the IPv4 peers as hex"`
		Bencode  bool   `help:"print the peers bencoded in the form the tracker sent them"`
		Response string `arg:"positional" help:"announce response body, stdin if omitted"`
	}
	arg.MustParse(&args)
	var (
		b   []byte
		err error
	)
	if args.Response == "" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(args.Response)
	}
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	resp, err := tracker.ParseAnnounceResponse(b)
	if err != nil {
		return err
	}
	peers := resp.AllPeers()
	if !args.NoDedupe {
		peers = tracker.DedupePeers(peers)
	}
	if args.Bencode {
		v, err := tracker.Peers{List: peers, Compact: resp.Peers.Compact}.Value()
		if err != nil {
			return errors.Wrap(err, "encoding peers")
		}
		b, err := bencode.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", b)
		return nil
	}
	if args.Compact {
		var v4 []tracker.Peer
		for _, p := range peers {
			if p.IP.Is4() {
				v4 = append(v4, p)
			}
		}
		cb, err := tracker.MarshalCompactPeers(v4)
		if err != nil {
			return err
		}
		fmt.Printf("%x\n", cb)
		return nil
	}
	fmt.Printf(
		"interval %v, %v seeders, %v leechers, %v peers\n",
		resp.Interval, humanize.Comma(resp.Complete), humanize.Comma(resp.Incomplete), len(peers))
	for _, p := range peers {
		fmt.Println(p.String())
	}
	return nil
}
