/*
Package torrent holds the per-connection state of BitTorrent peers: the handshake progress, choke
and interest flags, and the pieces each peer has announced. Decoding is left to the subpackages:
bencode for the value grammar, metainfo for .torrent files, tracker for peer lists, and
peer_protocol for wire messages.

Simple example:

	cfg := torrent.NewDefaultClientConfig()
	mi, err := cfg.LoadMetaInfo("ubuntu.torrent")
	if err != nil {
		log.Fatal(err)
	}
	ps := cfg.NewPeerState(conn, addr)
	ps.SetNumPieces(mi.NumPieces())
	ps.SentHandshake()
	ps.ReceivedHandshake(h.PeerID)
	for {
		var msg pp.Message
		if err := dec.Decode(&msg); err != nil {
			break
		}
		if err := ps.Apply(msg); err != nil {
			break
		}
	}
*/
package torrent
