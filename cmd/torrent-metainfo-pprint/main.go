package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/anacrolix/envpprof"
	"github.com/anacrolix/tagflag"
	"github.com/bradfitz/iter"
	"github.com/dustin/go-humanize"

	"github.com/torrentclient/torrent"
	"github.com/torrentclient/torrent/metainfo"
)

var flags struct {
	JustName    bool
	PieceHashes bool
	Files       bool
	tagflag.StartPos
	// Read from stdin if none are given.
	Torrents []string `arity:"*"`
}

func pprint(mi *metainfo.MetaInfo) error {
	if flags.JustName {
		fmt.Printf("%s\n", mi.Name)
		return nil
	}
	d := map[string]interface{}{
		"Name":         mi.Name,
		"NumPieces":    mi.NumPieces(),
		"PieceLength":  mi.PieceLength,
		"InfoHash":     mi.InfoHash.HexString(),
		"NumFiles":     len(mi.Files),
		"TotalLength":  humanize.Bytes(uint64(mi.TotalLength())),
		"Announce":     mi.Announce,
		"AnnounceList": mi.AnnounceList,
		"UrlList":      mi.UrlList,
		"Private":      mi.Private,
	}
	if mi.Comment != "" {
		d["Comment"] = mi.Comment
	}
	if !mi.CreationDate.IsZero() {
		d["CreationDate"] = mi.CreationDate
	}
	if err := mi.CheckPieceCount(); err != nil {
		d["PieceCountMismatch"] = err.Error()
	}
	if flags.Files {
		files := make([]map[string]interface{}, 0, len(mi.Files))
		for _, fi := range mi.Files {
			files = append(files, map[string]interface{}{
				"Path":   fi.DisplayPath(mi),
				"Length": fi.Length,
				"Size":   humanize.Bytes(uint64(fi.Length)),
			})
		}
		d["Files"] = files
	}
	if flags.PieceHashes {
		d["PieceHashes"] = func() (ret []string) {
			for i := range iter.N(mi.NumPieces()) {
				ret = append(ret, mi.Piece(i).Hash().HexString())
			}
			return
		}()
	}
	b, _ := json.MarshalIndent(d, "", "  ")
	_, err := os.Stdout.Write(append(b, '\n'))
	return err
}

func main() {
	defer envpprof.Stop()
	tagflag.Parse(&flags)
	if len(flags.Torrents) == 0 {
		mi, err := metainfo.Load(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprint(mi); err != nil {
			log.Fatal(err)
		}
		return
	}
	cfg := torrent.NewDefaultClientConfig()
	for _, path := range flags.Torrents {
		mi, err := cfg.LoadMetaInfo(path)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprint(mi); err != nil {
			log.Fatal(err)
		}
	}
}
