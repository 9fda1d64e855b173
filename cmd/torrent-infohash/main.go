package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/anacrolix/tagflag"
	"golang.org/x/sync/errgroup"

	"github.com/torrentclient/torrent/metainfo"
)

func main() {
	var args struct {
		tagflag.StartPos
		Files []string `arity:"+" help:"torrent files"`
	}
	tagflag.Parse(&args)
	infos := make([]*metainfo.MetaInfo, len(args.Files))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, arg := range args.Files {
		eg.Go(func() (err error) {
			infos[i], err = metainfo.LoadFromFile(arg)
			return
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatal(err)
	}
	for i, mi := range infos {
		fmt.Printf("%s: %s\n", mi.InfoHash.HexString(), args.Files[i])
	}
}
