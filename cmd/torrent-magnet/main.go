package main

import (
	"fmt"
	"os"

	"github.com/torrentclient/torrent/metainfo"
)

func main() {
	mi, err := metainfo.Load(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading metainfo from stdin: %s\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "%s\n", mi.Magnet().String())
}
