// Reads consecutive bencoded values and writes each back out, or dumps the decoded tree.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/anacrolix/envpprof"
	"github.com/anacrolix/tagflag"
	"github.com/davecgh/go-spew/spew"

	"github.com/torrentclient/torrent"
	"github.com/torrentclient/torrent/bencode"
)

var flags = struct {
	// Re-encode with sorted dictionary keys.
	Canonical bool
	// Dump the decoded value tree instead of re-encoding it.
	Spew bool
	// List dictionary keys of the top-level values only.
	Keys bool
	// Override the configured decode limits. Non-positive disables the limit.
	MaxStrLen *int64 `name:"max-str-len"`
	MaxDepth  *int   `name:"max-depth"`
	tagflag.StartPos
	// Read from stdin if none are given.
	Files []string `arity:"*"`
}{}

func dumpValue(w io.Writer, v bencode.Value) error {
	switch {
	case flags.Keys:
		d, err := bencode.AsDict(v)
		if err != nil {
			return err
		}
		for _, k := range d.Keys() {
			fv, _ := d.Get(k)
			fmt.Fprintf(w, "%q: %v\n", k, bencode.KindOf(fv))
		}
		return nil
	case flags.Spew:
		spew.Fdump(w, v)
		return nil
	}
	enc := bencode.NewEncoder(w)
	enc.Canonical = flags.Canonical
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}

func dumpReader(cfg *torrent.ClientConfig, r io.Reader, w io.Writer) error {
	d := cfg.NewBencodeDecoder(bufio.NewReader(r))
	for {
		v, err := d.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := dumpValue(w, v); err != nil {
			return err
		}
	}
}

func newConfig() *torrent.ClientConfig {
	cfg := torrent.NewDefaultClientConfig()
	if flags.MaxStrLen != nil {
		cfg.DecodeMaxStrLen = *flags.MaxStrLen
	}
	if flags.MaxDepth != nil {
		cfg.DecodeMaxDepth = *flags.MaxDepth
	}
	return cfg
}

func main() {
	defer envpprof.Stop()
	tagflag.Parse(&flags)
	cfg := newConfig()
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if len(flags.Files) == 0 {
		if err := dumpReader(cfg, os.Stdin, w); err != nil {
			w.Flush()
			log.Fatal(err)
		}
		return
	}
	for _, name := range flags.Files {
		f, err := os.Open(name)
		if err != nil {
			w.Flush()
			log.Fatal(err)
		}
		err = dumpReader(cfg, f, w)
		f.Close()
		if err != nil {
			w.Flush()
			log.Fatalf("%s: %v", name, err)
		}
	}
}
