package main

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/torrentclient/torrent/bencode"
)

func TestDecodeLimitFlags(t *testing.T) {
	maxStrLen, maxDepth := int64(3), 1
	flags.MaxStrLen = &maxStrLen
	flags.MaxDepth = &maxDepth
	t.Cleanup(func() {
		flags.MaxStrLen = nil
		flags.MaxDepth = nil
	})
	var buf bytes.Buffer
	err := dumpReader(newConfig(), strings.NewReader("3:abc4:abcd"), &buf)
	var se *bencode.SyntaxError
	qt.Assert(t, qt.ErrorAs(err, &se))
	qt.Check(t, qt.Equals(buf.String(), "3:abc\n"))

	buf.Reset()
	err = dumpReader(newConfig(), strings.NewReader("li1eelli1eee"), &buf)
	qt.Assert(t, qt.ErrorAs(err, &se))
	qt.Check(t, qt.Equals(buf.String(), "li1ee\n"))
}

func TestDefaultLimitsWithoutFlags(t *testing.T) {
	cfg := newConfig()
	qt.Check(t, qt.Equals(cfg.DecodeMaxStrLen, int64(bencode.DefaultDecodeMaxStrLen)))
	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(dumpReader(cfg, strings.NewReader("d1:ali1eee"), &buf)))
	qt.Check(t, qt.Equals(buf.String(), "d1:ali1eee\n"))
}
