package metainfo

import (
	"path/filepath"
	"strings"
)

// A single file of the torrent. For single-file torrents Path is the torrent name. For multi-file
// torrents it's the file's path segments joined with the platform separator, relative to the
// torrent's root directory (which is named by MetaInfo.Name).
type FileInfo struct {
	Path   string
	Length int64
	// Byte offset of the file within the concatenated torrent data.
	TorrentOffset int64
}

// The path a client would write the file to, relative to the download directory.
func (fi FileInfo) DisplayPath(mi *MetaInfo) string {
	if mi.IsDir() {
		return filepath.Join(mi.Name, fi.Path)
	}
	return fi.Path
}

// Returns why a single path segment from a descriptor can't be used, or "" if it's fine.
func badPathSegment(s string) string {
	switch s {
	case "":
		return "empty path segment"
	case ".", "..":
		return "path segment " + s + " not allowed"
	}
	if strings.ContainsAny(s, `/\`) || strings.ContainsRune(s, 0) {
		return "path segment contains a separator or NUL"
	}
	return ""
}

func joinPathSegments(segments []string) (string, bool) {
	p := filepath.Join(segments...)
	return p, filepath.IsLocal(p)
}
