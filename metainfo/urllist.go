package metainfo

import (
	"github.com/torrentclient/torrent/bencode"
)

// Web seed URLs (BEP 19). The descriptor may carry a single string or a list of them.
type UrlList []string

func urlListFromValue(v bencode.Value) (UrlList, bool) {
	switch v := v.(type) {
	case bencode.Bytes:
		if len(v) == 0 {
			return nil, true
		}
		return UrlList{v.String()}, true
	case bencode.List:
		ret := make(UrlList, 0, len(v))
		for _, uv := range v {
			u, ok := uv.(bencode.Bytes)
			if !ok {
				return nil, false
			}
			ret = append(ret, u.String())
		}
		return ret, true
	}
	return nil, false
}
