package metainfo

import (
	"slices"

	"github.com/torrentclient/torrent/bencode"
)

// Tiers of tracker URLs (BEP 12).
type AnnounceList [][]string

func (al AnnounceList) Clone() (ret AnnounceList) {
	for _, tier := range al {
		ret = append(ret, slices.Clone(tier))
	}
	return
}

// Whether the AnnounceList should be preferred over a single URL announce.
func (al AnnounceList) OverridesAnnounce(announce string) bool {
	for _, tier := range al {
		for _, url := range tier {
			if url != "" || announce == "" {
				return true
			}
		}
	}
	return false
}

func (al AnnounceList) DistinctValues() (ret []string) {
	seen := make(map[string]struct{})
	for _, tier := range al {
		for _, v := range tier {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				ret = append(ret, v)
			}
		}
	}
	return
}

// Expects a list of lists of strings. Anything else in the structure makes the whole list unusable.
func announceListFromValue(v bencode.Value) (al AnnounceList, ok bool) {
	tiers, ok := v.(bencode.List)
	if !ok {
		return
	}
	for _, tv := range tiers {
		tier, ok := tv.(bencode.List)
		if !ok {
			return nil, false
		}
		urls := make([]string, 0, len(tier))
		for _, uv := range tier {
			u, ok := uv.(bencode.Bytes)
			if !ok {
				return nil, false
			}
			urls = append(urls, u.String())
		}
		al = append(al, urls)
	}
	return al, true
}

// Every tracker URL in the descriptor, announce-list tiers first when they override announce.
func (mi *MetaInfo) UpvertedAnnounceList() AnnounceList {
	if mi.AnnounceList.OverridesAnnounce(mi.Announce) {
		return mi.AnnounceList.Clone()
	}
	if mi.Announce != "" {
		return AnnounceList{{mi.Announce}}
	}
	return nil
}
