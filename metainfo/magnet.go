package metainfo

import (
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	g "github.com/anacrolix/generics"
)

// Magnet link components.
type Magnet struct {
	InfoHash    Hash
	Trackers    []string   // "tr" values
	DisplayName string     // "dn" value, if not empty
	Params      url.Values // All other values, such as "x.pe", "as", "xs" etc.
}

const btihPrefix = "urn:btih:"

// A magnet link for the descriptor, with every distinct tracker URL.
func (mi *MetaInfo) Magnet() Magnet {
	return Magnet{
		InfoHash:    mi.InfoHash,
		Trackers:    mi.UpvertedAnnounceList().DistinctValues(),
		DisplayName: mi.Name,
	}
}

func (m Magnet) String() string {
	vs := make(url.Values, len(m.Params)+len(m.Trackers)+2)
	for k, v := range m.Params {
		vs[k] = append([]string(nil), v...)
	}
	for _, tr := range m.Trackers {
		vs.Add("tr", tr)
	}
	if m.DisplayName != "" {
		vs.Add("dn", m.DisplayName)
	}
	// Clients expect "urn:btih:" unescaped and first.
	u := url.URL{
		Scheme:   "magnet",
		RawQuery: "xt=" + btihPrefix + m.InfoHash.HexString(),
	}
	if len(vs) != 0 {
		u.RawQuery += "&" + vs.Encode()
	}
	return u.String()
}

func ParseMagnetUri(uri string) (m Magnet, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		err = fmt.Errorf("error parsing uri: %w", err)
		return
	}
	if u.Scheme != "magnet" {
		err = fmt.Errorf("unexpected scheme %q", u.Scheme)
		return
	}
	q := u.Query()
	gotInfohash := false
	for _, xt := range q["xt"] {
		encoded, found := strings.CutPrefix(xt, btihPrefix)
		if gotInfohash || !found {
			lazyAddParam(&m.Params, "xt", xt)
			continue
		}
		m.InfoHash, err = parseEncodedInfohash(encoded)
		if err != nil {
			err = fmt.Errorf("error parsing infohash %q: %w", xt, err)
			return
		}
		gotInfohash = true
	}
	if !gotInfohash {
		err = errors.New("missing infohash")
		return
	}
	q.Del("xt")
	m.DisplayName = popFirstValue(q, "dn").UnwrapOrZeroValue()
	m.Trackers = q["tr"]
	q.Del("tr")
	for k, vs := range q {
		for _, v := range vs {
			lazyAddParam(&m.Params, k, v)
		}
	}
	return
}

// Hex (40 characters) or base32 (32 characters).
func parseEncodedInfohash(encoded string) (ih Hash, err error) {
	var decode func(dst, src []byte) (int, error)
	switch len(encoded) {
	case 2 * HashSize:
		decode = hex.Decode
	case 32:
		decode = base32.StdEncoding.Decode
	default:
		err = fmt.Errorf("unhandled xt parameter encoding (encoded length %d)", len(encoded))
		return
	}
	_, err = decode(ih[:], []byte(strings.ToUpper(encoded)))
	if err != nil {
		err = fmt.Errorf("error decoding xt: %w", err)
	}
	return
}

func popFirstValue(vs url.Values, key string) g.Option[string] {
	sl := vs[key]
	switch len(sl) {
	case 0:
		return g.None[string]()
	case 1:
		vs.Del(key)
		return g.Some(sl[0])
	default:
		vs[key] = sl[1:]
		return g.Some(sl[0])
	}
}

func lazyAddParam(vs *url.Values, k, v string) {
	if *vs == nil {
		g.MakeMap(vs)
	}
	vs.Add(k, v)
}
