// Package version provides the client identification sent to peers.
package version

import (
	"fmt"
)

// Prefix of generated peer IDs (BEP 20). Bump the version digits when behaviour other peers could
// care about changes.
var DefaultBep20Prefix = MustFingerprint("TC", 0, 1, 0, 0)

// A single character per version component: 0-9, then A-Z.
func versionChar(v int) (byte, error) {
	switch {
	case v < 0:
		return 0, fmt.Errorf("negative version number %d", v)
	case v < 10:
		return byte('0' + v), nil
	case v < 36:
		return byte('A' + v - 10), nil
	default:
		return 0, fmt.Errorf("version number %d too large", v)
	}
}

// Builds an 8-byte Azureus-style client prefix, like "-LT2100-" for LT 2.1.0.0.
func Fingerprint(name string, major, minor, revision, tag int) (string, error) {
	if len(name) != 2 {
		return "", fmt.Errorf("client name %q must be 2 bytes", name)
	}
	b := []byte{'-', name[0], name[1]}
	for _, v := range []int{major, minor, revision, tag} {
		c, err := versionChar(v)
		if err != nil {
			return "", err
		}
		b = append(b, c)
	}
	return string(append(b, '-')), nil
}

func MustFingerprint(name string, major, minor, revision, tag int) string {
	s, err := Fingerprint(name, major, minor, revision, tag)
	if err != nil {
		panic(err)
	}
	return s
}
