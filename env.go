package torrent

import (
	"os"
	"strconv"

	"github.com/anacrolix/missinggo/v2/panicif"
	"golang.org/x/exp/constraints"
)

// Reads an integer override for a default from the environment. Panics if the value is malformed.
func initIntFromEnv[T constraints.Integer](key string, defaultValue T, bitSize int) T {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	if isSigned[T]() {
		i64, err := strconv.ParseInt(s, 10, bitSize)
		panicif.Err(err)
		return T(i64)
	}
	u64, err := strconv.ParseUint(s, 10, bitSize)
	panicif.Err(err)
	return T(u64)
}

func isSigned[T constraints.Integer]() bool {
	var x T
	x--
	return x < 0
}
