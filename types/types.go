// Package types contains types shared between packages that shouldn't otherwise depend on each
// other.
package types

type PieceIndex = int
