package typedRoaring

import (
	"github.com/RoaringBitmap/roaring"
	"golang.org/x/exp/constraints"
)

// Any integer type whose values fit in 32 bits can index a Bitmap.
type BitConstraint interface {
	constraints.Integer
}

// A roaring bitmap keyed by T instead of uint32.
type Bitmap[T BitConstraint] struct {
	roaring.Bitmap
}

func (me *Bitmap[T]) Contains(x T) bool {
	return me.Bitmap.Contains(uint32(x))
}

func (me *Bitmap[T]) Add(x T) {
	me.Bitmap.Add(uint32(x))
}

func (me *Bitmap[T]) CheckedAdd(x T) bool {
	return me.Bitmap.CheckedAdd(uint32(x))
}

func (me *Bitmap[T]) Remove(x T) {
	me.Bitmap.Remove(uint32(x))
}

func (me *Bitmap[T]) Rank(x T) uint64 {
	return me.Bitmap.Rank(uint32(x))
}

func (me *Bitmap[T]) Len() int {
	return int(me.Bitmap.GetCardinality())
}

// Calls f for each member in ascending order until it returns false.
func (me *Bitmap[T]) Iterate(f func(x T) bool) {
	me.Bitmap.Iterate(func(x uint32) bool {
		return f(T(x))
	})
}

func (me *Bitmap[T]) Clone() Bitmap[T] {
	return Bitmap[T]{*me.Bitmap.Clone()}
}

// Replaces the contents with the indexes of the true values in bs.
func (me *Bitmap[T]) SetBools(bs []bool) {
	me.Bitmap.Clear()
	for i, b := range bs {
		if b {
			me.Bitmap.Add(uint32(i))
		}
	}
}

// Membership of 0..n-1 as flags.
func (me *Bitmap[T]) ToBools(n int) []bool {
	ret := make([]bool, n)
	me.Iterate(func(x T) bool {
		if int(x) >= n {
			return false
		}
		ret[x] = true
		return true
	})
	return ret
}

// Returns an uninitialized iterator for the type of the receiver.
func (Bitmap[T]) IteratorType() Iterator[T] {
	return Iterator[T]{}
}
