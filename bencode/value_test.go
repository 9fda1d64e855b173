package bencode

import (
	"testing"

	qt "github.com/go-quicktest/qt"
)

func TestKindString(t *testing.T) {
	qt.Check(t, qt.Equals(StringKind.String(), "string"))
	qt.Check(t, qt.Equals(DictKind.String(), "dictionary"))
	qt.Check(t, qt.Equals(Kind(0).String(), "Kind(0)"))
}

func TestAsAccessors(t *testing.T) {
	_, err := AsInt(Bytes("1"))
	var te *TypeError
	qt.Assert(t, qt.ErrorAs(err, &te))
	qt.Check(t, qt.Equals(te.Want, IntKind))
	qt.Check(t, qt.Equals(te.Got, StringKind))
	qt.Check(t, qt.ErrorMatches(err, "bencode: expected integer, got string"))

	_, err = AsDict(nil)
	qt.Assert(t, qt.ErrorAs(err, &te))
	qt.Check(t, qt.Equals(te.Got, Kind(0)))

	_, err = AsDict((*Dict)(nil))
	qt.Check(t, qt.IsNotNil(err))

	l, err := AsList(List{Int(1)})
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.HasLen(l, 1))

	b, err := AsBytes(Bytes("x"))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(b.String(), "x"))
}

func TestDictTypedLookups(t *testing.T) {
	d := dictOf(
		"s", Bytes("str"),
		"i", Int(-3),
		"l", List{},
		"d", NewDict(),
	)
	s, ok := d.Text("s")
	qt.Check(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(s, "str"))
	_, ok = d.Text("i")
	qt.Check(t, qt.IsFalse(ok))
	i, ok := d.Int("i")
	qt.Check(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(i, -3))
	_, ok = d.Int("missing")
	qt.Check(t, qt.IsFalse(ok))
	_, ok = d.List("l")
	qt.Check(t, qt.IsTrue(ok))
	_, ok = d.Dict("d")
	qt.Check(t, qt.IsTrue(ok))
	_, ok = d.Dict("s")
	qt.Check(t, qt.IsFalse(ok))
	qt.Check(t, qt.IsTrue(d.Has("d")))
	qt.Check(t, qt.Equals(d.Len(), 4))
}

func TestDictSetExistingKeepsPosition(t *testing.T) {
	d := dictOf("a", Int(1), "b", Int(2))
	d.Set("a", Int(3))
	qt.Check(t, qt.DeepEquals(d.Keys(), []string{"a", "b"}))
	i, _ := d.Int("a")
	qt.Check(t, qt.Equals(i, 3))
	qt.Check(t, qt.IsTrue(d.Delete("a")))
	qt.Check(t, qt.IsFalse(d.Delete("a")))
	d.Set("a", Int(4))
	qt.Check(t, qt.DeepEquals(d.Keys(), []string{"b", "a"}))
}

func TestZeroDict(t *testing.T) {
	var d Dict
	qt.Check(t, qt.Equals(d.Len(), 0))
	qt.Check(t, qt.IsFalse(d.Has("a")))
	d.Set("a", Int(1))
	qt.Check(t, qt.Equals(d.Len(), 1))

	var nilDict *Dict
	qt.Check(t, qt.Equals(nilDict.Len(), 0))
	qt.Check(t, qt.HasLen(nilDict.Keys(), 0))
}

func TestDictRangeStops(t *testing.T) {
	d := dictOf("a", Int(1), "b", Int(2), "c", Int(3))
	var seen []string
	d.Range(func(key string, v Value) bool {
		seen = append(seen, key)
		return key != "b"
	})
	qt.Check(t, qt.DeepEquals(seen, []string{"a", "b"}))
}

func TestEqual(t *testing.T) {
	qt.Check(t, qt.IsTrue(Equal(nil, nil)))
	qt.Check(t, qt.IsFalse(Equal(Int(1), nil)))
	qt.Check(t, qt.IsFalse(Equal(Int(1), Bytes("1"))))
	qt.Check(t, qt.IsTrue(Equal(Bytes(nil), Bytes{})))
	qt.Check(t, qt.IsFalse(Equal(List{Int(1)}, List{Int(1), Int(2)})))
	qt.Check(t, qt.IsTrue(Equal(dictOf("a", Int(1)), dictOf("a", Int(1)))))
	// Order is part of a dictionary's identity.
	qt.Check(t, qt.IsFalse(Equal(
		dictOf("a", Int(1), "b", Int(2)),
		dictOf("b", Int(2), "a", Int(1)),
	)))
}
