package bencode

import (
	"bytes"
	"strconv"
)

// The four node types of the bencode grammar.
type Kind uint8

const (
	StringKind Kind = iota + 1
	IntKind
	ListKind
	DictKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntKind:
		return "integer"
	case ListKind:
		return "list"
	case DictKind:
		return "dictionary"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// A node of a decoded bencode tree. The set of implementations is closed: Bytes, Int, List and
// *Dict. Use the As* functions or a type switch to get at the contents.
type Value interface {
	Kind() Kind
	encode(e *encoder) error
}

var (
	_ Value = Bytes(nil)
	_ Value = Int(0)
	_ Value = List(nil)
	_ Value = (*Dict)(nil)
)

// A signed bencode integer.
type Int int64

func (Int) Kind() Kind { return IntKind }

// An ordered sequence of values.
type List []Value

func (List) Kind() Kind { return ListKind }

// Returns the Kind of v, or zero if v is nil.
func KindOf(v Value) Kind {
	if v == nil {
		return 0
	}
	return v.Kind()
}

func AsBytes(v Value) (Bytes, error) {
	if b, ok := v.(Bytes); ok {
		return b, nil
	}
	return nil, &TypeError{Want: StringKind, Got: KindOf(v)}
}

func AsInt(v Value) (int64, error) {
	if i, ok := v.(Int); ok {
		return int64(i), nil
	}
	return 0, &TypeError{Want: IntKind, Got: KindOf(v)}
}

func AsList(v Value) (List, error) {
	if l, ok := v.(List); ok {
		return l, nil
	}
	return nil, &TypeError{Want: ListKind, Got: KindOf(v)}
}

func AsDict(v Value) (*Dict, error) {
	if d, ok := v.(*Dict); ok && d != nil {
		return d, nil
	}
	return nil, &TypeError{Want: DictKind, Got: KindOf(v)}
}

// Reports whether two trees are identical. Dictionaries must hold the same keys in the same order,
// since that order determines the encoding.
func Equal(a, b Value) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch a := a.(type) {
	case nil:
		return true
	case Bytes:
		return bytes.Equal(a, b.(Bytes))
	case Int:
		return a == b.(Int)
	case List:
		bl := b.(List)
		if len(a) != len(bl) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bl[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bd := b.(*Dict)
		if a.Len() != bd.Len() {
			return false
		}
		ak, bk := a.Keys(), bd.Keys()
		for i := range ak {
			if ak[i] != bk[i] {
				return false
			}
			av, _ := a.Get(ak[i])
			bv, _ := bd.Get(bk[i])
			if !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		panic(a)
	}
}
