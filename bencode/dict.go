package bencode

import (
	"sort"

	"github.com/elliotchance/orderedmap"
)

// A bencode dictionary. Keys are byte strings held as Go strings (the conversion is lossless), and
// iteration follows insertion order. The zero value is an empty dictionary ready to use.
type Dict struct {
	m *orderedmap.OrderedMap
}

func (*Dict) Kind() Kind { return DictKind }

func NewDict() *Dict {
	return &Dict{m: orderedmap.NewOrderedMap()}
}

func (d *Dict) init() {
	if d.m == nil {
		d.m = orderedmap.NewOrderedMap()
	}
}

// Sets key to v. An existing key keeps its position.
func (d *Dict) Set(key string, v Value) {
	d.init()
	d.m.Set(key, v)
}

func (d *Dict) Get(key string) (v Value, ok bool) {
	if d == nil || d.m == nil {
		return
	}
	i, ok := d.m.Get(key)
	if !ok {
		return
	}
	v, _ = i.(Value)
	return
}

// Removes key, reporting whether it was present.
func (d *Dict) Delete(key string) bool {
	if d == nil || d.m == nil {
		return false
	}
	return d.m.Delete(key)
}

func (d *Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

func (d *Dict) Len() int {
	if d == nil || d.m == nil {
		return 0
	}
	return d.m.Len()
}

// Keys in insertion order.
func (d *Dict) Keys() (ret []string) {
	d.Range(func(key string, _ Value) bool {
		ret = append(ret, key)
		return true
	})
	return
}

// Keys sorted by raw bytes, the order canonical bencoding requires.
func (d *Dict) SortedKeys() []string {
	keys := d.Keys()
	sort.Strings(keys)
	return keys
}

// Calls f for each entry in insertion order until it returns false.
func (d *Dict) Range(f func(key string, v Value) bool) {
	if d == nil || d.m == nil {
		return
	}
	for el := d.m.Front(); el != nil; el = el.Next() {
		v, _ := el.Value.(Value)
		if !f(el.Key.(string), v) {
			return
		}
	}
}

func (d *Dict) Bytes(key string) (b Bytes, ok bool) {
	v, _ := d.Get(key)
	b, ok = v.(Bytes)
	return
}

// The byte string at key, as a Go string.
func (d *Dict) Text(key string) (string, bool) {
	b, ok := d.Bytes(key)
	return string(b), ok
}

func (d *Dict) Int(key string) (int64, bool) {
	v, _ := d.Get(key)
	i, ok := v.(Int)
	return int64(i), ok
}

func (d *Dict) List(key string) (l List, ok bool) {
	v, _ := d.Get(key)
	l, ok = v.(List)
	return
}

func (d *Dict) Dict(key string) (*Dict, bool) {
	v, _ := d.Get(key)
	ret, ok := v.(*Dict)
	return ret, ok && ret != nil
}
