package bencode

import (
	"io"
	"strconv"
)

type encoder struct {
	w         io.Writer
	buf       []byte
	canonical bool
}

func (e *encoder) encode(v Value) error {
	if v == nil {
		return &MarshalTypeError{v}
	}
	return v.encode(e)
}

func (e *encoder) writeString(s string) {
	e.buf = strconv.AppendInt(e.buf, int64(len(s)), 10)
	e.buf = append(e.buf, ':')
	e.buf = append(e.buf, s...)
}

func (me Bytes) encode(e *encoder) error {
	e.buf = strconv.AppendInt(e.buf, int64(len(me)), 10)
	e.buf = append(e.buf, ':')
	e.buf = append(e.buf, me...)
	return nil
}

func (me Int) encode(e *encoder) error {
	e.buf = append(e.buf, 'i')
	e.buf = strconv.AppendInt(e.buf, int64(me), 10)
	e.buf = append(e.buf, 'e')
	return nil
}

func (me List) encode(e *encoder) error {
	e.buf = append(e.buf, 'l')
	for _, v := range me {
		if err := e.encode(v); err != nil {
			return err
		}
	}
	e.buf = append(e.buf, 'e')
	return nil
}

func (me *Dict) encode(e *encoder) error {
	e.buf = append(e.buf, 'd')
	keys := me.Keys()
	if e.canonical {
		keys = me.SortedKeys()
	}
	for _, k := range keys {
		v, _ := me.Get(k)
		e.writeString(k)
		if err := e.encode(v); err != nil {
			return err
		}
	}
	e.buf = append(e.buf, 'e')
	return nil
}
