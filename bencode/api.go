package bencode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

//----------------------------------------------------------------------------
// Errors
//----------------------------------------------------------------------------

// Returned by the encoder when it is handed something that has no bencode representation, such as
// a nil Value.
type MarshalTypeError struct {
	Value Value
}

func (e *MarshalTypeError) Error() string {
	return fmt.Sprintf("bencode: unsupported value: %#v", e.Value)
}

// A Value was not of the Kind the caller asked for.
type TypeError struct {
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return "bencode: expected " + e.Want.String() + ", got " + e.Got.String()
}

// Returned for any grammar violation. Offset is the position of the offending byte in the input.
type SyntaxError struct {
	Offset int64  // location of the error
	What   string // error description
	Err    error
}

func (e *SyntaxError) Error() string {
	s := "bencode: syntax error (offset: " +
		strconv.FormatInt(e.Offset, 10) +
		"): " + e.What
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Decode found a complete value followed by more input.
type ErrUnusedTrailingBytes struct {
	NumUnusedBytes int
}

func (me ErrUnusedTrailingBytes) Error() string {
	return fmt.Sprintf("%d unused trailing bytes", me.NumUnusedBytes)
}

//----------------------------------------------------------------------------
// Stateless interface
//----------------------------------------------------------------------------

// Encodes v with dictionary keys in their stored order.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	err := NewEncoder(&buf).Encode(v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encodes v with dictionary keys sorted by their raw bytes, as BEP 3 requires of canonical
// bencoding.
func MarshalCanonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.Canonical = true
	err := e.Encode(v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decodes exactly one value from b. Input left over after the value is an error.
func Decode(b []byte) (Value, error) {
	r := bytes.NewReader(b)
	d := NewDecoder(r)
	v, err := d.Decode()
	if err == io.EOF {
		return nil, &SyntaxError{
			Offset: 0,
			What:   "expected value, got end of input",
			Err:    io.ErrUnexpectedEOF,
		}
	}
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, ErrUnusedTrailingBytes{r.Len()}
	}
	return v, nil
}

// Decodes s by mapping each character to the single byte of the same value. Characters above 0xff
// can't be represented and fail, so any binary-sourced input should go through Decode instead.
func DecodeString(s string) (Value, error) {
	b := make([]byte, 0, len(s))
	for i, r := range s {
		if r > 0xff {
			return nil, &SyntaxError{
				Offset: int64(len(b)),
				What:   fmt.Sprintf("character %q at string index %d is outside the single-byte range", r, i),
			}
		}
		b = append(b, byte(r))
	}
	return Decode(b)
}

//----------------------------------------------------------------------------
// Stateful interface
//----------------------------------------------------------------------------

// Returns a Decoder that reads consecutive values from r. If r is not an io.ByteScanner, it's read a
// byte at a time so that nothing past the last decoded value is consumed.
func NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{
		MaxStrLen: DefaultDecodeMaxStrLen,
		MaxDepth:  DefaultDecodeMaxDepth,
	}
	if rs, ok := r.(byteScanReader); ok {
		d.r = rs
	} else {
		d.r = &scanner{Reader: r}
	}
	return d
}

type Encoder struct {
	e encoder
	// Sort dictionary keys instead of using their stored order.
	Canonical bool
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{e: encoder{w: w}}
}

func (e *Encoder) Encode(v Value) error {
	e.e.canonical = e.Canonical
	e.e.buf = e.e.buf[:0]
	err := e.e.encode(v)
	if err != nil {
		return err
	}
	_, err = e.e.w.Write(e.e.buf)
	return err
}
