package bencode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

const (
	// The longest byte string a Decoder accepts by default.
	DefaultDecodeMaxStrLen = 1<<27 - 1
	// The deepest list/dictionary nesting a Decoder accepts by default.
	DefaultDecodeMaxDepth = 256
)

// int64 has at most 19 digits. Anything longer overflows, so stop reading there.
const maxIntDigits = 19

// Reads consecutive bencoded values from a stream. It is the parse cursor: every step of a decode
// goes through it, and it holds no state shared with other Decoders.
type Decoder struct {
	r byteScanReader
	// Sum of bytes consumed from the underlying reader.
	Offset int64
	// Byte strings declaring a longer length fail. Zero or less disables the check.
	MaxStrLen int64
	// Lists and dictionaries nested deeper than this fail. Zero or less disables the check.
	MaxDepth int
	depth    int
}

// Decodes the next value. Returns io.EOF if the stream ends cleanly before a value starts. Any
// other failure is a *SyntaxError, and the stream position is then undefined.
func (d *Decoder) Decode() (Value, error) {
	d.depth = 0
	_, err := d.peekByte()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, d.readError(err)
	}
	return d.parseValue()
}

func (d *Decoder) readByte() (byte, error) {
	c, err := d.r.ReadByte()
	if err == nil {
		d.Offset++
	}
	return c, err
}

func (d *Decoder) peekByte() (byte, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return c, err
	}
	return c, d.r.UnreadByte()
}

func (d *Decoder) syntaxError(format string, args ...any) *SyntaxError {
	return d.syntaxErrorAt(d.Offset, format, args...)
}

func (d *Decoder) syntaxErrorAt(offset int64, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Offset: offset,
		What:   fmt.Sprintf(format, args...),
	}
}

func (d *Decoder) readError(err error) *SyntaxError {
	return &SyntaxError{
		Offset: d.Offset,
		What:   "reading input",
		Err:    err,
	}
}

// Describes running out of input while expecting what.
func (d *Decoder) eofError(what string, err error) *SyntaxError {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &SyntaxError{
		Offset: d.Offset,
		What:   "expected " + what + ", got end of input",
		Err:    err,
	}
}

func (d *Decoder) parseValue() (Value, error) {
	c, err := d.peekByte()
	if err != nil {
		return nil, d.eofError("value", err)
	}
	switch {
	case '0' <= c && c <= '9':
		return d.parseString()
	case c == 'i':
		return d.parseInt()
	case c == 'l':
		return d.parseList()
	case c == 'd':
		return d.parseDict()
	default:
		return nil, d.syntaxError("unrecognized node type: got %q", c)
	}
}

// Reads decimal digits up to and including the terminator, with an optional leading minus sign.
func (d *Decoder) readDecimal(what string, term byte, allowNegative bool) (int64, error) {
	var digits []byte
	c, err := d.readByte()
	if err != nil {
		return 0, d.eofError(what, err)
	}
	if c == '-' && allowNegative {
		digits = append(digits, c)
		c, err = d.readByte()
		if err != nil {
			return 0, d.eofError(what, err)
		}
	}
	for c != term {
		if c < '0' || c > '9' {
			return 0, d.syntaxErrorAt(d.Offset-1, "expected digit or %q in %s, got %q", term, what, c)
		}
		digits = append(digits, c)
		if len(digits) > maxIntDigits+1 {
			return 0, d.syntaxErrorAt(d.Offset-1, "%s %s... overflows int64", what, digits)
		}
		c, err = d.readByte()
		if err != nil {
			return 0, d.eofError(fmt.Sprintf("%q terminating %s", term, what), err)
		}
	}
	if len(digits) == 0 || (len(digits) == 1 && digits[0] == '-') {
		return 0, d.syntaxErrorAt(d.Offset-1, "expected digit in %s, got %q", what, c)
	}
	i, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0, &SyntaxError{
			Offset: d.Offset - 1,
			What:   fmt.Sprintf("parsing %s %q", what, digits),
			Err:    err,
		}
	}
	return i, nil
}

func (d *Decoder) parseInt() (Value, error) {
	// Consume the 'i' that parseValue peeked.
	if _, err := d.readByte(); err != nil {
		return nil, d.readError(err)
	}
	i, err := d.readDecimal("integer", 'e', true)
	if err != nil {
		return nil, err
	}
	return Int(i), nil
}

func (d *Decoder) parseString() (Value, error) {
	start := d.Offset
	length, err := d.readDecimal("string length", ':', false)
	if err != nil {
		return nil, err
	}
	if d.MaxStrLen > 0 && length > d.MaxStrLen {
		return nil, &SyntaxError{
			Offset: start,
			What:   fmt.Sprintf("string length %d exceeds maximum of %d", length, d.MaxStrLen),
		}
	}
	var buf bytes.Buffer
	if length <= 1<<16 {
		buf.Grow(int(length))
	}
	// The buffer only grows as data actually arrives, so a lying length prefix can't force a huge
	// allocation.
	n, err := io.CopyN(&buf, d.r, length)
	d.Offset += n
	if n != length {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &SyntaxError{
			Offset: d.Offset,
			What: fmt.Sprintf(
				"expected %d bytes of string data, got %d: %s",
				length, n, excerpt(buf.Bytes()),
			),
			Err: err,
		}
	}
	return Bytes(buf.Bytes()), nil
}

func (d *Decoder) enter(what string) error {
	d.depth++
	if d.MaxDepth > 0 && d.depth > d.MaxDepth {
		return d.syntaxError("%s nested deeper than %d", what, d.MaxDepth)
	}
	return nil
}

func (d *Decoder) parseList() (Value, error) {
	if err := d.enter("list"); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()
	if _, err := d.readByte(); err != nil {
		return nil, d.readError(err)
	}
	ret := List{}
	for {
		c, err := d.peekByte()
		if err != nil {
			return nil, d.eofError("list item or 'e' terminating list", err)
		}
		if c == 'e' {
			d.readByte()
			return ret, nil
		}
		v, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
}

func (d *Decoder) parseDict() (Value, error) {
	if err := d.enter("dictionary"); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()
	if _, err := d.readByte(); err != nil {
		return nil, d.readError(err)
	}
	ret := NewDict()
	for {
		c, err := d.peekByte()
		if err != nil {
			return nil, d.eofError("dictionary key or 'e' terminating dictionary", err)
		}
		if c == 'e' {
			d.readByte()
			return ret, nil
		}
		keyOffset := d.Offset
		k, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		kb, ok := k.(Bytes)
		if !ok {
			return nil, &SyntaxError{
				Offset: keyOffset,
				What:   fmt.Sprintf("dictionary key must be a string, got %v", k.Kind()),
			}
		}
		key := bytesAsString(kb)
		if ret.Has(key) {
			return nil, &SyntaxError{
				Offset: keyOffset,
				What:   fmt.Sprintf("duplicate dictionary key %q", key),
			}
		}
		c, err = d.peekByte()
		if err != nil {
			return nil, d.eofError(fmt.Sprintf("value for dictionary key %q", key), err)
		}
		if c == 'e' {
			return nil, d.syntaxError("expected value for dictionary key %q, got 'e'", key)
		}
		v, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		ret.Set(key, v)
	}
}

const maxExcerptLen = 16

// A short, quoted rendering of some input for error messages.
func excerpt(b []byte) string {
	if len(b) > maxExcerptLen {
		return fmt.Sprintf("%q...", b[:maxExcerptLen])
	}
	return fmt.Sprintf("%q", b)
}

// Returns the value stored under key in the dictionary encoded by b, as the exact bytes that encode
// it in b. ok is false when the dictionary lacks key. No length or depth limits apply, so b should
// already have been through a limited Decoder.
func RawDictValue(b []byte, key string) ([]byte, bool, error) {
	d := NewDecoder(bytes.NewReader(b))
	d.MaxStrLen = 0
	d.MaxDepth = 0
	c, err := d.readByte()
	if err != nil {
		return nil, false, d.eofError("dictionary", err)
	}
	if c != 'd' {
		return nil, false, d.syntaxErrorAt(0, "expected dictionary, got %q", c)
	}
	for {
		c, err = d.peekByte()
		if err != nil {
			return nil, false, d.eofError("dictionary key or 'e' terminating dictionary", err)
		}
		if c == 'e' {
			return nil, false, nil
		}
		keyOffset := d.Offset
		var k Value
		k, err = d.parseValue()
		if err != nil {
			return nil, false, err
		}
		kb, isBytes := k.(Bytes)
		if !isBytes {
			return nil, false, d.syntaxErrorAt(keyOffset, "dictionary key must be a string, got %v", k.Kind())
		}
		start := d.Offset
		if _, err = d.parseValue(); err != nil {
			return nil, false, err
		}
		if bytesAsString(kb) == key {
			return b[start:d.Offset], true, nil
		}
	}
}
