package bencode

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"testing"

	qt "github.com/go-quicktest/qt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dictOf(kvs ...any) *Dict {
	d := NewDict()
	for i := 0; i < len(kvs); i += 2 {
		d.Set(kvs[i].(string), kvs[i+1].(Value))
	}
	return d
}

type random_decode_test struct {
	data     string
	expected Value
}

var random_decode_tests = []random_decode_test{
	{"i57e", Int(57)},
	{"i-9223372036854775808e", Int(math.MinInt64)},
	{"i9223372036854775807e", Int(math.MaxInt64)},
	{"i0e", Int(0)},
	{"i-0e", Int(0)},
	{"i007e", Int(7)},
	{"5:hello", Bytes("hello")},
	{"0:", Bytes{}},
	{"29:unicode test проверка", Bytes("unicode test проверка")},
	{"d1:ai5e1:b5:helloe", dictOf("a", Int(5), "b", Bytes("hello"))},
	{"d1:b5:hello1:ai5ee", dictOf("b", Bytes("hello"), "a", Int(5))},
	{"li5ei10ei15ei20e7:bencodee",
		List{Int(5), Int(10), Int(15), Int(20), Bytes("bencode")}},
	{"ldedee", List{NewDict(), NewDict()}},
	{"le", List{}},
	{"d1:rd6:\xd4/\xe2F\x00\x01dee1:t3:\x9a\x87\x011:v4:TR%=1:y1:re", dictOf(
		"r", dictOf("\xd4/\xe2F\x00\x01", NewDict()),
		"t", Bytes("\x9a\x87\x01"),
		"v", Bytes("TR%="),
		"y", Bytes("r"),
	)},
}

func TestRandomDecode(t *testing.T) {
	for _, test := range random_decode_tests {
		value, err := Decode([]byte(test.data))
		if !assert.NoError(t, err, test.data) {
			continue
		}
		assert.True(t, Equal(test.expected, value), "%q: got %#v", test.data, value)
	}
}

func TestDecodeIntegers(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 42, -42, 1 << 40, -(1 << 40), math.MaxInt64, math.MinInt64} {
		v, err := Decode([]byte("i" + strconv.FormatInt(n, 10) + "e"))
		require.NoError(t, err)
		i, err := AsInt(v)
		require.NoError(t, err)
		assert.EqualValues(t, n, i)
	}
}

func TestDecodeBinaryStrings(t *testing.T) {
	for _, b := range [][]byte{
		{},
		{0},
		{0, 0, 0},
		{0xff, 0x00, 0x7f, 0x80, '\n', ':', 'e'},
		bytes.Repeat([]byte{0xde, 0xad}, 1000),
	} {
		in := append([]byte(strconv.Itoa(len(b))+":"), b...)
		v, err := Decode(in)
		require.NoError(t, err)
		got, err := AsBytes(v)
		require.NoError(t, err)
		assert.Equal(t, b, []byte(got))
	}
}

func TestDecodeStringCopiesInput(t *testing.T) {
	in := []byte("4:spam")
	v, err := Decode(in)
	require.NoError(t, err)
	in[2] = 'S'
	assert.EqualValues(t, "spam", v.(Bytes).String())
}

func TestLoneE(t *testing.T) {
	_, err := Decode([]byte("e"))
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.EqualValues(t, 0, se.Offset)
	assert.Contains(t, se.Error(), "unrecognized node type")
}

func syntaxErrorOffset(t *testing.T, input string) (int64, string) {
	t.Helper()
	v, err := Decode([]byte(input))
	require.Nil(t, v, "%q", input)
	var se *SyntaxError
	require.ErrorAs(t, err, &se, "%q", input)
	return se.Offset, se.Error()
}

func TestDecodeSyntaxErrors(t *testing.T) {
	for _, tc := range []struct {
		input    string
		offset   int64
		contains string
	}{
		{"", 0, "expected value"},
		{"x", 0, "unrecognized node type"},
		{"5:ab", 4, "expected 5 bytes of string data, got 2: \"ab\""},
		{"5", 1, "':' terminating string length"},
		{"5x:hello", 1, "expected digit or ':' in string length, got 'x'"},
		{"1-:a", 1, "expected digit"},
		{"ie", 1, "expected digit in integer"},
		{"i-e", 2, "expected digit in integer"},
		{"i12", 3, "'e' terminating integer"},
		{"i1.5e", 2, "got '.'"},
		{"i--1e", 2, "got '-'"},
		{"i99999999999999999999e", 21, "value out of range"},
		{"i123456789012345678901234567890e", 21, "overflows int64"},
		{"l", 1, "terminating list"},
		{"li1e", 4, "terminating list"},
		{"d", 1, "terminating dictionary"},
		{"di1ei2ee", 1, "dictionary key must be a string, got integer"},
		{"dli1ee1:ae", 1, "dictionary key must be a string, got list"},
		{"d1:ae", 4, "expected value for dictionary key \"a\""},
		{"d1:rd6:\xd4/\xe2F\x00\x01e1:t3:\x9a\x87\x01e", 13, "expected value for dictionary key"},
		{"d1:a", 4, "value for dictionary key"},
		{"d1:ai1e1:ai2ee", 7, "duplicate dictionary key \"a\""},
		{"l5:abe", 6, "expected 5 bytes of string data, got 3"},
	} {
		offset, msg := syntaxErrorOffset(t, tc.input)
		assert.EqualValues(t, tc.offset, offset, "%q: %v", tc.input, msg)
		assert.Contains(t, msg, tc.contains, "%q", tc.input)
	}
}

func TestTruncatedIsUnexpectedEOF(t *testing.T) {
	for _, s := range []string{"5:ab", "i12", "l", "d1:a", "li1e3:ab"} {
		_, err := Decode([]byte(s))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "%q", s)
	}
}

func TestDecodeUnusedTrailingBytes(t *testing.T) {
	_, err := Decode([]byte("i42ee"))
	require.EqualValues(t, ErrUnusedTrailingBytes{1}, err)
	_, err = Decode([]byte("de\n"))
	var tb ErrUnusedTrailingBytes
	require.True(t, errors.As(err, &tb))
	assert.Equal(t, 1, tb.NumUnusedBytes)
}

func TestDecodeMaxStrLen(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte("10:0123456789")))
	d.MaxStrLen = 9
	_, err := d.Decode()
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.EqualValues(t, 0, se.Offset)
	assert.Contains(t, se.What, "exceeds maximum")
}

func TestDecodeHugeDeclaredLength(t *testing.T) {
	// Must fail on the missing data, not try to allocate the declared length.
	_, err := Decode([]byte("99999999:x"))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeMaxDepth(t *testing.T) {
	deep := bytes.Repeat([]byte("l"), DefaultDecodeMaxDepth+1)
	deep = append(deep, bytes.Repeat([]byte("e"), DefaultDecodeMaxDepth+1)...)
	_, err := Decode(deep)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.What, "nested deeper")

	ok := bytes.Repeat([]byte("l"), DefaultDecodeMaxDepth)
	ok = append(ok, bytes.Repeat([]byte("e"), DefaultDecodeMaxDepth)...)
	_, err = Decode(ok)
	assert.NoError(t, err)
}

func TestDecoderConsecutive(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte("i1ei2e")))
	v, err := d.Decode()
	require.NoError(t, err)
	require.EqualValues(t, Int(1), v)
	v, err = d.Decode()
	require.NoError(t, err)
	require.EqualValues(t, Int(2), v)
	_, err = d.Decode()
	require.Equal(t, io.EOF, err)
}

// A plain io.Reader that isn't a ByteScanner must not be read past the end of each value.
func TestDecoderConsecutiveDicts(t *testing.T) {
	bb := bytes.NewBufferString("d4:herp4:derped3:wat1:ke17:oh baby a triple!")
	d := NewDecoder(struct{ io.Reader }{bb})
	assert.EqualValues(t, 0, d.Offset)

	v, err := d.Decode()
	require.NoError(t, err)
	m, err := AsDict(v)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	s, _ := m.Text("herp")
	assert.Equal(t, "derp", s)
	assert.Equal(t, "d3:wat1:ke17:oh baby a triple!", bb.String())
	assert.EqualValues(t, 14, d.Offset)

	v, err = d.Decode()
	require.NoError(t, err)
	s, _ = v.(*Dict).Text("wat")
	assert.Equal(t, "k", s)
	assert.Equal(t, "17:oh baby a triple!", bb.String())
	assert.EqualValues(t, 24, d.Offset)

	v, err = d.Decode()
	require.NoError(t, err)
	assert.Equal(t, "oh baby a triple!", v.(Bytes).String())
	assert.EqualValues(t, 44, d.Offset)
}

func TestDecodeString(t *testing.T) {
	v, err := DecodeString("d4:spaml1:a1:bee")
	qt.Assert(t, qt.IsNil(err))
	l, ok := v.(*Dict).List("spam")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.HasLen(l, 2))

	// Characters up to 0xff map to one byte each.
	v, err = DecodeString("2:éÿ")
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.DeepEquals(v, Value(Bytes{0xe9, 0xff})))

	_, err = DecodeString("2:Āa")
	var se *SyntaxError
	qt.Assert(t, qt.ErrorAs(err, &se))
	qt.Check(t, qt.Equals(se.Offset, 2))
}

func TestDecodeDictPreservesOrder(t *testing.T) {
	v, err := Decode([]byte("d1:c0:1:a0:1:b0:e"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, v.(*Dict).Keys())
}

func TestRawDictValue(t *testing.T) {
	const info = "d6:lengthi0100e4:name1:ae"
	b := []byte("d8:announce3:url4:info" + info + "1:zi-0ee")
	raw, ok, err := RawDictValue(b, "info")
	require.NoError(t, err)
	require.True(t, ok)
	// Non-canonical integers are kept as written.
	assert.Equal(t, info, string(raw))
	raw, ok, err = RawDictValue(b, "z")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "i-0e", string(raw))

	_, ok, err = RawDictValue(b, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = RawDictValue([]byte("li1ee"), "info")
	var se *SyntaxError
	qt.Check(t, qt.ErrorAs(err, &se))
	_, _, err = RawDictValue([]byte("d4:info"), "info")
	qt.Check(t, qt.ErrorIs(err, io.ErrUnexpectedEOF))
}
