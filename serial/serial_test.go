package serial_test

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/ezraisw/scenecall/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteU64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xfc, 0xfd, math.MaxUint32, math.MaxUint32 + 1, 1732944640000, math.MaxUint64}

	for _, v := range values {
		t.Run(fmt.Sprintf("%d", v), func(t *testing.T) {
			b := serial.NewBuffer(0)
			b.WriteU64(v)
			require.Equal(t, serial.U64Size, b.Len())

			got, err := serial.NewReader(b.Bytes()).ReadU64()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestWriteU64IsLittleEndian(t *testing.T) {
	b := serial.NewBuffer(8)
	b.WriteU64(0x0102030405060708)
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, b.Bytes())
}

func TestEncodeStrRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hhi12",
		"hello bob-0",
		"héllo wörld",
		"日本語のテキスト",
		"🙂🙃",
		string(bytes.Repeat([]byte("x"), 0xfc)),
		string(bytes.Repeat([]byte("y"), 0xfd)),
		string(bytes.Repeat([]byte("z"), 0x10000)),
	}

	for _, s := range cases {
		t.Run(fmt.Sprintf("len=%d", len(s)), func(t *testing.T) {
			b := serial.NewBuffer(0)
			b.EncodeStr(s)
			require.Equal(t, serial.StrSize(s), b.Len())

			r := serial.NewReader(b.Bytes())
			got, err := r.DecodeStr()
			require.NoError(t, err)
			assert.Equal(t, s, got)
			assert.Equal(t, serial.VarIntSize(uint64(len(s)))+len(s), r.Offset())
			assert.Zero(t, r.Remaining())
		})
	}
}

func TestVarIntBoundaries(t *testing.T) {
	cases := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0x00}},
		{0xfc, []byte{0xfc}},
		{0xfd, []byte{0xfd, 0xfd, 0x00}},
		{0xffff, []byte{0xfd, 0xff, 0xff}},
		{0x10000, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
		{0xffffffff, []byte{0xfe, 0xff, 0xff, 0xff, 0xff}},
		{0x100000000, []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%#x", c.value), func(t *testing.T) {
			got := serial.AppendVarInt(nil, c.value)
			assert.Equal(t, c.expected, got)
			assert.Equal(t, len(c.expected), serial.VarIntSize(c.value))

			v, err := serial.NewReader(got).ReadVarInt()
			require.NoError(t, err)
			assert.Equal(t, c.value, v)
		})
	}
}

func TestVarIntRejectsNonCanonical(t *testing.T) {
	cases := [][]byte{
		{0xfd, 0x05, 0x00},
		{0xfe, 0xff, 0xff, 0x00, 0x00},
		{0xff, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	}

	for i, data := range cases {
		t.Run(fmt.Sprintf("Test Case #%d", i), func(t *testing.T) {
			_, err := serial.NewReader(data).ReadVarInt()
			assert.ErrorIs(t, err, serial.ErrNonCanonical)
		})
	}
}

func TestConcatenationDeterminism(t *testing.T) {
	seq := serial.NewBuffer(0)
	seq.WriteU64(42)
	seq.EncodeStr("nick")
	seq.WriteRaw([]byte{1, 2, 3})

	var independent []byte
	independent = append(independent, serial.AppendU64(nil, 42)...)
	independent = append(independent, serial.AppendStr(nil, "nick")...)
	independent = append(independent, serial.AppendRaw(nil, []byte{1, 2, 3})...)

	assert.Equal(t, independent, seq.Bytes())
}

func TestEndToEndLayout(t *testing.T) {
	const ts = uint64(1732944640000)
	var nonce [32]byte

	b := serial.NewBuffer(0)
	b.WriteU64(ts)
	b.WriteRaw(nonce[:])
	b.EncodeStr("hhi12")
	b.EncodeStr("hello bob-0")

	data := b.Bytes()
	require.Len(t, data, 8+32+(1+5)+(1+11))

	r := serial.NewReader(data)
	gotTS, err := r.ReadU64()
	require.NoError(t, err)
	assert.Equal(t, ts, gotTS)
	assert.Equal(t, 8, r.Offset())

	gotNonce, err := r.ReadRaw(32)
	require.NoError(t, err)
	assert.Equal(t, nonce[:], gotNonce)
	assert.Equal(t, 40, r.Offset())

	assert.Equal(t, byte(5), data[40])
	assert.Equal(t, "hhi12", string(data[41:46]))
	assert.Equal(t, byte(11), data[46])
	assert.Equal(t, "hello bob-0", string(data[47:58]))
}

func TestReaderTruncated(t *testing.T) {
	_, err := serial.NewReader([]byte{1, 2, 3}).ReadU64()
	assert.ErrorIs(t, err, serial.ErrTruncated)

	_, err = serial.NewReader([]byte{5, 'a', 'b'}).DecodeStr()
	assert.ErrorIs(t, err, serial.ErrTruncated)

	_, err = serial.NewReader([]byte{0xfd, 0x01}).ReadVarInt()
	assert.ErrorIs(t, err, serial.ErrTruncated)

	_, err = serial.NewReader(nil).ReadRaw(1)
	assert.ErrorIs(t, err, serial.ErrTruncated)
}

func TestReaderInvalidValues(t *testing.T) {
	_, err := serial.NewReader([]byte{2}).ReadBool()
	assert.ErrorIs(t, err, serial.ErrInvalidBool)

	_, err = serial.NewReader([]byte{2, 0xff, 0xfe}).DecodeStr()
	assert.ErrorIs(t, err, serial.ErrInvalidUTF8)
}

func TestPrimitivesRoundTrip(t *testing.T) {
	b := serial.NewBuffer(0)
	b.WriteU8(7)
	b.WriteU16(0xbeef)
	b.WriteU32(0xdeadbeef)
	b.WriteBool(true)
	b.WriteF32(0.407)
	b.EncodeBytes([]byte{9, 8, 7})

	r := serial.NewReader(b.Bytes())

	u8, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), u8)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), u16)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	ok, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, ok)

	f, err := r.ReadF32()
	require.NoError(t, err)
	assert.Equal(t, float32(0.407), f)

	p, err := r.DecodeBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, p)
	assert.Zero(t, r.Remaining())
}

func TestBufferReset(t *testing.T) {
	b := serial.NewBuffer(16)
	b.WriteU64(1)
	b.Reset()
	assert.Zero(t, b.Len())
	b.WriteU8(3)
	assert.Equal(t, []byte{3}, b.Bytes())
}

func TestU64FromInt(t *testing.T) {
	v, err := serial.U64FromInt(1732944640000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1732944640000), v)

	_, err = serial.U64FromInt(-1)
	assert.ErrorIs(t, err, serial.ErrOutOfRange)
}

type pair struct {
	id   uint32
	name string
}

func (p pair) EncodeTo(b *serial.Buffer) {
	b.WriteU32(p.id)
	b.EncodeStr(p.name)
}

func (p *pair) DecodeFrom(r *serial.Reader) (err error) {
	if p.id, err = r.ReadU32(); err != nil {
		return err
	}
	p.name, err = r.DecodeStr()
	return err
}

func TestSerializeDeserialize(t *testing.T) {
	data := serial.Serialize(pair{id: 3, name: "chatty"})

	var got pair
	require.NoError(t, serial.Deserialize(data, &got))
	assert.Equal(t, pair{id: 3, name: "chatty"}, got)

	err := serial.Deserialize(append(data, 0), &got)
	assert.ErrorIs(t, err, serial.ErrTrailingData)
}
