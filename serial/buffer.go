package serial

import (
	"encoding/binary"
	"math"
)

// Widths of the fixed-size encodings.
const (
	U8Size  = 1
	U16Size = 2
	U32Size = 4
	U64Size = 8
)

const (
	varIntTag16 = 0xfd
	varIntTag32 = 0xfe
	varIntTag64 = 0xff
)

// Buffer is an append-only argument buffer.
//
// A Buffer must not be shared between goroutines while it is being written.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty buffer with room for capacity bytes.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Bytes returns the encoded bytes. The slice aliases the buffer until the next write.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of encoded bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset empties the buffer and keeps its capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

func (b *Buffer) WriteU8(v uint8) {
	b.data = AppendU8(b.data, v)
}

func (b *Buffer) WriteU16(v uint16) {
	b.data = AppendU16(b.data, v)
}

func (b *Buffer) WriteU32(v uint32) {
	b.data = AppendU32(b.data, v)
}

// WriteU64 appends v as exactly 8 little-endian bytes.
func (b *Buffer) WriteU64(v uint64) {
	b.data = AppendU64(b.data, v)
}

func (b *Buffer) WriteBool(v bool) {
	b.data = AppendBool(b.data, v)
}

func (b *Buffer) WriteF32(v float32) {
	b.data = AppendF32(b.data, v)
}

func (b *Buffer) WriteVarInt(v uint64) {
	b.data = AppendVarInt(b.data, v)
}

// EncodeStr appends a VarInt length followed by the bytes of s.
func (b *Buffer) EncodeStr(s string) {
	b.data = AppendStr(b.data, s)
}

// EncodeBytes appends a VarInt length followed by p.
func (b *Buffer) EncodeBytes(p []byte) {
	b.data = AppendBytes(b.data, p)
}

// WriteRaw appends p verbatim, without a length prefix.
func (b *Buffer) WriteRaw(p []byte) {
	b.data = append(b.data, p...)
}

func AppendU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func AppendU16(dst []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, v)
}

func AppendU32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func AppendU64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func AppendF32(dst []byte, v float32) []byte {
	return AppendU32(dst, math.Float32bits(v))
}

// AppendVarInt appends v using the shortest VarInt form.
func AppendVarInt(dst []byte, v uint64) []byte {
	switch {
	case v < varIntTag16:
		return append(dst, byte(v))
	case v <= math.MaxUint16:
		return AppendU16(append(dst, varIntTag16), uint16(v))
	case v <= math.MaxUint32:
		return AppendU32(append(dst, varIntTag32), uint32(v))
	default:
		return AppendU64(append(dst, varIntTag64), v)
	}
}

func AppendStr(dst []byte, s string) []byte {
	dst = AppendVarInt(dst, uint64(len(s)))
	return append(dst, s...)
}

func AppendBytes(dst []byte, p []byte) []byte {
	dst = AppendVarInt(dst, uint64(len(p)))
	return append(dst, p...)
}

func AppendRaw(dst []byte, p []byte) []byte {
	return append(dst, p...)
}

// VarIntSize returns the encoded width of v.
func VarIntSize(v uint64) int {
	switch {
	case v < varIntTag16:
		return 1
	case v <= math.MaxUint16:
		return 1 + U16Size
	case v <= math.MaxUint32:
		return 1 + U32Size
	default:
		return 1 + U64Size
	}
}

// StrSize returns the encoded width of s including its length prefix.
func StrSize(s string) int {
	return VarIntSize(uint64(len(s))) + len(s)
}

// U64FromInt converts a signed value for a u64 field.
// Negative input is a caller error and yields ErrOutOfRange.
func U64FromInt(v int64) (uint64, error) {
	if v < 0 {
		return 0, ErrOutOfRange
	}
	return uint64(v), nil
}
