package serial

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Reader decodes values from a buffer in the order they were written.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, ErrTruncated
	}
	p := r.data[r.off : r.off+n]
	r.off += n
	return p, nil
}

func (r *Reader) ReadU8() (uint8, error) {
	p, err := r.next(U8Size)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (r *Reader) ReadU16() (uint16, error) {
	p, err := r.next(U16Size)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	p, err := r.next(U32Size)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	p, err := r.next(U64Size)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadVarInt decodes a VarInt and rejects encodings that are not minimal.
func (r *Reader) ReadVarInt() (uint64, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return 0, err
	}

	switch tag {
	case varIntTag16:
		v, err := r.ReadU16()
		if err != nil {
			return 0, err
		}
		if v < varIntTag16 {
			return 0, ErrNonCanonical
		}
		return uint64(v), nil
	case varIntTag32:
		v, err := r.ReadU32()
		if err != nil {
			return 0, err
		}
		if v <= math.MaxUint16 {
			return 0, ErrNonCanonical
		}
		return uint64(v), nil
	case varIntTag64:
		v, err := r.ReadU64()
		if err != nil {
			return 0, err
		}
		if v <= math.MaxUint32 {
			return 0, ErrNonCanonical
		}
		return v, nil
	default:
		return uint64(tag), nil
	}
}

func (r *Reader) readLen() (int, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return 0, err
	}
	// A length past the end can never be satisfied.
	if n > uint64(r.Remaining()) {
		return 0, ErrTruncated
	}
	return int(n), nil
}

// DecodeStr reads a VarInt-prefixed UTF-8 string.
func (r *Reader) DecodeStr() (string, error) {
	n, err := r.readLen()
	if err != nil {
		return "", err
	}
	p, err := r.next(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", ErrInvalidUTF8
	}
	return string(p), nil
}

// DecodeBytes reads a VarInt-prefixed byte vector. The result is a copy.
func (r *Reader) DecodeBytes() ([]byte, error) {
	n, err := r.readLen()
	if err != nil {
		return nil, err
	}
	return r.ReadRaw(n)
}

// ReadRaw reads exactly n bytes. The result is a copy.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	p, err := r.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// ReadInto fills dst from the next len(dst) bytes.
func (r *Reader) ReadInto(dst []byte) error {
	p, err := r.next(len(dst))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}
