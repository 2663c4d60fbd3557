// Package chat builds the argument tuple of a chat view's insert_line method.
//
// A line is encoded as
//
//	timestamp  u64, unix milliseconds
//	nonce      32 raw bytes
//	nick       string
//	text       string
package chat

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/ezraisw/scenecall/serial"
)

const NonceSize = 32

// Nonce makes otherwise identical lines distinct. It is not a secret.
type Nonce [NonceSize]byte

func (n Nonce) String() string {
	return hex.EncodeToString(n[:])
}

// NewNonce reads NonceSize bytes from src.
func NewNonce(src io.Reader) (Nonce, error) {
	var n Nonce
	if _, err := io.ReadFull(src, n[:]); err != nil {
		return Nonce{}, fmt.Errorf("chat: read nonce: %w", err)
	}
	return n, nil
}

type Line struct {
	Timestamp uint64
	Nonce     Nonce
	Nick      string
	Text      string
}

// Timestamp converts t to unix milliseconds. Times before the epoch are rejected.
func Timestamp(t time.Time) (uint64, error) {
	ms, err := serial.U64FromInt(t.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("chat: timestamp %s: %w", t.Format(time.RFC3339), err)
	}
	return ms, nil
}

// Time returns the line's timestamp as a time.Time in UTC.
func (l Line) Time() time.Time {
	return time.UnixMilli(int64(l.Timestamp)).UTC()
}

// Size returns the encoded width of the line.
func (l Line) Size() int {
	return serial.U64Size + NonceSize + serial.StrSize(l.Nick) + serial.StrSize(l.Text)
}

func (l Line) EncodeTo(b *serial.Buffer) {
	b.WriteU64(l.Timestamp)
	b.WriteRaw(l.Nonce[:])
	b.EncodeStr(l.Nick)
	b.EncodeStr(l.Text)
}

func (l *Line) DecodeFrom(r *serial.Reader) (err error) {
	if l.Timestamp, err = r.ReadU64(); err != nil {
		return err
	}
	if err = r.ReadInto(l.Nonce[:]); err != nil {
		return err
	}
	if l.Nick, err = r.DecodeStr(); err != nil {
		return err
	}
	l.Text, err = r.DecodeStr()
	return err
}

// Encode returns the insert_line argument buffer for l.
func (l Line) Encode() []byte {
	b := serial.NewBuffer(l.Size())
	l.EncodeTo(b)
	return b.Bytes()
}

// DecodeLine parses an insert_line argument buffer.
func DecodeLine(data []byte) (Line, error) {
	var l Line
	if err := serial.Deserialize(data, &l); err != nil {
		return Line{}, err
	}
	return l, nil
}
