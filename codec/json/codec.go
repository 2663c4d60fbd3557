package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/ezraisw/scenecall/codec"
)

var errTrailingData = errors.New("json: trailing data after value")

// jsonCodec writes one JSON value per line. HTML escaping is off so chat text
// such as "<3" stays readable in transcripts.
type jsonCodec struct {
}

func NewCodec() codec.Codec {
	return &jsonCodec{}
}

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes exactly one value. Anything but whitespace after it is an error.
func (c jsonCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}
