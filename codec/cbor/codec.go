package cbor

import (
	"fmt"

	"github.com/ezraisw/scenecall/codec"
	"github.com/fxamacker/cbor/v2"
)

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCodec encodes deterministically: canonical key order, no indefinite lengths.
func NewCodec() codec.Codec {
	enc, err := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	dec, err := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}

	return &cborCodec{enc: enc, dec: dec}
}

func (c cborCodec) Marshal(v interface{}) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c cborCodec) Unmarshal(data []byte, v interface{}) error {
	return c.dec.Unmarshal(data, v)
}
