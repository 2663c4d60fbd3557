package msgpack

import (
	"github.com/ezraisw/scenecall/codec"
	"github.com/vmihailenco/msgpack/v5"
)

type msgpackCodec struct {
}

func NewCodec() codec.Codec {
	return &msgpackCodec{}
}

func (c msgpackCodec) Marshal(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c msgpackCodec) Unmarshal(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
