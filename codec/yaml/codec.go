package yaml

import (
	"github.com/ezraisw/scenecall/codec"
	"gopkg.in/yaml.v3"
)

type yamlCodec struct {
}

func NewCodec() codec.Codec {
	return &yamlCodec{}
}

func (c yamlCodec) Marshal(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

func (c yamlCodec) Unmarshal(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}
