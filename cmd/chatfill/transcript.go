package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/ezraisw/scenecall/chat"
	"github.com/ezraisw/scenecall/codec"
	"github.com/ezraisw/scenecall/codec/cbor"
	"github.com/ezraisw/scenecall/codec/json"
	"github.com/ezraisw/scenecall/codec/msgpack"
	"github.com/ezraisw/scenecall/codec/yaml"
)

type record struct {
	Index     int    `json:"index" msgpack:"index" cbor:"index" yaml:"index"`
	Path      string `json:"path" msgpack:"path" cbor:"path" yaml:"path"`
	Method    string `json:"method" msgpack:"method" cbor:"method" yaml:"method"`
	Timestamp uint64 `json:"timestamp" msgpack:"timestamp" cbor:"timestamp" yaml:"timestamp"`
	Time      string `json:"time" msgpack:"time" cbor:"time" yaml:"time"`
	Nonce     string `json:"nonce" msgpack:"nonce" cbor:"nonce" yaml:"nonce"`
	Nick      string `json:"nick" msgpack:"nick" cbor:"nick" yaml:"nick"`
	Text      string `json:"text" msgpack:"text" cbor:"text" yaml:"text"`
	Args      string `json:"args" msgpack:"args" cbor:"args" yaml:"args"`
}

type transcript struct {
	w      io.Writer
	codec  codec.Codec
	format string
}

func newTranscript(w io.Writer, format string) (*transcript, error) {
	var c codec.Codec
	switch format {
	case "json":
		c = json.NewCodec()
	case "msgpack":
		c = msgpack.NewCodec()
	case "cbor":
		c = cbor.NewCodec()
	case "yaml":
		c = yaml.NewCodec()
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return &transcript{w: w, codec: c, format: format}, nil
}

func newRecord(i int, cfg config, l chat.Line) record {
	return record{
		Index:     i,
		Path:      cfg.Path,
		Method:    cfg.Method,
		Timestamp: l.Timestamp,
		Time:      l.Time().Format(time.RFC3339),
		Nonce:     l.Nonce.String(),
		Nick:      l.Nick,
		Text:      l.Text,
		Args:      hex.EncodeToString(l.Encode()),
	}
}

// write emits one record. The JSON codec already ends each record with a
// newline, YAML records are separate documents and binary formats are concatenated.
func (t *transcript) write(r record) error {
	data, err := t.codec.Marshal(r)
	if err != nil {
		return err
	}

	if t.format == "yaml" {
		data = append([]byte("---\n"), data...)
	}

	_, err = t.w.Write(data)
	return err
}
