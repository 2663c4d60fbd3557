// Package codec renders records, such as chat transcripts, in a chosen format.
package codec

type Codec interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}
