package serial

type (
	Encodable interface {
		// Append the value's fields to b in wire order.
		EncodeTo(b *Buffer)
	}

	Decodable interface {
		// Read the value's fields from r in wire order.
		DecodeFrom(r *Reader) error
	}
)

// Serialize encodes v into a fresh byte slice.
func Serialize(v Encodable) []byte {
	b := NewBuffer(64)
	v.EncodeTo(b)
	return b.Bytes()
}

// Deserialize decodes data into v. All of data must be consumed.
func Deserialize(data []byte, v Decodable) error {
	r := NewReader(data)
	if err := v.DecodeFrom(r); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return ErrTrailingData
	}
	return nil
}
