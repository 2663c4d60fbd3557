// Package serial encodes method-call arguments into a flat positional buffer.
//
// The format carries no schema. Sender and receiver must agree on field order
// and type. All fixed-width integers are little-endian. Strings and byte
// vectors are prefixed with a VarInt length:
//
//	value < 0xfd          1 byte
//	value <= 0xffff       0xfd + u16
//	value <= 0xffffffff   0xfe + u32
//	otherwise             0xff + u64
//
// Raw blobs are appended without a prefix; their size is fixed by the protocol.
package serial
