package adapter

import "context"

// Adapter carries a single request to a scene and returns its reply.
//
// The payload is already encoded. A reply with a non-zero error code is
// returned as an error, see CodeError.
type Adapter interface {
	Request(ctx context.Context, cmd Command, payload []byte) ([]byte, error)
}
