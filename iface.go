// Package scenecall invokes methods on the nodes of a UI scene graph.
//
// Arguments are encoded by the caller with package serial and travel through
// an adapter.Adapter. Node paths are resolved to ids once and cached.
package scenecall

import (
	"context"
	"time"
)

type (
	Client interface {
		// Check that the scene is answering.
		Hello(ctx context.Context) error

		// Address a scene node by its path, e.g. "/window/view/chatty".
		On(path string) Node
	}

	Node interface {
		// Set how long the resolved node id is reused before looking it up again.
		SetTTL(ttl time.Duration) Node

		// Return a copy of the node that uses ctx for lookups and calls.
		SetContext(context.Context) Node

		// Set the maximum size of encoded arguments accepted by Call.
		SetMaxArgs(n int) Node

		// Path of the node as given to On.
		Path() string

		// Resolve the node id, from cache when possible.
		ID() (uint32, error)

		// List the methods the node exposes.
		Methods() ([]string, error)

		// Invoke a method with already encoded arguments and return its encoded result.
		Call(method string, args []byte) ([]byte, error)

		// Forget the cached node id.
		Invalidate()
	}

	// MethodError is a non-zero result code returned by a method.
	MethodError struct {
		Path   string
		Method string
		Code   uint8
	}
)
