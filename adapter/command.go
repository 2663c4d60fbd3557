package adapter

import "fmt"

// Command identifies a request to the scene.
type Command uint8

const (
	CommandHello        Command = 0
	CommandLookupNodeID Command = 12
	CommandGetMethods   Command = 20
	CommandCallMethod   Command = 22
)

// DefaultMaxArgs bounds the encoded arguments of a single method call.
const DefaultMaxArgs = 1 << 20

func (c Command) String() string {
	switch c {
	case CommandHello:
		return "Hello"
	case CommandLookupNodeID:
		return "LookupNodeID"
	case CommandGetMethods:
		return "GetMethods"
	case CommandCallMethod:
		return "CallMethod"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}
