package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ezraisw/scenecall/adapter"
	"github.com/ezraisw/scenecall/adapter/util/mutex"
	mutexsync "github.com/ezraisw/scenecall/adapter/util/mutex/sync"
	"github.com/ezraisw/scenecall/serial"
)

// Method handles one call. args is the caller's encoded argument buffer.
type Method func(ctx context.Context, args []byte) ([]byte, error)

type node struct {
	id      uint32
	path    string
	methods map[string]Method
}

// Adapter is an in-process scene of named nodes. It is safe for concurrent use.
type Adapter struct {
	mu     sync.RWMutex
	nodes  map[string]*node
	byID   map[uint32]*node
	nextID uint32
	locker mutex.Locker
}

// NewAdapter returns a scene that answers requests in-process.
func NewAdapter() *Adapter {
	return &Adapter{
		nodes:  make(map[string]*node),
		byID:   make(map[uint32]*node),
		locker: mutexsync.NewLocker(),
	}
}

// AddNode registers a node at path and returns its id.
// Registering the same path again adds methods to the existing node.
func (a *Adapter) AddNode(path string, methods map[string]Method) uint32 {
	path = normalizePath(path)

	a.mu.Lock()
	defer a.mu.Unlock()

	n, ok := a.nodes[path]
	if !ok {
		a.nextID++
		n = &node{id: a.nextID, path: path, methods: make(map[string]Method)}
		a.nodes[path] = n
		a.byID[n.id] = n
	}
	for name, m := range methods {
		n.methods[name] = m
	}
	return n.id
}

// RemoveNode drops the node at path. Its id is never reused.
func (a *Adapter) RemoveNode(path string) {
	path = normalizePath(path)

	a.mu.Lock()
	defer a.mu.Unlock()

	if n, ok := a.nodes[path]; ok {
		delete(a.byID, n.id)
		delete(a.nodes, path)
	}
}

func (a *Adapter) Request(ctx context.Context, cmd adapter.Command, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch cmd {
	case adapter.CommandHello:
		if len(payload) != 0 {
			return nil, adapter.ErrorFromCode(adapter.CodeInvalidRequest)
		}
		return serial.AppendStr(nil, "hello"), nil
	case adapter.CommandLookupNodeID:
		return a.lookupNodeID(payload)
	case adapter.CommandGetMethods:
		return a.getMethods(payload)
	case adapter.CommandCallMethod:
		return a.callMethod(ctx, payload)
	default:
		return nil, adapter.ErrorFromCode(adapter.CodeUnknownCommand)
	}
}

func (a *Adapter) lookupNodeID(payload []byte) ([]byte, error) {
	r := serial.NewReader(payload)
	path, err := r.DecodeStr()
	if err != nil || r.Remaining() != 0 {
		return nil, adapter.ErrorFromCode(adapter.CodeInvalidRequest)
	}

	a.mu.RLock()
	n, ok := a.nodes[normalizePath(path)]
	a.mu.RUnlock()
	if !ok {
		return nil, adapter.ErrorFromCode(adapter.CodeNodeNotFound)
	}

	return serial.AppendU32(nil, n.id), nil
}

func (a *Adapter) getMethods(payload []byte) ([]byte, error) {
	r := serial.NewReader(payload)
	id, err := r.ReadU32()
	if err != nil || r.Remaining() != 0 {
		return nil, adapter.ErrorFromCode(adapter.CodeInvalidRequest)
	}

	a.mu.RLock()
	n, ok := a.byID[id]
	var names []string
	if ok {
		names = make([]string, 0, len(n.methods))
		for name := range n.methods {
			names = append(names, name)
		}
	}
	a.mu.RUnlock()
	if !ok {
		return nil, adapter.ErrorFromCode(adapter.CodeNodeNotFound)
	}

	sort.Strings(names)
	b := serial.NewBuffer(0)
	b.WriteVarInt(uint64(len(names)))
	for _, name := range names {
		b.EncodeStr(name)
	}
	return b.Bytes(), nil
}

func (a *Adapter) callMethod(ctx context.Context, payload []byte) ([]byte, error) {
	r := serial.NewReader(payload)
	id, err := r.ReadU32()
	if err != nil {
		return nil, adapter.ErrorFromCode(adapter.CodeInvalidRequest)
	}
	name, err := r.DecodeStr()
	if err != nil {
		return nil, adapter.ErrorFromCode(adapter.CodeInvalidRequest)
	}
	args, err := r.DecodeBytes()
	if err != nil || r.Remaining() != 0 {
		return nil, adapter.ErrorFromCode(adapter.CodeInvalidRequest)
	}

	a.mu.RLock()
	n, ok := a.byID[id]
	var method Method
	if ok {
		method = n.methods[name]
	}
	a.mu.RUnlock()
	if !ok {
		return nil, adapter.ErrorFromCode(adapter.CodeNodeNotFound)
	}
	if method == nil {
		return nil, adapter.ErrorFromCode(adapter.CodeMethodNotFound)
	}

	lock, err := a.locker.Obtain(ctx, n.path)
	if err != nil {
		return nil, err
	}
	defer lock.Release(ctx)

	result, err := method(ctx, args)

	// Method outcomes travel in-band: [code:u8][result:bytes].
	reply := serial.NewBuffer(1 + serial.VarIntSize(uint64(len(result))) + len(result))
	if err != nil {
		reply.WriteU8(uint8(adapter.CodeFromError(err)))
		reply.EncodeBytes(nil)
		return reply.Bytes(), nil
	}
	reply.WriteU8(uint8(adapter.CodeOK))
	reply.EncodeBytes(result)
	return reply.Bytes(), nil
}

func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

var _ adapter.Adapter = (*Adapter)(nil)
