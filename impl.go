package scenecall

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ezraisw/scenecall/adapter"
	"github.com/ezraisw/scenecall/logger"
	"github.com/ezraisw/scenecall/serial"
	"github.com/karlseguin/ccache/v2"
)

type (
	clientDeps struct {
		adapter adapter.Adapter
		cache   *ccache.Cache
		logger  logger.Logger
	}

	defaultNode struct {
		d       clientDeps
		path    string
		ttl     time.Duration
		ctx     context.Context
		maxArgs int
	}

	defaultClient struct {
		adapter adapter.Adapter
		cache   *ccache.Cache
		logger  logger.Logger
	}
)

const (
	TTLDefault = time.Duration(10) * time.Minute

	cacheMaxSize = 1024
)

func NewClient(adapter adapter.Adapter, logger logger.Logger) Client {
	return NewClientWithCache(adapter, logger, ccache.Configure().MaxSize(cacheMaxSize))
}

// NewClientWithCache is NewClient with a custom node id cache configuration.
func NewClientWithCache(adapter adapter.Adapter, logger logger.Logger, cacheCfg *ccache.Configuration) Client {
	return &defaultClient{
		adapter: adapter,
		cache:   ccache.New(cacheCfg),
		logger:  logger,
	}
}

func (c defaultClient) Hello(ctx context.Context) error {
	reply, err := c.adapter.Request(ctx, adapter.CommandHello, nil)
	if err != nil {
		return newCallError(categoryCall, "/", "error while greeting scene", err)
	}

	var greeting string
	if err := decodeAll(reply, func(r *serial.Reader) (err error) {
		greeting, err = r.DecodeStr()
		return err
	}); err != nil {
		return newCallError(categoryDecode, "/", "error while decoding greeting", err)
	}
	if greeting != "hello" {
		return newCallError(categoryDecode, "/", "unexpected greeting", fmt.Errorf("got %q", greeting))
	}

	c.logger.Debug("scene answered hello")
	return nil
}

func (c defaultClient) On(path string) Node {
	return &defaultNode{
		d:       clientDeps(c),
		path:    path,
		ttl:     TTLDefault,
		ctx:     context.Background(),
		maxArgs: adapter.DefaultMaxArgs,
	}
}

func (n *defaultNode) SetTTL(ttl time.Duration) Node {
	if ttl < 0 {
		ttl = 0
	}
	n.ttl = ttl
	return n
}

// SetContext returns a copy bound to ctx. The receiver is left unchanged.
func (n *defaultNode) SetContext(ctx context.Context) Node {
	c := *n
	c.ctx = ctx
	return &c
}

func (n *defaultNode) SetMaxArgs(size int) Node {
	if size < 0 {
		size = 0
	}
	n.maxArgs = size
	return n
}

func (n defaultNode) Path() string {
	return n.path
}

func (n defaultNode) Invalidate() {
	n.d.cache.Delete(n.path)
}

func (n defaultNode) ID() (uint32, error) {
	id, _, err := n.resolve()
	return id, err
}

// resolve returns the node id and whether it came from the cache.
func (n defaultNode) resolve() (uint32, bool, error) {
	if item := n.d.cache.Get(n.path); item != nil && !item.Expired() {
		// Ignore casting errors.
		return item.Value().(uint32), true, nil
	}

	n.d.logger.Debug("lookup node", n.path)

	reply, err := n.d.adapter.Request(n.ctx, adapter.CommandLookupNodeID, serial.AppendStr(nil, n.path))
	if err != nil {
		return 0, false, newCallError(categoryLookup, n.path, "error while looking up node", err)
	}

	var id uint32
	if err := decodeAll(reply, func(r *serial.Reader) (err error) {
		id, err = r.ReadU32()
		return err
	}); err != nil {
		return 0, false, newCallError(categoryDecode, n.path, "error while decoding node id", err)
	}

	// A zero TTL disables caching.
	if n.ttl > 0 {
		n.d.cache.Set(n.path, id, n.ttl)
	}
	return id, false, nil
}

func (n defaultNode) Methods() ([]string, error) {
	id, err := n.ID()
	if err != nil {
		return nil, err
	}

	reply, err := n.d.adapter.Request(n.ctx, adapter.CommandGetMethods, serial.AppendU32(nil, id))
	if err != nil {
		return nil, newCallError(categoryCall, n.path, "error while listing methods", err)
	}

	var names []string
	if err := decodeAll(reply, func(r *serial.Reader) error {
		count, err := r.ReadVarInt()
		if err != nil {
			return err
		}
		// Every name takes at least one byte.
		if count > uint64(r.Remaining()) {
			return serial.ErrTruncated
		}
		names = make([]string, 0, count)
		for i := uint64(0); i < count; i++ {
			name, err := r.DecodeStr()
			if err != nil {
				return err
			}
			names = append(names, name)
		}
		return nil
	}); err != nil {
		return nil, newCallError(categoryDecode, n.path, "error while decoding methods", err)
	}

	return names, nil
}

func (n defaultNode) Call(method string, args []byte) ([]byte, error) {
	if len(args) > n.maxArgs {
		return nil, newCallError(categoryCall, n.path, "error while calling "+method,
			fmt.Errorf("%w: %d > %d", adapter.ErrPayloadTooLarge, len(args), n.maxArgs))
	}

	id, cached, err := n.resolve()
	if err != nil {
		return nil, err
	}

	result, err := n.call(id, method, args)
	if err != nil && cached && isStaleNode(err) {
		// The cached id went stale; look it up once more.
		n.d.logger.Debug("stale node id", n.path, id)
		n.Invalidate()

		id, _, err = n.resolve()
		if err != nil {
			return nil, err
		}
		result, err = n.call(id, method, args)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (n defaultNode) call(id uint32, method string, args []byte) ([]byte, error) {
	b := serial.NewBuffer(serial.U32Size + serial.StrSize(method) + serial.VarIntSize(uint64(len(args))) + len(args))
	b.WriteU32(id)
	b.EncodeStr(method)
	b.EncodeBytes(args)

	n.d.logger.Debug("call method", n.path, method, len(args))

	reply, err := n.d.adapter.Request(n.ctx, adapter.CommandCallMethod, b.Bytes())
	if err != nil {
		return nil, newCallError(categoryCall, n.path, "error while calling "+method, err)
	}

	var (
		code   uint8
		result []byte
	)
	if err := decodeAll(reply, func(r *serial.Reader) (err error) {
		if code, err = r.ReadU8(); err != nil {
			return err
		}
		result, err = r.DecodeBytes()
		return err
	}); err != nil {
		return nil, newCallError(categoryDecode, n.path, "error while decoding result of "+method, err)
	}

	if code != uint8(adapter.CodeOK) {
		return nil, &MethodError{Path: n.path, Method: method, Code: code}
	}

	return result, nil
}

// isStaleNode reports whether the scene refused the CallMethod request itself
// because the node id is unknown. A method that ran and failed never counts.
func isStaleNode(err error) bool {
	var methodErr *MethodError
	if errors.As(err, &methodErr) {
		return false
	}
	return errors.Is(err, adapter.ErrNodeNotFound)
}

func decodeAll(data []byte, fn func(r *serial.Reader) error) error {
	r := serial.NewReader(data)
	if err := fn(r); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return serial.ErrTrailingData
	}
	return nil
}
