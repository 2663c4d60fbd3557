package scenecall_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ezraisw/scenecall"
	"github.com/ezraisw/scenecall/adapter"
	"github.com/ezraisw/scenecall/adapter/memory"
	"github.com/ezraisw/scenecall/logger"
	"github.com/ezraisw/scenecall/logger/std"
	"github.com/ezraisw/scenecall/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var errMock = errors.New("mock error")

const chattyPath = "/window/view/chatty"

type proxiedAdapter struct {
	adapter adapter.Adapter

	requests        map[adapter.Command]int
	requestOverride func(context.Context, adapter.Command, []byte) ([]byte, error)
}

func (a *proxiedAdapter) Request(ctx context.Context, cmd adapter.Command, payload []byte) ([]byte, error) {
	a.requests[cmd]++

	if a.requestOverride != nil {
		return a.requestOverride(ctx, cmd, payload)
	}

	return a.adapter.Request(ctx, cmd, payload)
}

type tCase struct {
	method         string
	args           []byte
	expectedErr    error
	expectedResult []byte
}

type subtestRunner interface {
	Run(name string, subtest func()) bool
	Assert() *assert.Assertions
}

func (c tCase) run(sut subtestRunner, node scenecall.Node) {
	result, err := node.Call(c.method, c.args)

	if c.expectedErr == nil {
		sut.Assert().Nil(err)
	} else {
		sut.Assert().ErrorIs(err, c.expectedErr)
	}
	sut.Assert().Equal(c.expectedResult, result)
}

func runCases(sut subtestRunner, node scenecall.Node, cases []tCase) {
	for i, c := range cases {
		sut.Run(fmt.Sprintf("Test Case #%d", i), func() {
			c.run(sut, node)
		})
	}
}

type ClientTestSuite struct {
	suite.Suite
	scene   *memory.Adapter
	adapter *proxiedAdapter
	logger  logger.Logger
	client  scenecall.Client
}

func echo(ctx context.Context, args []byte) ([]byte, error) {
	return args, nil
}

func fail(ctx context.Context, args []byte) ([]byte, error) {
	return nil, errMock
}

func (s *ClientTestSuite) SetupTest() {
	s.scene = memory.NewAdapter()
	s.scene.AddNode("/window", nil)
	s.scene.AddNode(chattyPath, map[string]memory.Method{
		"echo": echo,
		"fail": fail,
	})

	s.adapter = &proxiedAdapter{
		adapter:  s.scene,
		requests: make(map[adapter.Command]int),
	}
	s.logger = std.NewLoggerWithWriters(new(bytes.Buffer), new(bytes.Buffer), true)
	s.client = scenecall.NewClient(s.adapter, s.logger)
}

func (s *ClientTestSuite) TestHello() {
	s.NoError(s.client.Hello(context.Background()))
	s.Equal(1, s.adapter.requests[adapter.CommandHello])
}

func (s *ClientTestSuite) TestHelloUnexpectedGreeting() {
	s.adapter.requestOverride = func(context.Context, adapter.Command, []byte) ([]byte, error) {
		return serial.AppendStr(nil, "bye"), nil
	}

	s.Error(s.client.Hello(context.Background()))
}

func (s *ClientTestSuite) TestIDIsCached() {
	node := s.client.On(chattyPath)

	first, err := node.ID()
	s.Require().NoError(err)
	second, err := node.ID()
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, s.adapter.requests[adapter.CommandLookupNodeID])

	// Other handles on the same path share the cache.
	_, err = s.client.On(chattyPath).ID()
	s.Require().NoError(err)
	s.Equal(1, s.adapter.requests[adapter.CommandLookupNodeID])
}

func (s *ClientTestSuite) TestZeroTTLDisablesCache() {
	node := s.client.On(chattyPath).SetTTL(0)

	_, err := node.ID()
	s.Require().NoError(err)
	_, err = node.ID()
	s.Require().NoError(err)

	s.Equal(2, s.adapter.requests[adapter.CommandLookupNodeID])
}

func (s *ClientTestSuite) TestInvalidate() {
	node := s.client.On(chattyPath)

	_, err := node.ID()
	s.Require().NoError(err)
	node.Invalidate()
	_, err = node.ID()
	s.Require().NoError(err)

	s.Equal(2, s.adapter.requests[adapter.CommandLookupNodeID])
}

func (s *ClientTestSuite) TestCall() {
	node := s.client.On(chattyPath)

	cases := []tCase{
		{
			method:         "echo",
			args:           []byte("hello"),
			expectedResult: []byte("hello"),
		},
		{
			method:         "echo",
			args:           nil,
			expectedResult: []byte{},
		},
		{
			method:      "missing",
			args:        []byte{1},
			expectedErr: adapter.ErrMethodNotFound,
		},
		{
			method:      "fail",
			args:        []byte{1},
			expectedErr: adapter.ErrMethodFailed,
		},
	}

	runCases(s, node, cases)
	s.Equal(1, s.adapter.requests[adapter.CommandLookupNodeID])
}

func (s *ClientTestSuite) TestMethodError() {
	_, err := s.client.On(chattyPath).Call("fail", nil)

	var methodErr *scenecall.MethodError
	s.Require().ErrorAs(err, &methodErr)
	s.Equal(chattyPath, methodErr.Path)
	s.Equal("fail", methodErr.Method)
	s.Equal(uint8(adapter.CodeMethodFailed), methodErr.Code)
}

func (s *ClientTestSuite) TestNodeNotFound() {
	_, err := s.client.On("/window/view/missing").Call("echo", nil)
	s.ErrorIs(err, adapter.ErrNodeNotFound)

	var categorized interface{ Category() string }
	s.Require().ErrorAs(err, &categorized)
	s.Equal("lookup", categorized.Category())
}

func (s *ClientTestSuite) TestStaleIDIsLookedUpAgain() {
	node := s.client.On(chattyPath)

	oldID, err := node.ID()
	s.Require().NoError(err)

	s.scene.RemoveNode(chattyPath)
	newID := s.scene.AddNode(chattyPath, map[string]memory.Method{"echo": echo})
	s.Require().NotEqual(oldID, newID)

	result, err := node.Call("echo", []byte{7})
	s.Require().NoError(err)
	s.Equal([]byte{7}, result)
	s.Equal(2, s.adapter.requests[adapter.CommandLookupNodeID])
	s.Equal(2, s.adapter.requests[adapter.CommandCallMethod])

	id, err := node.ID()
	s.Require().NoError(err)
	s.Equal(newID, id)
}

func (s *ClientTestSuite) TestMethodNodeNotFoundIsNotRetried() {
	calls := 0
	s.scene.RemoveNode(chattyPath)
	s.scene.AddNode(chattyPath, map[string]memory.Method{
		"insert_line": func(context.Context, []byte) ([]byte, error) {
			calls++
			return nil, fmt.Errorf("no child: %w", adapter.ErrNodeNotFound)
		},
	})

	node := s.client.On(chattyPath)
	_, err := node.ID()
	s.Require().NoError(err)

	_, err = node.Call("insert_line", []byte{1})

	var methodErr *scenecall.MethodError
	s.Require().ErrorAs(err, &methodErr)
	s.Equal(uint8(adapter.CodeNodeNotFound), methodErr.Code)
	s.Equal(1, calls)
	s.Equal(1, s.adapter.requests[adapter.CommandLookupNodeID])
	s.Equal(1, s.adapter.requests[adapter.CommandCallMethod])
}

func (s *ClientTestSuite) TestSetContextReturnsCopy() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	node := s.client.On(chattyPath)
	_, err := node.SetContext(ctx).Call("echo", nil)
	s.ErrorIs(err, context.Canceled)

	result, err := node.Call("echo", []byte{1})
	s.Require().NoError(err)
	s.Equal([]byte{1}, result)
}

func (s *ClientTestSuite) TestPayloadTooLarge() {
	node := s.client.On(chattyPath).SetMaxArgs(4)

	_, err := node.Call("echo", []byte{1, 2, 3, 4, 5})
	s.ErrorIs(err, adapter.ErrPayloadTooLarge)
	s.Zero(s.adapter.requests[adapter.CommandCallMethod])

	_, err = node.Call("echo", []byte{1, 2, 3, 4})
	s.NoError(err)
}

func (s *ClientTestSuite) TestMethods() {
	methods, err := s.client.On(chattyPath).Methods()
	s.Require().NoError(err)
	s.Equal([]string{"echo", "fail"}, methods)

	methods, err = s.client.On("/window").Methods()
	s.Require().NoError(err)
	s.Empty(methods)
}

func (s *ClientTestSuite) TestAdapterError() {
	s.adapter.requestOverride = func(context.Context, adapter.Command, []byte) ([]byte, error) {
		return nil, errMock
	}

	_, err := s.client.On(chattyPath).Call("echo", nil)
	s.ErrorIs(err, errMock)
}

func (s *ClientTestSuite) TestMalformedReply() {
	s.adapter.requestOverride = func(ctx context.Context, cmd adapter.Command, payload []byte) ([]byte, error) {
		if cmd == adapter.CommandLookupNodeID {
			return []byte{1, 0}, nil
		}
		return s.scene.Request(ctx, cmd, payload)
	}

	_, err := s.client.On(chattyPath).ID()
	s.ErrorIs(err, serial.ErrTruncated)
}

func (s *ClientTestSuite) TestContextCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.client.On(chattyPath).SetContext(ctx).Call("echo", nil)
	s.ErrorIs(err, context.Canceled)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
