package chat

import (
	"context"
	"fmt"

	"github.com/ezraisw/scenecall"
	"github.com/ezraisw/scenecall/logger"
)

const (
	DefaultPath   = "/window/view/chatty"
	DefaultMethod = "insert_line"
)

// Sender inserts lines into a chat view node.
type Sender struct {
	node   scenecall.Node
	method string
	logger logger.Logger
}

func NewSender(node scenecall.Node, method string, logger logger.Logger) *Sender {
	if method == "" {
		method = DefaultMethod
	}
	return &Sender{
		node:   node,
		method: method,
		logger: logger,
	}
}

// Send encodes l and calls the insert method. The method's result is discarded.
func (s *Sender) Send(ctx context.Context, l Line) error {
	if _, err := s.node.SetContext(ctx).Call(s.method, l.Encode()); err != nil {
		return fmt.Errorf("chat: send line at %d: %w", l.Timestamp, err)
	}
	s.logger.Debug("sent line", l.Timestamp, l.Nick)
	return nil
}

// SendBatch sends every line of b in order and stops at the first failure.
// fn, if not nil, is called after each line is sent.
func (s *Sender) SendBatch(ctx context.Context, b Batch, fn func(i int, l Line)) (int, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}

	for i := 0; i < b.Count; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		l, err := b.Line(i)
		if err != nil {
			return i, err
		}
		if err := s.Send(ctx, l); err != nil {
			return i, err
		}
		if fn != nil {
			fn(i, l)
		}
	}

	s.logger.Info("batch sent", s.node.Path(), b.Count)
	return b.Count, nil
}
