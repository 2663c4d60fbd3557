package chat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ezraisw/scenecall/adapter"
)

// View is the receiving end of insert_line. It decodes arguments and keeps
// lines ordered by timestamp, like a chat view would.
type View struct {
	mu    sync.Mutex
	lines []Line
}

func NewView() *View {
	return &View{}
}

// InsertLine has the shape of a loopback method handler.
func (v *View) InsertLine(ctx context.Context, args []byte) ([]byte, error) {
	l, err := DecodeLine(args)
	if err != nil {
		return nil, fmt.Errorf("%w: insert_line: %v", adapter.ErrInvalidRequest, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// Insert after any line with the same timestamp so equal stamps keep arrival order.
	i := sort.Search(len(v.lines), func(i int) bool {
		return v.lines[i].Timestamp > l.Timestamp
	})
	v.lines = append(v.lines, Line{})
	copy(v.lines[i+1:], v.lines[i:])
	v.lines[i] = l

	return nil, nil
}

// Lines returns a copy of the received lines.
func (v *View) Lines() []Line {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]Line, len(v.lines))
	copy(out, v.lines)
	return out
}

func (v *View) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.lines)
}
