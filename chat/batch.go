package chat

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	DefaultStart    = uint64(1732944640000)
	DefaultInterval = uint64(60000)
	DefaultCount    = 200
	DefaultNick     = "hhi12"
	DefaultTemplate = "hello bob-%d"
)

var ErrInvalidBatch = errors.New("chat: invalid batch")

// Batch describes a run of synthetic lines: line i is stamped
// Start + i*Interval and its text is Template formatted with i.
type Batch struct {
	Start    uint64
	Interval uint64
	Count    int
	Nick     string
	Template string

	// Source of nonces. Defaults to crypto/rand.
	Rand io.Reader
}

func DefaultBatch() Batch {
	return Batch{
		Start:    DefaultStart,
		Interval: DefaultInterval,
		Count:    DefaultCount,
		Nick:     DefaultNick,
		Template: DefaultTemplate,
	}
}

func (b Batch) Validate() error {
	if b.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidBatch, b.Count)
	}
	if b.Count > 0 && b.Interval > 0 {
		// The last timestamp must still fit in a u64.
		if uint64(b.Count-1) > (^uint64(0)-b.Start)/b.Interval {
			return fmt.Errorf("%w: timestamps overflow", ErrInvalidBatch)
		}
	}
	if _, err := countVerbs(b.Template); err != nil {
		return fmt.Errorf("%w: template %q: %v", ErrInvalidBatch, b.Template, err)
	}
	return nil
}

// countVerbs returns how many %d the template holds. Only %d and %% are allowed,
// and %d at most once.
func countVerbs(template string) (int, error) {
	n := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		i++
		if i == len(template) {
			return 0, errors.New("trailing %")
		}
		switch template[i] {
		case '%':
		case 'd':
			n++
		default:
			return 0, fmt.Errorf("unsupported verb %%%c", template[i])
		}
	}
	if n > 1 {
		return 0, errors.New("takes at most one %d")
	}
	return n, nil
}

// Line builds the i-th line of the batch.
func (b Batch) Line(i int) (Line, error) {
	src := b.Rand
	if src == nil {
		src = rand.Reader
	}

	nonce, err := NewNonce(src)
	if err != nil {
		return Line{}, err
	}

	return Line{
		Timestamp: b.Start + uint64(i)*b.Interval,
		Nonce:     nonce,
		Nick:      b.Nick,
		Text:      b.text(i),
	}, nil
}

func (b Batch) text(i int) string {
	if n, _ := countVerbs(b.Template); n == 1 {
		return fmt.Sprintf(b.Template, i)
	}
	return strings.ReplaceAll(b.Template, "%%", "%")
}

// Lines builds every line of the batch in order.
func (b Batch) Lines() ([]Line, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	lines := make([]Line, 0, b.Count)
	for i := 0; i < b.Count; i++ {
		l, err := b.Line(i)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}
