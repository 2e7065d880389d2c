package orders

import (
	"context"
	"fmt"
	"time"
)

// NumberCounter is the slice of the store the allocator needs.
type NumberCounter interface {
	CountNumbersWithPrefix(ctx context.Context, prefix string) (int64, error)
}

// Sequencer derives the next human-readable order number for the current UTC
// day: TW-YYYYMMDD-NNNN. Counting is not race-free; callers must treat a
// duplicate-key insert as a signal to allocate again.
type Sequencer struct {
	counter NumberCounter
}

func NewSequencer(counter NumberCounter) *Sequencer {
	return &Sequencer{counter: counter}
}

// Next returns the next number for today. The counter restarts at 0001 when
// the UTC date rolls over, because the prefix changes.
func (s *Sequencer) Next(ctx context.Context) (string, error) {
	prefix := NumberPrefix(time.Now().UTC())

	count, err := s.counter.CountNumbersWithPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("count orders for %s: %w", prefix, err)
	}

	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}

// NumberPrefix returns the date-scoped order number prefix, without the
// trailing separator and counter.
func NumberPrefix(t time.Time) string {
	return "TW-" + t.UTC().Format("20060102")
}
