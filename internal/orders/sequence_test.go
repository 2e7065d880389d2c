package orders

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type stubCounter struct {
	count int64
	err   error
	seen  string
}

func (s *stubCounter) CountNumbersWithPrefix(ctx context.Context, prefix string) (int64, error) {
	s.seen = prefix
	return s.count, s.err
}

func TestSequencerFormatsDatePrefixedNumber(t *testing.T) {
	counter := &stubCounter{count: 0}
	seq := NewSequencer(counter)

	number, err := seq.Next(context.Background())
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}

	today := time.Now().UTC().Format("20060102")
	want := fmt.Sprintf("TW-%s-0001", today)
	if number != want {
		t.Fatalf("expected %s, got %s", want, number)
	}
	if counter.seen != "TW-"+today {
		t.Fatalf("expected count to be scoped to prefix TW-%s, got %s", today, counter.seen)
	}
}

func TestSequencerZeroPadsAndIncrements(t *testing.T) {
	for _, tc := range []struct {
		count int64
		tail  string
	}{
		{0, "-0001"},
		{8, "-0009"},
		{99, "-0100"},
		{9998, "-9999"},
	} {
		seq := NewSequencer(&stubCounter{count: tc.count})
		number, err := seq.Next(context.Background())
		if err != nil {
			t.Fatalf("Next returned error: %v", err)
		}
		if got := number[len(number)-5:]; got != tc.tail {
			t.Fatalf("count %d: expected suffix %s, got %s", tc.count, tc.tail, got)
		}
	}
}

func TestSequencerPropagatesCountError(t *testing.T) {
	seq := NewSequencer(&stubCounter{err: fmt.Errorf("boom")})
	if _, err := seq.Next(context.Background()); err == nil {
		t.Fatal("expected error from counter to propagate")
	}
}

func TestNumberPrefixUsesUTCDate(t *testing.T) {
	// 23:30 in UTC+2 is already the next day locally but not in UTC.
	loc := time.FixedZone("UTC+2", 2*3600)
	local := time.Date(2025, 6, 1, 23, 30, 0, 0, loc)
	if got := NumberPrefix(local); got != "TW-20250601" {
		t.Fatalf("expected TW-20250601, got %s", got)
	}
}
