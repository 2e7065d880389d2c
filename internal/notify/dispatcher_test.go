package notify

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type recordMailer struct {
	mu       sync.Mutex
	sent     []Message
	failFor  string
	delivery chan Message
}

func newRecordMailer() *recordMailer {
	return &recordMailer{delivery: make(chan Message, 4)}
}

func (m *recordMailer) Send(msg Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	failFor := m.failFor
	m.mu.Unlock()
	m.delivery <- msg

	if failFor != "" && msg.To == failFor {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func collect(t *testing.T, ch chan Message, n int) []Message {
	t.Helper()
	messages := make([]Message, 0, n)
	for i := 0; i < n; i++ {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for message %d of %d", i+1, n)
		}
	}
	return messages
}

func TestDispatchSendsToBothTargets(t *testing.T) {
	mailer := newRecordMailer()
	d := NewDispatcher(mailer, "info@tantawan.ch", "printer@tantawan.ch", time.Second)

	d.Dispatch(sampleOrder())

	messages := collect(t, mailer.delivery, 2)
	recipients := map[string]Message{}
	for _, msg := range messages {
		recipients[msg.To] = msg
	}

	restaurant, ok := recipients["info@tantawan.ch"]
	if !ok {
		t.Fatal("restaurant notification not sent")
	}
	if restaurant.HTML == "" {
		t.Fatal("restaurant notification must carry an HTML body")
	}

	printer, ok := recipients["printer@tantawan.ch"]
	if !ok {
		t.Fatal("printer ticket not sent")
	}
	if printer.HTML != "" {
		t.Fatal("printer ticket must be plain text only")
	}
	if printer.Subject != "PRINT: Bestellung #TW-20250601-0007" {
		t.Fatalf("unexpected printer subject: %s", printer.Subject)
	}
}

func TestDispatchFailureDoesNotAffectOtherTarget(t *testing.T) {
	mailer := newRecordMailer()
	mailer.failFor = "info@tantawan.ch"
	d := NewDispatcher(mailer, "info@tantawan.ch", "printer@tantawan.ch", time.Second)

	d.Dispatch(sampleOrder())

	messages := collect(t, mailer.delivery, 2)
	if len(messages) != 2 {
		t.Fatalf("expected both sends to be attempted, got %d", len(messages))
	}
}

func TestDispatchSkipsUnconfiguredRecipients(t *testing.T) {
	mailer := newRecordMailer()
	d := NewDispatcher(mailer, "info@tantawan.ch", "", time.Second)

	d.Dispatch(sampleOrder())

	messages := collect(t, mailer.delivery, 1)
	if messages[0].To != "info@tantawan.ch" {
		t.Fatalf("unexpected recipient: %s", messages[0].To)
	}

	select {
	case msg := <-mailer.delivery:
		t.Fatalf("unexpected extra send to %s", msg.To)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDispatchWithoutMailerIsANoop(t *testing.T) {
	d := NewDispatcher(nil, "info@tantawan.ch", "printer@tantawan.ch", time.Second)
	// Must not panic; both sends are skipped with a log line.
	d.Dispatch(sampleOrder())
}
