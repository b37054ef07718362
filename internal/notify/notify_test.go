package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) Send(ctx context.Context, title, text string) error {
	s.calls++
	return s.err
}

func TestMulti_Empty(t *testing.T) {
	var m Multi
	if err := m.Send(context.Background(), "t", "x"); err != nil {
		t.Fatalf("empty Multi should be a no-op, got %v", err)
	}
}

func TestMulti_AllChannelsAttempted(t *testing.T) {
	a := &stubNotifier{err: errors.New("a down")}
	b := &stubNotifier{}
	c := &stubNotifier{err: errors.New("c down")}

	err := Multi{a, nil, b, c}.Send(context.Background(), "t", "x")
	if err == nil {
		t.Fatal("expected combined error")
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 1 {
		t.Fatalf("not all channels attempted: %d %d %d", a.calls, b.calls, c.calls)
	}
	msg := err.Error()
	if !strings.Contains(msg, "a down") || !strings.Contains(msg, "c down") {
		t.Fatalf("combined error lost detail: %v", err)
	}
}

func TestMulti_NoErrorWhenAllSucceed(t *testing.T) {
	a, b := &stubNotifier{}, &stubNotifier{}
	if err := (Multi{a, b}).Send(context.Background(), "t", "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDesktop_NilReceiverErrors(t *testing.T) {
	var d *Desktop
	if err := d.Send(context.Background(), "t", "x"); err == nil {
		t.Fatal("nil Desktop should report unavailable")
	}
}
