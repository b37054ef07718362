package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"statuswatch/internal/domain"
	"statuswatch/internal/store"
	"statuswatch/internal/store/memory"
)

// --- fakes ---

type fakeURLs []string

func (f fakeURLs) List() []string { return f }

// scripted checker: fails URLs listed in bad, succeeds otherwise
type scriptedChecker struct {
	bad map[string]domain.Status
}

func (c *scriptedChecker) Check(ctx context.Context, url string) domain.CheckResult {
	r := domain.CheckResult{URL: url, ResponseTime: 0.01, CheckedAt: time.Now().UTC()}
	if st, ok := c.bad[url]; ok {
		r.Status = st
		r.ErrorMessage = "Connection failed"
		return r
	}
	code := 200
	r.StatusCode = &code
	r.Status = domain.StatusSuccess
	return r
}

// blockingChecker parks every Check call until release is closed
type blockingChecker struct {
	entered chan string
	release chan struct{}
}

func (c *blockingChecker) Check(ctx context.Context, url string) domain.CheckResult {
	c.entered <- url
	<-c.release
	code := 200
	return domain.CheckResult{URL: url, StatusCode: &code, Status: domain.StatusSuccess, CheckedAt: time.Now().UTC()}
}

type countingNotifier struct {
	mu    sync.Mutex
	calls []string // one entry per Send: "title|text"
}

func (n *countingNotifier) Send(ctx context.Context, title, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, title+"|"+text)
	return nil
}

func (n *countingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

type failingStore struct {
	memory.Store
	fail atomic.Bool
}

func (f *failingStore) Record(ctx context.Context, r *domain.CheckResult) error {
	if f.fail.Load() {
		return errors.New("disk full")
	}
	return f.Store.Record(ctx, r)
}

// --- tests ---

func TestCheckOnce_RecordsOneResultPerURL(t *testing.T) {
	urls := fakeURLs{"https://up.example", "https://down.example", "https://slow.example"}
	st := memory.New()
	chk := &scriptedChecker{bad: map[string]domain.Status{
		"https://down.example": domain.StatusConnectionError,
		"https://slow.example": domain.StatusTimeout,
	}}
	s := New(zap.NewNop(), urls, st, chk, &countingNotifier{}, time.Second, 2)

	out := s.CheckOnce(context.Background())

	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	if st.Len() != 3 {
		t.Fatalf("expected 3 recorded rows, got %d", st.Len())
	}
	if out["https://up.example"].Status != domain.StatusSuccess {
		t.Fatalf("up.example: %+v", out["https://up.example"])
	}
	if out["https://down.example"].Status != domain.StatusConnectionError {
		t.Fatalf("down.example: %+v", out["https://down.example"])
	}
}

func TestCheckOnce_NotifiesOnlyFailures(t *testing.T) {
	urls := fakeURLs{"https://up.example", "https://down.example"}
	n := &countingNotifier{}
	chk := &scriptedChecker{bad: map[string]domain.Status{
		"https://down.example": domain.StatusConnectionError,
	}}
	s := New(zap.NewNop(), urls, memory.New(), chk, n, time.Second, 4)

	s.CheckOnce(context.Background())

	sent := n.sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d: %v", len(sent), sent)
	}
	if !strings.HasPrefix(sent[0], "Server Status Alert|") {
		t.Fatalf("wrong title: %q", sent[0])
	}
	if !strings.Contains(sent[0], "Server failed: https://down.example") ||
		!strings.Contains(sent[0], "Error: Connection failed") {
		t.Fatalf("wrong body: %q", sent[0])
	}
}

func TestCheckOnce_EmptyRegistry(t *testing.T) {
	s := New(zap.NewNop(), fakeURLs{}, memory.New(), &scriptedChecker{}, nil, time.Second, 4)
	out := s.CheckOnce(context.Background())
	if len(out) != 0 {
		t.Fatalf("expected empty map, got %v", out)
	}
}

func TestCheckOnce_StoreErrorDoesNotAbortCycle(t *testing.T) {
	urls := fakeURLs{"https://a.example", "https://b.example"}
	st := &failingStore{}
	st.fail.Store(true)
	n := &countingNotifier{}
	chk := &scriptedChecker{bad: map[string]domain.Status{
		"https://b.example": domain.StatusFailed,
	}}
	s := New(zap.NewNop(), urls, st, chk, n, time.Second, 1)

	out := s.CheckOnce(context.Background())

	if len(out) != 2 {
		t.Fatalf("cycle aborted on store error: %v", out)
	}
	// failure notification still goes out even though recording failed
	if len(n.sent()) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.sent()))
	}
}

func TestCheckOnce_RespectsConcurrencyBound(t *testing.T) {
	urls := fakeURLs{"https://a.example", "https://b.example", "https://c.example", "https://d.example"}
	chk := &blockingChecker{entered: make(chan string, len(urls)), release: make(chan struct{})}
	s := New(zap.NewNop(), urls, memory.New(), chk, nil, time.Second, 2)

	done := make(chan struct{})
	go func() {
		s.CheckOnce(context.Background())
		close(done)
	}()

	// exactly two probes may be in flight
	<-chk.entered
	<-chk.entered
	select {
	case url := <-chk.entered:
		t.Fatalf("third probe %q started past the concurrency bound", url)
	case <-time.After(50 * time.Millisecond):
	}

	close(chk.release)
	for i := 0; i < 2; i++ {
		<-chk.entered // remaining probes proceed once released
	}
	<-done
}

func TestCheckOnce_CyclesAreMutuallyExclusive(t *testing.T) {
	urls := fakeURLs{"https://a.example"}
	chk := &blockingChecker{entered: make(chan string, 2), release: make(chan struct{})}
	s := New(zap.NewNop(), urls, memory.New(), chk, nil, time.Second, 1)

	first := make(chan struct{})
	go func() {
		s.CheckOnce(context.Background())
		close(first)
	}()
	<-chk.entered // first cycle is mid-probe

	second := make(chan struct{})
	go func() {
		s.CheckOnce(context.Background())
		close(second)
	}()

	select {
	case <-chk.entered:
		t.Fatal("second cycle started while first was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(chk.release)
	<-chk.entered // second cycle runs after the first finishes
	<-first
	<-second
}

func TestStartStop_QuickSuccessionEndsIdle(t *testing.T) {
	urls := fakeURLs{"https://a.example"}
	st := memory.New()
	s := New(zap.NewNop(), urls, st, &scriptedChecker{}, nil, time.Second, 1)

	s.Start(time.Hour)
	if !s.Running() {
		t.Fatal("expected Running after Start")
	}
	s.Stop()

	if s.Running() {
		t.Fatal("expected Idle after Stop")
	}
	// the immediate pass may have completed, but no tick ever fired
	if got := st.Len(); got > 1 {
		t.Fatalf("expected at most one completed cycle, got %d records", got)
	}
}

func TestStart_IsIdempotent(t *testing.T) {
	urls := fakeURLs{"https://a.example"}
	st := memory.New()
	s := New(zap.NewNop(), urls, st, &scriptedChecker{}, nil, time.Second, 1)

	s.Start(time.Hour)
	s.Start(time.Hour) // second call must not spawn another loop
	defer s.Stop()

	deadline := time.Now().Add(time.Second)
	for st.Len() < 1 {
		if time.Now().After(deadline) {
			t.Fatal("immediate pass never ran")
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	if st.Len() != 1 {
		t.Fatalf("double Start produced extra cycles: %d records", st.Len())
	}
}

func TestStop_WaitsForInFlightCycle(t *testing.T) {
	urls := fakeURLs{"https://a.example"}
	st := memory.New()
	chk := &blockingChecker{entered: make(chan string, 1), release: make(chan struct{})}
	s := New(zap.NewNop(), urls, st, chk, nil, time.Second, 1)

	s.Start(time.Hour)
	<-chk.entered // immediate pass is mid-probe

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a cycle was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(chk.release)
	<-stopped
	if st.Len() != 1 {
		t.Fatalf("in-flight result lost: %d records", st.Len())
	}
}

func TestStop_WhenIdleIsNoOp(t *testing.T) {
	s := New(zap.NewNop(), fakeURLs{}, memory.New(), &scriptedChecker{}, nil, time.Second, 1)
	s.Stop() // must not block or panic
	if s.Running() {
		t.Fatal("idle scheduler reports running")
	}
}

func TestRestartAfterStop(t *testing.T) {
	urls := fakeURLs{"https://a.example"}
	st := memory.New()
	s := New(zap.NewNop(), urls, st, &scriptedChecker{}, nil, time.Second, 1)

	s.Start(time.Hour)
	s.Stop()
	first := st.Len()

	s.Start(time.Hour)
	defer s.Stop()
	deadline := time.Now().Add(time.Second)
	for st.Len() <= first {
		if time.Now().After(deadline) {
			t.Fatal("restarted loop never cycled")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEvents_ReceivesEveryResult(t *testing.T) {
	urls := fakeURLs{"https://up.example", "https://down.example"}
	chk := &scriptedChecker{bad: map[string]domain.Status{
		"https://down.example": domain.StatusTimeout,
	}}
	s := New(zap.NewNop(), urls, memory.New(), chk, nil, time.Second, 2)

	s.CheckOnce(context.Background())

	got := map[string]domain.Status{}
	for i := 0; i < 2; i++ {
		select {
		case r := <-s.Events():
			got[r.URL] = r.Status
		case <-time.After(time.Second):
			t.Fatalf("event %d never arrived", i)
		}
	}
	if got["https://up.example"] != domain.StatusSuccess || got["https://down.example"] != domain.StatusTimeout {
		t.Fatalf("events wrong: %v", got)
	}
}

var _ store.ResultStore = (*failingStore)(nil)
