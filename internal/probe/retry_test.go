package probe

import (
	"context"
	"strings"
	"testing"
	"time"

	"statuswatch/internal/domain"
)

// fake checker you can control
type fakeChecker struct {
	results []domain.CheckResult
	i       int
}

func (f *fakeChecker) Check(ctx context.Context, url string) domain.CheckResult {
	if f.i >= len(f.results) {
		return domain.CheckResult{URL: url, Status: domain.StatusError, ErrorMessage: "no more"}
	}
	r := f.results[f.i]
	f.i++
	return r
}

func TestRetryChecker_SucceedsAfterRetry(t *testing.T) {
	f := &fakeChecker{
		results: []domain.CheckResult{
			{Status: domain.StatusConnectionError, ErrorMessage: "Connection failed"},
			{Status: domain.StatusSuccess},
		},
	}
	rc := &RetryChecker{Inner: f, Attempts: 3, Backoff: time.Millisecond}

	out := rc.Check(context.Background(), "https://example.com")
	if out.Status != domain.StatusSuccess {
		t.Fatalf("expected success after retry, got %+v", out)
	}
	if out.ErrorMessage != "" {
		t.Fatalf("success result should not be annotated, got %q", out.ErrorMessage)
	}
	if f.i != 2 {
		t.Fatalf("expected 2 attempts, got %d", f.i)
	}
}

func TestRetryChecker_AllFailAnnotates(t *testing.T) {
	f := &fakeChecker{
		results: []domain.CheckResult{
			{Status: domain.StatusFailed, ErrorMessage: "HTTP 502"},
			{Status: domain.StatusFailed, ErrorMessage: "HTTP 500"},
		},
	}
	rc := &RetryChecker{Inner: f, Attempts: 2, Backoff: 0}

	out := rc.Check(context.Background(), "https://example.com")
	if out.Status != domain.StatusFailed {
		t.Fatalf("expected failure, got %+v", out)
	}
	if out.ErrorMessage != "HTTP 500 (after 2 attempts)" {
		t.Fatalf("unexpected annotation: %q", out.ErrorMessage)
	}
}

func TestRetryChecker_SingleAttemptNotAnnotated(t *testing.T) {
	f := &fakeChecker{
		results: []domain.CheckResult{{Status: domain.StatusFailed, ErrorMessage: "HTTP 500"}},
	}
	rc := &RetryChecker{Inner: f, Attempts: 1}

	out := rc.Check(context.Background(), "https://example.com")
	if strings.Contains(out.ErrorMessage, "attempts") {
		t.Fatalf("single attempt should not be annotated: %q", out.ErrorMessage)
	}
}

func TestRetryChecker_CanceledContextStopsRetrying(t *testing.T) {
	f := &fakeChecker{
		results: []domain.CheckResult{
			{Status: domain.StatusTimeout, ErrorMessage: "Request timeout (1s)"},
		},
	}
	rc := &RetryChecker{Inner: f, Attempts: 5, Backoff: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan domain.CheckResult, 1)
	go func() { done <- rc.Check(ctx, "https://example.com") }()

	select {
	case out := <-done:
		if out.Status != domain.StatusTimeout {
			t.Fatalf("expected the last attempt's result, got %+v", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry loop did not honor canceled context")
	}
}
