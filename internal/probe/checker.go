package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"statuswatch/internal/domain"
)

// DefaultTimeout bounds a single probe end to end.
const DefaultTimeout = 10 * time.Second

// Checker performs a single check for a given URL. Implementations never
// return an error; failures are encoded in the result's Status.
type Checker interface {
	Check(ctx context.Context, url string) domain.CheckResult
}

type HTTPChecker struct {
	Client  *http.Client
	timeout time.Duration
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{
		Client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (c *HTTPChecker) Check(ctx context.Context, url string) domain.CheckResult {
	start := time.Now()
	res := domain.CheckResult{
		URL:       url,
		CheckedAt: start.UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		res.ResponseTime = time.Since(start).Seconds()
		res.Status = domain.StatusError
		res.ErrorMessage = err.Error()
		return res
	}

	resp, err := c.Client.Do(req)
	res.ResponseTime = time.Since(start).Seconds()
	if err != nil {
		res.Status, res.ErrorMessage = c.classify(err)
		return res
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	res.StatusCode = &code
	if code >= 200 && code < 400 {
		res.Status = domain.StatusSuccess
	} else {
		res.Status = domain.StatusFailed
		res.ErrorMessage = fmt.Sprintf("HTTP %d", code)
	}
	return res
}

// classify maps a transport error to a status. Timeouts win over
// connection failures, which win over everything else.
func (c *HTTPChecker) classify(err error) (domain.Status, string) {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return domain.StatusTimeout, fmt.Sprintf("Request timeout (%s)", c.timeout)
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return domain.StatusConnectionError, "Connection failed"
	}

	return domain.StatusError, err.Error()
}
