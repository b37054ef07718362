package domain

import "time"

// Status classifies the outcome of a single check.
type Status string

const (
	StatusSuccess         Status = "success"
	StatusFailed          Status = "failed"
	StatusTimeout         Status = "timeout"
	StatusConnectionError Status = "connection_error"
	StatusError           Status = "error"
)

// CheckResult is the record of one HTTP probe against a URL.
// ResponseTime is in seconds.
type CheckResult struct {
	URL          string    `json:"url"`
	StatusCode   *int      `json:"status_code"` // pointer to allow nil
	ResponseTime float64   `json:"response_time"`
	Status       Status    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}

// OK reports whether the check counted as healthy.
func (r CheckResult) OK() bool { return r.Status == StatusSuccess }
