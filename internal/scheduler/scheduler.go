// Package scheduler drives check cycles: on demand via CheckOnce, or
// periodically between Start and Stop. At most one cycle runs at a time;
// a cycle checks every registered URL with bounded concurrency, records
// each result, and raises a notification for each unhealthy one.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"statuswatch/internal/domain"
	"statuswatch/internal/notify"
	"statuswatch/internal/probe"
	"statuswatch/internal/store"
)

const DefaultInterval = 60 * time.Second

const alertTitle = "Server Status Alert"

// URLSource provides the current set of URLs to check each cycle.
type URLSource interface {
	List() []string
}

type Scheduler struct {
	logger      *zap.Logger
	urls        URLSource
	results     store.ResultStore
	checker     probe.Checker
	notifier    notify.Notifier
	timeout     time.Duration
	concurrency int

	runMu sync.Mutex // serializes cycles

	mu      sync.Mutex // guards the loop state below
	running bool
	stop    chan struct{}
	done    chan struct{}

	events chan domain.CheckResult
}

func New(
	logger *zap.Logger,
	urls URLSource,
	results store.ResultStore,
	checker probe.Checker,
	notifier notify.Notifier,
	timeout time.Duration,
	concurrency int,
) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if notifier == nil {
		notifier = notify.Multi{}
	}
	return &Scheduler{
		logger:      logger,
		urls:        urls,
		results:     results,
		checker:     checker,
		notifier:    notifier,
		timeout:     timeout,
		concurrency: concurrency,
		events:      make(chan domain.CheckResult, 64),
	}
}

// CheckOnce runs a single cycle and returns the result per URL. It works
// whether or not periodic monitoring is running; concurrent cycles queue
// behind each other.
func (s *Scheduler) CheckOnce(ctx context.Context) map[string]domain.CheckResult {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.cycle(ctx)
}

// Start launches the periodic loop: an immediate cycle, then one per
// interval. It is a no-op when the loop already runs. interval <= 0 means
// the 60s default.
func (s *Scheduler) Start(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	s.logger.Info("monitor_start", zap.Duration("interval", interval))

	go s.loop(interval, stop, done)
}

func (s *Scheduler) loop(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(interval)
	defer t.Stop()

	ctx := context.Background()

	// immediate pass
	s.runMu.Lock()
	s.cycle(ctx)
	s.runMu.Unlock()

	for {
		select {
		case <-stop:
			s.logger.Info("monitor_stop")
			return
		case <-t.C:
			s.runMu.Lock()
			s.cycle(ctx)
			s.runMu.Unlock()
		}
	}
}

// Stop ends the periodic loop and waits for it to exit; an in-flight
// cycle completes first. It is a no-op when the loop is not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
}

// Running reports whether the periodic loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Events exposes a lossy feed of every result from every cycle. Slow
// consumers miss results instead of blocking checks.
func (s *Scheduler) Events() <-chan domain.CheckResult {
	return s.events
}

func (s *Scheduler) publish(r domain.CheckResult) {
	select {
	case s.events <- r:
	default:
	}
}

// cycle checks every URL once. Callers hold runMu.
func (s *Scheduler) cycle(ctx context.Context) map[string]domain.CheckResult {
	urls := s.urls.List()
	log := s.logger.With(zap.String("cycle_id", uuid.NewString()))
	log.Info("cycle_start", zap.Int("urls", len(urls)))

	out := make(map[string]domain.CheckResult, len(urls))
	if len(urls) == 0 {
		return out
	}

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	var outMu sync.Mutex

	for _, u := range urls {
		url := u
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			res := s.checker.Check(cctx, url)

			if err := s.results.Record(ctx, &res); err != nil {
				log.Warn("record_error",
					zap.String("url", url),
					zap.Error(err),
				)
			} else {
				log.Debug("check_done",
					zap.String("url", url),
					zap.String("status", string(res.Status)),
					zap.Float64("response_time", res.ResponseTime),
				)
			}

			if !res.OK() {
				text := fmt.Sprintf("Server failed: %s", url)
				if res.ErrorMessage != "" {
					text += fmt.Sprintf("\nError: %s", res.ErrorMessage)
				}
				if err := s.notifier.Send(ctx, alertTitle, text); err != nil {
					log.Warn("notify_error",
						zap.String("url", url),
						zap.Error(err),
					)
				}
			}

			s.publish(res)

			outMu.Lock()
			out[url] = res
			outMu.Unlock()
		}()
	}

	wg.Wait()
	log.Info("cycle_done", zap.Int("urls", len(urls)))
	return out
}
