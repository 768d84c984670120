package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	DocumentReport      = "report"
	DocumentCertificate = "certificate"
)

// Collector keeps in-process counters for requests and generated documents.
type Collector struct {
	totalRequests   uint64
	clientErrors    uint64
	serverErrors    uint64
	rateLimited     uint64
	totalDurationMs uint64

	mu        sync.Mutex
	documents map[string]uint64
	failures  map[string]uint64
}

func New() *Collector {
	return &Collector{
		documents: map[string]uint64{},
		failures:  map[string]uint64{},
	}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
		atomic.AddUint64(&c.clientErrors, 1)
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordDocument counts a rendered report or certificate. A non-nil err counts as a failure.
func (c *Collector) RecordDocument(kind string, err error) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failures[kind]++
		return
	}
	c.documents[kind]++
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	documents := make(map[string]uint64, len(c.documents))
	for k, v := range c.documents {
		documents[k] = v
	}
	failures := make(map[string]uint64, len(c.failures))
	for k, v := range c.failures {
		failures[k] = v
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":     total,
		"clientErrorsTotal": atomic.LoadUint64(&c.clientErrors),
		"serverErrorsTotal": atomic.LoadUint64(&c.serverErrors),
		"rateLimitedTotal":  atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":     avg,
		"documents":         documents,
		"documentFailures":  failures,
	}
}
