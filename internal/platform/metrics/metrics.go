package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	renders         uint64
	renderErrors    uint64
	renderDurationU uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordRender counts one report build. Durations are kept in microseconds.
func (c *Collector) RecordRender(duration time.Duration, err error) {
	atomic.AddUint64(&c.renders, 1)
	if err != nil {
		atomic.AddUint64(&c.renderErrors, 1)
	}
	atomic.AddUint64(&c.renderDurationU, uint64(duration.Microseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	renders := atomic.LoadUint64(&c.renders)
	renderErrs := atomic.LoadUint64(&c.renderErrors)
	renderUs := atomic.LoadUint64(&c.renderDurationU)

	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         errs,
		"rateLimitedTotal":    limited,
		"avgDurationMs":       average(totalMs, total),
		"totalDurationMs":     totalMs,
		"reportRendersTotal":  renders,
		"reportRenderErrors":  renderErrs,
		"avgRenderDurationUs": average(renderUs, renders),
	}
}

func average(sum, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
