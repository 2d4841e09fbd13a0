package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Gauge keeps the last observed duration.
type Gauge struct {
	nanos int64
}

func (g *Gauge) Set(d time.Duration) {
	atomic.StoreInt64(&g.nanos, int64(d))
}

func (g *Gauge) Load() time.Duration {
	return time.Duration(atomic.LoadInt64(&g.nanos))
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Orders counts checkout submissions by outcome.
type Orders struct {
	Attempts           Counter
	ValidationFailures Counter
	Succeeded          Counter
	Failed             Counter
	GatewayLatency     Gauge
}

type OrdersSnapshot struct {
	Attempts           uint64 `json:"attempts"`
	ValidationFailures uint64 `json:"validation_failures"`
	Succeeded          uint64 `json:"succeeded"`
	Failed             uint64 `json:"failed"`
	GatewayLatencyMs   int64  `json:"gateway_latency_ms"`
}

func (o *Orders) Snapshot() OrdersSnapshot {
	return OrdersSnapshot{
		Attempts:           o.Attempts.Load(),
		ValidationFailures: o.ValidationFailures.Load(),
		Succeeded:          o.Succeeded.Load(),
		Failed:             o.Failed.Load(),
		GatewayLatencyMs:   o.GatewayLatency.Load().Milliseconds(),
	}
}
