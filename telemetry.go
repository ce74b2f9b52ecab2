package server

import (
	"sync/atomic"
	"time"
)

// telemetryCounters tracks broadcast volume and tick cost. All fields are
// atomics so the sim loop and session goroutines record without contending
// on the hub mutex.
type telemetryCounters struct {
	bytesSent          atomic.Uint64
	messagesSent       atomic.Uint64
	lastMessageBytes   atomic.Uint64
	tickDurationMicros atomic.Int64
}

// TelemetrySnapshot is the diagnostics-endpoint view of the counters.
type TelemetrySnapshot struct {
	BytesSent          uint64 `json:"bytesSent"`
	MessagesSent       uint64 `json:"messagesSent"`
	LastMessageBytes   uint64 `json:"lastMessageBytes"`
	TickDurationMicros int64  `json:"tickDurationMicros"`
}

func newTelemetryCounters() *telemetryCounters {
	return &telemetryCounters{}
}

func (t *telemetryCounters) RecordSend(bytes, recipients int) {
	if bytes < 0 {
		bytes = 0
	}
	if recipients < 0 {
		recipients = 0
	}
	t.bytesSent.Add(uint64(bytes) * uint64(recipients))
	t.messagesSent.Add(uint64(recipients))
	t.lastMessageBytes.Store(uint64(bytes))
}

func (t *telemetryCounters) RecordTickDuration(duration time.Duration) {
	micros := duration.Microseconds()
	if micros < 0 {
		micros = 0
	}
	t.tickDurationMicros.Store(micros)
}

func (t *telemetryCounters) Snapshot() TelemetrySnapshot {
	return TelemetrySnapshot{
		BytesSent:          t.bytesSent.Load(),
		MessagesSent:       t.messagesSent.Load(),
		LastMessageBytes:   t.lastMessageBytes.Load(),
		TickDurationMicros: t.tickDurationMicros.Load(),
	}
}
