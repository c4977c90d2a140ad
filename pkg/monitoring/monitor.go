// Package monitoring collects engine counters: detections per conflict
// type, resolutions per strategy, abandonments and resolution latency.
package monitoring

import (
	"sync"
	"time"

	"github.com/huntgame/conflict-engine/pkg/types"
)

// Stats is a point-in-time snapshot of the engine counters.
type Stats struct {
	Detected    map[types.ConflictType]int
	Resolved    map[types.ResolutionType]int
	Abandoned   int
	Fallbacks   int
	Failures    int
	AvgLatency  time.Duration
	Resolutions int
}

// Monitor accumulates engine metrics. All methods are safe for concurrent
// use.
type Monitor struct {
	mu sync.Mutex

	detected  map[types.ConflictType]int
	resolved  map[types.ResolutionType]int
	abandoned int
	fallbacks int
	failures  int

	totalLatency time.Duration
	resolutions  int
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		detected: make(map[types.ConflictType]int),
		resolved: make(map[types.ResolutionType]int),
	}
}

// RecordDetection counts a newly registered conflict.
func (m *Monitor) RecordDetection(kind types.ConflictType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detected[kind]++
}

// RecordResolution counts a completed resolution and its latency from
// conflict creation to terminal state.
func (m *Monitor) RecordResolution(result *types.ResolutionResult, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resolved[result.Strategy]++
	if result.Reason == "timeout" {
		m.fallbacks++
	}
	m.totalLatency += latency
	m.resolutions++
}

// RecordAbandonment counts an externally cancelled conflict.
func (m *Monitor) RecordAbandonment() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abandoned++
}

// RecordFailure counts an executor error.
func (m *Monitor) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

// Snapshot returns a copy of the current counters.
func (m *Monitor) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Detected:    make(map[types.ConflictType]int, len(m.detected)),
		Resolved:    make(map[types.ResolutionType]int, len(m.resolved)),
		Abandoned:   m.abandoned,
		Fallbacks:   m.fallbacks,
		Failures:    m.failures,
		Resolutions: m.resolutions,
	}
	for k, v := range m.detected {
		s.Detected[k] = v
	}
	for k, v := range m.resolved {
		s.Resolved[k] = v
	}
	if m.resolutions > 0 {
		s.AvgLatency = m.totalLatency / time.Duration(m.resolutions)
	}
	return s
}
