package metrics

import (
	"sync"
	"time"
)

// Collector receives one record per command execution.
type Collector interface {
	// RecordCommand records a finished (or aborted) command execution.
	// errMsg is empty when success is true.
	RecordCommand(command string, executionTime time.Duration, success bool, errMsg string)
}

// CommandStats aggregates the executions of one command.
type CommandStats struct {
	Count         int64         `json:"count"`
	Failures      int64         `json:"failures"`
	TotalDuration time.Duration `json:"total_duration"`
	LastDuration  time.Duration `json:"last_duration"`
	LastError     string        `json:"last_error,omitempty"`
	LastExecuted  time.Time     `json:"last_executed"`
}

// AverageDuration returns the mean execution time.
func (s CommandStats) AverageDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// MemoryCollector keeps per-command aggregates in memory.
type MemoryCollector struct {
	stats map[string]*CommandStats
	mu    sync.RWMutex
}

// NewMemoryCollector creates an empty in-memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{
		stats: make(map[string]*CommandStats),
	}
}

func (c *MemoryCollector) RecordCommand(command string, executionTime time.Duration, success bool, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, exists := c.stats[command]
	if !exists {
		s = &CommandStats{}
		c.stats[command] = s
	}

	s.Count++
	s.TotalDuration += executionTime
	s.LastDuration = executionTime
	s.LastExecuted = time.Now()
	if !success {
		s.Failures++
		s.LastError = errMsg
	}
}

// Snapshot returns a copy of the current per-command aggregates.
func (c *MemoryCollector) Snapshot() map[string]CommandStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]CommandStats, len(c.stats))
	for name, s := range c.stats {
		out[name] = *s
	}
	return out
}

// Reset discards all aggregates. Test helper.
func (c *MemoryCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = make(map[string]*CommandStats)
}

// NoopCollector discards every record.
type NoopCollector struct{}

// NewNoopCollector creates a collector that does nothing.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (*NoopCollector) RecordCommand(string, time.Duration, bool, string) {}
