package observability

import (
	"sync"
	"time"
)

var _ MetricsRegistry = (*MockMetricsRegistry)(nil)

// MockMetricsRegistry records calls in memory so tests can assert on them.
type MockMetricsRegistry struct {
	mu          sync.Mutex
	Calls       map[string]int // "method|outcome" -> count
	Transitions []string
	StatsRows   map[string]int
	Exported    map[string]int
	StoreOps    map[string]int // "op|outcome" -> count
}

// NewMockMetricsRegistry creates an empty MockMetricsRegistry.
func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{
		Calls:     make(map[string]int),
		StatsRows: make(map[string]int),
		Exported:  make(map[string]int),
		StoreOps:  make(map[string]int),
	}
}

func (m *MockMetricsRegistry) IncrementCalls(method, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[method+"|"+outcome]++
}

func (m *MockMetricsRegistry) RecordCallLatency(method string, duration time.Duration) {}

func (m *MockMetricsRegistry) IncrementSessionTransitions(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transitions = append(m.Transitions, state)
}

func (m *MockMetricsRegistry) AddStatisticsRows(method string, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatsRows[method] += rows
}

func (m *MockMetricsRegistry) AddExportedRows(target string, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exported[target] += rows
}

func (m *MockMetricsRegistry) IncrementSessionStoreOps(op, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreOps[op+"|"+outcome]++
}

func (m *MockMetricsRegistry) IncrementRequests(endpoint, method, status string)                   {}
func (m *MockMetricsRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
