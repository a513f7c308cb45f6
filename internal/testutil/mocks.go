package testutil

import (
	"donosync/internal/models"
	"donosync/internal/providers"
	"fmt"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a copy of the recorded entries at the given level.
func (m *MockLogger) Entries(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockMetrics implements providers.MetricsProviderInterface with counters.
type MockMetrics struct {
	mu                   sync.Mutex
	Requests             int
	CacheHits            int
	CacheMisses          int
	Frames               map[string]int
	DecodeErrors         int
	ReconnectAttempts    int
	Statuses             []string
	HeartbeatRTTs        []time.Duration
	Celebrations         int
	SpotlightExpirations int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncFramesTotal(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Frames == nil {
		m.Frames = make(map[string]int)
	}
	m.Frames[kind]++
}
func (m *MockMetrics) IncDecodeErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecodeErrors++
}
func (m *MockMetrics) IncReconnectAttempts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReconnectAttempts++
}
func (m *MockMetrics) SetConnectionStatus(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Statuses = append(m.Statuses, status)
}
func (m *MockMetrics) ObserveHeartbeatRTT(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HeartbeatRTTs = append(m.HeartbeatRTTs, d)
}
func (m *MockMetrics) IncCelebrations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Celebrations++
}
func (m *MockMetrics) IncSpotlightExpirations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SpotlightExpirations++
}

// Snapshot returns a copy safe to read while the code under test still runs.
func (m *MockMetrics) Snapshot() MockMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	frames := make(map[string]int, len(m.Frames))
	for k, v := range m.Frames {
		frames[k] = v
	}
	return MockMetrics{
		Requests:             m.Requests,
		CacheHits:            m.CacheHits,
		CacheMisses:          m.CacheMisses,
		Frames:               frames,
		DecodeErrors:         m.DecodeErrors,
		ReconnectAttempts:    m.ReconnectAttempts,
		Statuses:             append([]string(nil), m.Statuses...),
		HeartbeatRTTs:        append([]time.Duration(nil), m.HeartbeatRTTs...),
		Celebrations:         m.Celebrations,
		SpotlightExpirations: m.SpotlightExpirations,
	}
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) EntryCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Data))
}

// MockCompressor implements the decoder CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockConnection implements the connection state reader used by controllers.
type MockConnection struct {
	mu      sync.Mutex
	Current models.ConnectionState
}

func (m *MockConnection) State() models.ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Current
}

func (m *MockConnection) SetState(s models.ConnectionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Current = s
}
