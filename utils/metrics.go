package utils

import (
	"sync"
	"time"
)

// Metrics holds the application metrics
type Metrics struct {
	mu sync.RWMutex

	// Request metrics
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Decision metrics
	EligibilityChecks    int64
	EligibilityApprovals int64
	LoansCreated         int64
	LoansDeclined        int64
	DeclineReasons       map[string]int64
	LastDecisionTime     time.Time

	// Import metrics
	ImportsRun        int64
	ImportsFailed     int64
	CustomersImported int64
	LoansImported     int64
	LastImportTime    time.Time

	// Error metrics
	ErrorCount    int64
	LastErrorTime time.Time
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics returns the metrics singleton
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			DeclineReasons: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest records one handled HTTP request
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordEligibilityCheck records one read-only eligibility evaluation
func (m *Metrics) RecordEligibilityCheck(approved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EligibilityChecks++
	if approved {
		m.EligibilityApprovals++
	}
	m.LastDecisionTime = time.Now()
}

// RecordLoanDecision records one loan creation outcome
func (m *Metrics) RecordLoanDecision(approved bool, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if approved {
		m.LoansCreated++
	} else {
		m.LoansDeclined++
		m.DeclineReasons[reason]++
	}
	m.LastDecisionTime = time.Now()
}

// RecordImport records one bulk import run
func (m *Metrics) RecordImport(customers, loans int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ImportsRun++
	m.LastImportTime = time.Now()
	if err != nil {
		m.ImportsFailed++
		m.ErrorCount++
		m.LastErrorTime = time.Now()
		return
	}
	m.CustomersImported += int64(customers)
	m.LoansImported += int64(loans)
}

// RecordError records one internal error
func (m *Metrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ErrorCount++
	m.LastErrorTime = time.Now()
}

// GetMetricsSnapshot returns a snapshot of the current metrics
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reasons := make(map[string]int64, len(m.DeclineReasons))
	for k, v := range m.DeclineReasons {
		reasons[k] = v
	}

	return map[string]interface{}{
		"total_requests":        m.TotalRequests,
		"failed_requests":       m.FailedRequests,
		"average_latency":       m.AverageLatency.String(),
		"eligibility_checks":    m.EligibilityChecks,
		"eligibility_approvals": m.EligibilityApprovals,
		"loans_created":         m.LoansCreated,
		"loans_declined":        m.LoansDeclined,
		"decline_reasons":       reasons,
		"imports_run":           m.ImportsRun,
		"imports_failed":        m.ImportsFailed,
		"customers_imported":    m.CustomersImported,
		"loans_imported":        m.LoansImported,
		"last_import_time":      m.LastImportTime,
		"error_count":           m.ErrorCount,
		"last_error_time":       m.LastErrorTime,
	}
}

// ResetMetrics resets all metrics
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.EligibilityChecks = 0
	m.EligibilityApprovals = 0
	m.LoansCreated = 0
	m.LoansDeclined = 0
	m.DeclineReasons = make(map[string]int64)
	m.ImportsRun = 0
	m.ImportsFailed = 0
	m.CustomersImported = 0
	m.LoansImported = 0
	m.ErrorCount = 0
}
