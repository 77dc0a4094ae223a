package http

import (
	"fmt"
	"net/http"
	"time"
)

// handleMetrics reports request, security and ledger counters in a
// Prometheus-like text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	traceMetrics := s.tracer.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	securityMetrics := s.detector.GetMetrics()
	ledgerStats := s.service.Stats()

	transactions := -1
	if n, err := s.service.Count(r.Context()); err == nil {
		transactions = n
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
		fmt.Fprintf(w, "%s %v\n\n", name, value)
	}

	metric("http_requests_total", "counter", "Total number of HTTP requests", traceMetrics.TotalRequests)
	metric("http_last_response_time_microseconds", "gauge", "Duration of the last HTTP request", traceMetrics.LastResponseTimeUs)

	metric("ledger_transactions", "gauge", "Transactions currently in the ledger", transactions)
	metric("ledger_recorded_total", "counter", "Transactions recorded", ledgerStats.Recorded)
	metric("ledger_record_failures_total", "counter", "Drafts the ledger failed to record", ledgerStats.RecordFailures)
	metric("ledger_removed_total", "counter", "Transactions removed", ledgerStats.Removed)
	metric("ledger_publish_failures_total", "counter", "Ledger events that could not be published", ledgerStats.PublishFailed)

	metric("entry_sessions", "gauge", "Entry flows held in the session cache", s.sessions.Size())
	metric("entry_opened_total", "counter", "Entry flows opened", s.metrics.entriesOpened.Load())
	metric("entry_submitted_total", "counter", "Entry flows submitted and recorded", s.metrics.entriesSubmitted.Load())
	metric("entry_rejected_total", "counter", "Entry submits rejected by validation", s.metrics.entriesRejected.Load())

	metric("rate_limit_hits_total", "counter", "Requests rejected by the rate limiter", rateLimitMetrics.TotalHits)
	metric("rate_limit_active_clients", "gauge", "Clients tracked by the rate limiter", rateLimitMetrics.ClientCount)

	metric("security_suspicious_requests_total", "counter", "Requests matching suspicious patterns", securityMetrics.SuspiciousRequests)
	metric("security_invalid_ip_total", "counter", "Forwarded client IPs that failed to parse", securityMetrics.InvalidIPAttempts)

	metric("uptime_seconds", "gauge", "Time since the server started", int64(time.Since(s.metrics.startedAt).Seconds()))
}
