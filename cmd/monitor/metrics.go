package main

import (
	"sync"
	"time"
)

// callEvent is the payload the telephony layer posts per call.
type callEvent struct {
	Status      string `json:"status"` // answered | abandoned
	Transferred bool   `json:"transferred"`
	AgentID     string `json:"agent_id"`
	Intent      string `json:"intent"`
	Duration    int    `json:"duration"`
	Error       string `json:"error"`
}

type agentStats struct {
	Calls         int `json:"calls"`
	TotalDuration int `json:"total_duration"`
}

type errorEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error"`
	AgentID   string    `json:"agent_id,omitempty"`
}

// metricsSnapshot is the /api/metrics response shape.
type metricsSnapshot struct {
	Calls struct {
		Total       int `json:"total"`
		Answered    int `json:"answered"`
		Abandoned   int `json:"abandoned"`
		Transferred int `json:"transferred"`
	} `json:"calls"`
	Agents          map[string]agentStats `json:"agents"`
	Intents         map[string]int        `json:"intents"`
	Errors          []errorEntry          `json:"errors"`
	AvgCallDuration float64               `json:"avg_call_duration"`
	UptimeSeconds   int                   `json:"uptime_seconds"`
	APIHealthy      bool                  `json:"api_healthy"`
}

// metrics accumulates call events in memory. The monitor is a live
// operations view, not a system of record; restarting it resets counts.
type metrics struct {
	mu sync.Mutex

	total       int
	answered    int
	abandoned   int
	transferred int

	agents  map[string]agentStats
	intents map[string]int
	errors  []errorEntry

	durationSum int

	started    time.Time
	apiHealthy bool
}

func newMetrics(now time.Time) *metrics {
	return &metrics{
		agents:  make(map[string]agentStats),
		intents: make(map[string]int),
		started: now,
	}
}

func (m *metrics) record(ev callEvent, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	switch ev.Status {
	case "answered":
		m.answered++
	case "abandoned":
		m.abandoned++
	}
	if ev.Transferred {
		m.transferred++
	}
	m.durationSum += ev.Duration

	if ev.AgentID != "" {
		s := m.agents[ev.AgentID]
		s.Calls++
		s.TotalDuration += ev.Duration
		m.agents[ev.AgentID] = s
	}
	if ev.Intent != "" {
		m.intents[ev.Intent]++
	}
	if ev.Error != "" {
		m.errors = append(m.errors, errorEntry{
			Timestamp: now.UTC(),
			Error:     ev.Error,
			AgentID:   ev.AgentID,
		})
	}
}

func (m *metrics) setAPIHealthy(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiHealthy = ok
}

func (m *metrics) snapshot(now time.Time) metricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s metricsSnapshot
	s.Calls.Total = m.total
	s.Calls.Answered = m.answered
	s.Calls.Abandoned = m.abandoned
	s.Calls.Transferred = m.transferred

	s.Agents = make(map[string]agentStats, len(m.agents))
	for k, v := range m.agents {
		s.Agents[k] = v
	}
	s.Intents = make(map[string]int, len(m.intents))
	for k, v := range m.intents {
		s.Intents[k] = v
	}
	s.Errors = append([]errorEntry(nil), m.errors...)

	if m.total > 0 {
		s.AvgCallDuration = float64(m.durationSum) / float64(m.total)
	}
	s.UptimeSeconds = int(now.Sub(m.started).Seconds())
	s.APIHealthy = m.apiHealthy
	return s
}
