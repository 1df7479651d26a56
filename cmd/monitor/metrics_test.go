package main

import (
	"testing"
	"time"
)

func TestMetricsRecordAndSnapshot(t *testing.T) {
	start := time.Date(2025, time.June, 9, 8, 0, 0, 0, time.UTC)
	m := newMetrics(start)

	m.record(callEvent{Status: "answered", AgentID: "agent.sales", Intent: "inventory", Duration: 120}, start)
	m.record(callEvent{Status: "answered", Transferred: true, AgentID: "agent.sales", Intent: "service", Duration: 60}, start)
	m.record(callEvent{Status: "abandoned", Error: "no audio", AgentID: "agent.reception"}, start)

	s := m.snapshot(start.Add(90 * time.Second))

	if s.Calls.Total != 3 || s.Calls.Answered != 2 || s.Calls.Abandoned != 1 || s.Calls.Transferred != 1 {
		t.Fatalf("unexpected call counters: %+v", s.Calls)
	}
	if s.Agents["agent.sales"].Calls != 2 || s.Agents["agent.sales"].TotalDuration != 180 {
		t.Fatalf("unexpected agent stats: %+v", s.Agents)
	}
	if s.Intents["inventory"] != 1 || s.Intents["service"] != 1 {
		t.Fatalf("unexpected intents: %v", s.Intents)
	}
	if len(s.Errors) != 1 || s.Errors[0].Error != "no audio" {
		t.Fatalf("unexpected errors: %+v", s.Errors)
	}
	if s.AvgCallDuration != 60 {
		t.Fatalf("unexpected avg duration: %v", s.AvgCallDuration)
	}
	if s.UptimeSeconds != 90 {
		t.Fatalf("unexpected uptime: %d", s.UptimeSeconds)
	}
}
