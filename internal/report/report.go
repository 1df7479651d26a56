// Package report aggregates logged call activity and leads into the
// pilot's weekly summary workbook.
package report

import (
	"time"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
)

// Summary is the aggregate view exported to the dealership.
type Summary struct {
	GeneratedAt time.Time
	Since       time.Time

	TotalCalls        int
	TotalDurationSecs int
	FollowUpsRequired int
	ByOutcome         map[string]int
	BySentiment       map[string]int

	TotalLeads        int
	HighPriorityLeads int // score above the high-priority threshold
	AverageLeadScore  float64
	ByTimeline        map[string]int
}

// highPriorityScore matches the follow-up prioritization cutoff.
const highPriorityScore = 70

// Build aggregates raw CRM records. Pure; the caller picks the window.
func Build(generatedAt, since time.Time, activities []crm.Activity, leads []crm.Lead) Summary {
	s := Summary{
		GeneratedAt: generatedAt,
		Since:       since,
		ByOutcome:   make(map[string]int),
		BySentiment: make(map[string]int),
		ByTimeline:  make(map[string]int),
	}

	for _, a := range activities {
		s.TotalCalls++
		s.TotalDurationSecs += a.Duration
		s.ByOutcome[a.Outcome]++
		s.BySentiment[a.Sentiment]++
		if a.FollowUpRequired {
			s.FollowUpsRequired++
		}
	}

	var scoreSum int
	for _, l := range leads {
		s.TotalLeads++
		scoreSum += l.Score
		if l.Score > highPriorityScore {
			s.HighPriorityLeads++
		}
		s.ByTimeline[l.Timeline]++
	}
	if s.TotalLeads > 0 {
		s.AverageLeadScore = float64(scoreSum) / float64(s.TotalLeads)
	}

	return s
}
