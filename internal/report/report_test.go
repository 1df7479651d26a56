package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
)

func TestBuild(t *testing.T) {
	now := time.Date(2025, time.June, 9, 8, 0, 0, 0, time.UTC)
	since := now.AddDate(0, 0, -7)

	activities := []crm.Activity{
		{Duration: 120, Outcome: "information_provided", Sentiment: "positive"},
		{Duration: 200, Outcome: "appointment_scheduled", Sentiment: "neutral", FollowUpRequired: true},
		{Duration: 90, Outcome: "information_provided", Sentiment: "neutral"},
	}
	leads := []crm.Lead{
		{Score: 100, Timeline: "immediate"},
		{Score: 50, Timeline: "exploring"},
	}

	s := Build(now, since, activities, leads)

	if s.TotalCalls != 3 || s.TotalDurationSecs != 410 {
		t.Fatalf("unexpected call totals: %+v", s)
	}
	if s.ByOutcome["information_provided"] != 2 || s.ByOutcome["appointment_scheduled"] != 1 {
		t.Fatalf("unexpected outcome counts: %v", s.ByOutcome)
	}
	if s.FollowUpsRequired != 1 {
		t.Fatalf("unexpected follow-up count: %d", s.FollowUpsRequired)
	}
	if s.TotalLeads != 2 || s.HighPriorityLeads != 1 {
		t.Fatalf("unexpected lead counts: %+v", s)
	}
	if s.AverageLeadScore != 75 {
		t.Fatalf("unexpected average score: %v", s.AverageLeadScore)
	}
}

func TestBuildEmpty(t *testing.T) {
	s := Build(time.Now(), time.Now(), nil, nil)
	if s.TotalCalls != 0 || s.TotalLeads != 0 || s.AverageLeadScore != 0 {
		t.Fatalf("empty build not zero: %+v", s)
	}
}

func TestWriteWorkbook(t *testing.T) {
	now := time.Date(2025, time.June, 9, 8, 0, 0, 0, time.UTC)
	s := Build(now, now.AddDate(0, 0, -7),
		[]crm.Activity{{Duration: 60, Outcome: "resolved", Sentiment: "positive"}},
		[]crm.Lead{{Score: 80, Timeline: "this_week"}},
	)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteWorkbook(path, s); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("workbook is empty")
	}
}
