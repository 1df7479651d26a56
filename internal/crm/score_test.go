package crm

import (
	"testing"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"
)

func intPtr(n int) *int { return &n }

func TestLeadScore(t *testing.T) {
	cases := []struct {
		name string
		info extract.LeadInfo
		want int
	}{
		{"base", extract.LeadInfo{Timeline: extract.TimelineExploring}, 50},
		{"immediate", extract.LeadInfo{Timeline: extract.TimelineImmediate}, 80},
		{"this_month", extract.LeadInfo{Timeline: extract.TimelineThisMonth}, 70},
		{"this_week has no bonus", extract.LeadInfo{Timeline: extract.TimelineThisWeek}, 50},
		{"budget over threshold", extract.LeadInfo{Timeline: extract.TimelineExploring, Budget: intPtr(30001)}, 65},
		{"budget at threshold has no bonus", extract.LeadInfo{Timeline: extract.TimelineExploring, Budget: intPtr(30000)}, 50},
		{"trade-in and financing", extract.LeadInfo{Timeline: extract.TimelineExploring, TradeIn: true, FinancingInterest: true}, 70},
		{
			"bonuses stack and cap at 100",
			extract.LeadInfo{Timeline: extract.TimelineImmediate, Budget: intPtr(40000), TradeIn: true},
			100, // 50+30+15+10 = 105 before the cap
		},
	}
	for _, c := range cases {
		if got := LeadScore(c.info); got != c.want {
			t.Errorf("%s: LeadScore = %d, want %d", c.name, got, c.want)
		}
	}
}
