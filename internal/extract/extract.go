// Package extract derives structured CRM fields from raw call transcripts.
//
// Every function here is pure and total: a non-matching transcript degrades
// to an empty value, never an error. The patterns are deliberately blunt.
// They reproduce the behavior the deployed agent pilot was tuned against,
// so "obvious" fixes (word boundaries, wider price grouping) are behavior
// changes and need sign-off from the dealership side first.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/calls"
)

// Timeline classifies how soon the caller intends to buy.
type Timeline string

const (
	TimelineImmediate Timeline = "immediate"
	TimelineThisWeek  Timeline = "this_week"
	TimelineThisMonth Timeline = "this_month"
	TimelineNextMonth Timeline = "next_month"
	TimelineExploring Timeline = "exploring"
)

// LeadInfo is the full set of lead-qualifying fields derived from a call.
type LeadInfo struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`

	// Interests holds "<year> <make> <model>" strings from inventory searches.
	Interests []string `json:"interests"`

	// Budget is in whole dollars; nil when no price-like token matched.
	Budget *int `json:"budget,omitempty"`

	Timeline Timeline `json:"timeline"`

	TradeIn           bool `json:"trade_in"`
	FinancingInterest bool `json:"financing_interest"`
}

// CustomerInfo is the customer-record subset used for CRM upserts.
type CustomerInfo struct {
	Phone           string            `json:"phone"`
	Name            string            `json:"name,omitempty"`
	Email           string            `json:"email,omitempty"`
	Preferences     map[string]string `json:"preferences"`
	VehicleInterest []string          `json:"vehicle_interest"`
}

var (
	namePattern  = regexp.MustCompile(`(?i)my name is ([A-Za-z]+ [A-Za-z]+)`)
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)

	// budgetPattern only captures amounts with a 1-3 digit group followed by
	// exactly three digits (optionally comma-separated): "$32,500", "28000".
	// Amounts under four digits or with unconventional grouping do not match.
	budgetPattern = regexp.MustCompile(`\$?(\d{1,3},?\d{3})`)
)

// Name returns the first "my name is <First> <Last>" match, or "".
func Name(transcript string) string {
	m := namePattern.FindStringSubmatch(transcript)
	if m == nil {
		return ""
	}
	return m[1]
}

// Email returns the first email-like token, or "".
func Email(transcript string) string {
	return emailPattern.FindString(transcript)
}

// Phone returns the first loosely-formatted 10-digit sequence, or "".
// Only the webhook-side lead extractor uses this; the CRM-side extractors
// take the caller's number from call metadata.
func Phone(transcript string) string {
	return phonePattern.FindString(transcript)
}

// Budget returns the first price-like amount in whole dollars, or nil.
func Budget(transcript string) *int {
	m := budgetPattern.FindStringSubmatch(transcript)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.Replace(m[1], ",", "", 1))
	if err != nil {
		return nil
	}
	return &n
}

// timelinePhrases is scanned in order; the first hit wins.
var timelinePhrases = []struct {
	phrase string
	t      Timeline
}{
	{"today", TimelineImmediate},
	{"now", TimelineImmediate},
	{"this week", TimelineThisWeek},
	{"this month", TimelineThisMonth},
	{"next month", TimelineNextMonth},
}

// Classify buckets the caller's purchase timeline by substring scan.
func Classify(transcript string) Timeline {
	lower := strings.ToLower(transcript)
	for _, p := range timelinePhrases {
		if strings.Contains(lower, p.phrase) {
			return p.t
		}
	}
	return TimelineExploring
}

// FinancingInterest reports whether the caller mentioned financing.
// Matches the stem "financ" so both "finance" and "financing" hit.
func FinancingInterest(transcript string) bool {
	return strings.Contains(strings.ToLower(transcript), "financ")
}

// VehicleInterest builds interest strings from an inventory search's
// parameters. Empty fields are omitted rather than leaving gaps.
func VehicleInterest(call calls.CallData) []string {
	if !call.HasTool(calls.ToolInventorySearch) {
		return nil
	}
	params := call.Params(calls.ToolInventorySearch)
	if params == nil {
		return nil
	}

	var parts []string
	if y := params.Int("year"); y > 0 {
		parts = append(parts, strconv.Itoa(y))
	}
	if mk := params.String("make"); mk != "" {
		parts = append(parts, mk)
	}
	if md := params.String("model"); md != "" {
		parts = append(parts, md)
	}
	if len(parts) == 0 {
		return nil
	}
	return []string{strings.Join(parts, " ")}
}

// Customer derives the customer-upsert fields for a completed call.
// The caller-supplied name from metadata wins over the transcript match.
func Customer(call calls.CallData) CustomerInfo {
	name := call.CustomerName
	if name == "" {
		name = Name(call.Transcript)
	}
	return CustomerInfo{
		Phone: call.CustomerPhone,
		Name:  name,
		Email: Email(call.Transcript),
		Preferences: map[string]string{
			"communication_channel": "voice",
			"best_time_to_call":     "morning",
		},
		VehicleInterest: VehicleInterest(call),
	}
}

// Lead derives the full lead-qualifying fields for a completed call.
// The name comes from call metadata only; lead records should not guess
// identity from transcript heuristics.
func Lead(call calls.CallData) LeadInfo {
	return LeadInfo{
		Name:              call.CustomerName,
		Phone:             call.CustomerPhone,
		Email:             Email(call.Transcript),
		Interests:         VehicleInterest(call),
		Budget:            Budget(call.Transcript),
		Timeline:          Classify(call.Transcript),
		TradeIn:           call.HasTool(calls.ToolCheckTradeValue),
		FinancingInterest: FinancingInterest(call.Transcript),
	}
}
