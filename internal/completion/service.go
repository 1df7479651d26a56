// Package completion drives the post-call CRM pipeline: analytics,
// customer upsert, conversation logging, lead creation, and follow-up
// scheduling, in that fixed order.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/analytics"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/calls"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"
)

// Outcome is the one-word disposition reported to the CRM.
type Outcome string

const (
	OutcomeAppointmentScheduled Outcome = "appointment_scheduled"
	OutcomeTransferredToAgent   Outcome = "transferred_to_agent"
	OutcomeResolved             Outcome = "resolved"
	OutcomeInformationProvided  Outcome = "information_provided"
)

// Result is returned to the webhook caller after a successful run.
type Result struct {
	CustomerID string              `json:"customer_id"`
	Analytics  analytics.Analytics `json:"analytics"`
	CRMUpdated bool                `json:"crm_updated"`

	LeadID     string `json:"lead_id,omitempty"`
	FollowUpID string `json:"follow_up_id,omitempty"`
}

// Service runs the completion pipeline against an injected CRM client.
//
// There is no retry or compensation: the first collaborator failure aborts
// the remaining steps and earlier CRM writes stay in place. Re-delivery of
// the same call leans on the CRM's upsert semantics, not on this service.
type Service struct {
	crm   crm.Client
	clock func() time.Time
}

func NewService(client crm.Client) *Service {
	return &Service{crm: client, clock: time.Now}
}

// SetClock overrides the follow-up date base. Test hook.
func (s *Service) SetClock(clock func() time.Time) { s.clock = clock }

// leadQualifyingTools are the buying-interest signals that justify a lead.
var leadQualifyingTools = []string{
	calls.ToolInventorySearch,
	calls.ToolCheckTradeValue,
	calls.ToolFinancing,
}

// Complete processes one finished call. Steps run strictly in order and
// each CRM failure is fatal to the whole request.
func (s *Service) Complete(ctx context.Context, call calls.CallData) (Result, error) {
	a := analytics.Analyze(call)

	customer, err := s.crm.UpsertCustomer(ctx, extract.Customer(call))
	if err != nil {
		return Result{}, fmt.Errorf("completion: upsert customer: %w", err)
	}

	if _, err := s.crm.LogConversation(ctx, crm.ConversationLog{
		CustomerID:       customer.ID,
		ConversationID:   call.CallID,
		Duration:         a.Duration,
		Summary:          Summary(call),
		Sentiment:        string(a.CustomerSentiment),
		Outcome:          string(DetermineOutcome(call)),
		FollowUpRequired: a.FollowUpRequired,
		RecordingURL:     call.RecordingURL,
	}); err != nil {
		return Result{}, fmt.Errorf("completion: log conversation: %w", err)
	}

	res := Result{
		CustomerID: customer.ID,
		Analytics:  a,
		CRMUpdated: true,
	}

	if !ShouldCreateLead(call) {
		return res, nil
	}

	info := extract.Lead(call)
	lead, err := s.crm.CreateLead(ctx, info)
	if err != nil {
		return Result{}, fmt.Errorf("completion: create lead: %w", err)
	}
	res.LeadID = lead.ID

	if !a.FollowUpRequired {
		return res, nil
	}

	priority := crm.PriorityNormal
	if lead.Score > 70 {
		priority = crm.PriorityHigh
	}
	task, err := s.crm.ScheduleFollowUp(ctx, crm.FollowUpRequest{
		CustomerID:   customer.ID,
		LeadID:       lead.ID,
		ScheduledFor: FollowUpDate(s.clock().UTC(), info.Timeline),
		Priority:     priority,
		Notes:        fmt.Sprintf("Follow up on %s", strings.Join(info.Interests, ", ")),
		AssignedTo:   lead.AssignedTo,
	})
	if err != nil {
		return Result{}, fmt.Errorf("completion: schedule follow-up: %w", err)
	}
	res.FollowUpID = task.ID

	return res, nil
}

// summaryPhrases maps tool names to the summary line fragments, in the
// order they appear in the sentence.
var summaryPhrases = []struct {
	tool   string
	phrase string
}{
	{calls.ToolInventorySearch, "searched inventory"},
	{calls.ToolScheduleService, "scheduled service"},
	{calls.ToolCheckTradeValue, "inquired about trade-in"},
	{calls.ToolTransferToHuman, "transferred to agent"},
}

// Summary renders the deterministic one-line call summary.
func Summary(call calls.CallData) string {
	var actions []string
	for _, p := range summaryPhrases {
		if call.HasTool(p.tool) {
			actions = append(actions, p.phrase)
		}
	}
	return fmt.Sprintf("Customer %s. Call duration: %d seconds.", strings.Join(actions, ", "), call.Duration)
}

// DetermineOutcome applies the disposition rules in priority order; only
// the first matching rule counts.
func DetermineOutcome(call calls.CallData) Outcome {
	switch {
	case call.HasTool(calls.ToolScheduleService):
		return OutcomeAppointmentScheduled
	case call.HasTool(calls.ToolTransferToHuman):
		return OutcomeTransferredToAgent
	case call.Resolution:
		return OutcomeResolved
	default:
		return OutcomeInformationProvided
	}
}

// ShouldCreateLead reports whether the call triggered any buying-interest tool.
func ShouldCreateLead(call calls.CallData) bool {
	for _, tool := range leadQualifyingTools {
		if call.HasTool(tool) {
			return true
		}
	}
	return false
}

// FollowUpDate derives the follow-up date from the buying timeline.
// Anything outside the three near-term buckets, next_month included,
// lands fourteen days out.
func FollowUpDate(now time.Time, timeline extract.Timeline) time.Time {
	days := 14
	switch timeline {
	case extract.TimelineImmediate:
		days = 1
	case extract.TimelineThisWeek:
		days = 3
	case extract.TimelineThisMonth:
		days = 7
	}
	return now.AddDate(0, 0, days)
}
