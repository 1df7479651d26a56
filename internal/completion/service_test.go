package completion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/calls"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/crm"
	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"
)

func TestSummary(t *testing.T) {
	call := calls.CallData{
		Duration:       120,
		ToolsTriggered: []string{calls.ToolScheduleService, calls.ToolInventorySearch},
	}
	want := "Customer searched inventory, scheduled service. Call duration: 120 seconds."
	if got := Summary(call); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDetermineOutcome_PriorityOrder(t *testing.T) {
	cases := []struct {
		name string
		call calls.CallData
		want Outcome
	}{
		{
			"service outranks transfer",
			calls.CallData{ToolsTriggered: []string{calls.ToolScheduleService, calls.ToolTransferToHuman}},
			OutcomeAppointmentScheduled,
		},
		{
			"transfer outranks resolution",
			calls.CallData{ToolsTriggered: []string{calls.ToolTransferToHuman}, Resolution: true},
			OutcomeTransferredToAgent,
		},
		{
			"resolution flag",
			calls.CallData{Resolution: true},
			OutcomeResolved,
		},
		{
			"default",
			calls.CallData{},
			OutcomeInformationProvided,
		},
	}
	for _, c := range cases {
		if got := DetermineOutcome(c.call); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestFollowUpDate(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	cases := []struct {
		timeline extract.Timeline
		wantDays int
	}{
		{extract.TimelineImmediate, 1},
		{extract.TimelineThisWeek, 3},
		{extract.TimelineThisMonth, 7},
		{extract.TimelineNextMonth, 14},
		{extract.TimelineExploring, 14},
	}
	for _, c := range cases {
		want := base.AddDate(0, 0, c.wantDays)
		if got := FollowUpDate(base, c.timeline); !got.Equal(want) {
			t.Errorf("%s: got %v, want %v", c.timeline, got, want)
		}
	}
}

func TestComplete_EndToEnd(t *testing.T) {
	fake := crm.NewMemoryClient(crm.StaticAssigner{Agent: "agent1"})
	svc := NewService(fake)
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	call := calls.CallData{
		CallID:         "conv_42",
		Duration:       95,
		CustomerPhone:  "+14155552671",
		Transcript:     "My name is Jane Doe, I'm looking today, budget $28,000",
		ToolsTriggered: []string{calls.ToolInventorySearch},
		Resolution:     false,
	}

	res, err := svc.Complete(context.Background(), call)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if res.CustomerID == "" || !res.CRMUpdated {
		t.Fatalf("unexpected result: %+v", res)
	}

	// inventory_search qualifies; immediate timeline pushes score to 80
	leads := fake.Leads()
	if len(leads) != 1 {
		t.Fatalf("expected one lead, got %d", len(leads))
	}
	if leads[0].Score != 80 {
		t.Fatalf("got score %d, want 80", leads[0].Score)
	}
	if leads[0].Timeline != string(extract.TimelineImmediate) {
		t.Fatalf("got timeline %q", leads[0].Timeline)
	}

	acts := fake.Activities()
	if len(acts) != 1 {
		t.Fatalf("expected one activity, got %d", len(acts))
	}
	if acts[0].Outcome != string(OutcomeInformationProvided) {
		t.Fatalf("got outcome %q", acts[0].Outcome)
	}
	if acts[0].CustomerID != res.CustomerID {
		t.Fatalf("activity must reference the upserted customer")
	}

	// no follow-up trigger phrase in the transcript, so no task
	if len(fake.FollowUps()) != 0 {
		t.Fatalf("unexpected follow-up: %+v", fake.FollowUps())
	}
	if res.FollowUpID != "" {
		t.Fatalf("unexpected follow-up id in result")
	}
}

func TestComplete_SchedulesFollowUpForHotLead(t *testing.T) {
	fake := crm.NewMemoryClient(crm.StaticAssigner{Agent: "agent3"})
	svc := NewService(fake)
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	call := calls.CallData{
		CallID:         "conv_43",
		Duration:       240,
		CustomerPhone:  "+14155552671",
		CustomerName:   "Jane Doe",
		Transcript:     "I want one today, budget $40,000, please call me back",
		ToolsTriggered: []string{calls.ToolInventorySearch, calls.ToolCheckTradeValue},
		ToolParameters: map[string]calls.ToolParams{
			calls.ToolInventorySearch: {"year": float64(2024), "make": "Toyota", "model": "RAV4"},
		},
	}

	res, err := svc.Complete(context.Background(), call)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.LeadID == "" || res.FollowUpID == "" {
		t.Fatalf("expected lead and follow-up: %+v", res)
	}

	// 50 +30 immediate +15 budget +10 trade-in = 105, capped
	leads := fake.Leads()
	if leads[0].Score != 100 {
		t.Fatalf("got score %d, want 100", leads[0].Score)
	}

	tasks := fake.FollowUps()
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Priority != crm.PriorityHigh {
		t.Fatalf("score 100 must schedule high priority, got %q", task.Priority)
	}
	if !task.ScheduledFor.Equal(now.AddDate(0, 0, 1)) {
		t.Fatalf("immediate timeline must schedule +1 day, got %v", task.ScheduledFor)
	}
	if task.LeadID != res.LeadID || task.CustomerID != res.CustomerID {
		t.Fatalf("task must link the lead and customer from this call: %+v", task)
	}
	if !strings.Contains(task.Notes, "2024 Toyota RAV4") {
		t.Fatalf("notes must reference interests, got %q", task.Notes)
	}
	if task.AssignedTo != "agent3" {
		t.Fatalf("task inherits the lead's agent, got %q", task.AssignedTo)
	}
}

func TestComplete_NoLeadWithoutQualifyingTool(t *testing.T) {
	fake := crm.NewMemoryClient(nil)
	svc := NewService(fake)

	call := calls.CallData{
		CallID:         "conv_44",
		CustomerPhone:  "+14155552671",
		Transcript:     "please call me back", // follow-up requested but nothing qualifies
		ToolsTriggered: []string{calls.ToolScheduleService},
	}

	res, err := svc.Complete(context.Background(), call)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.LeadID != "" {
		t.Fatalf("schedule_service alone must not create a lead")
	}
	// the follow-up invariant: no lead means no task, even when requested
	if len(fake.FollowUps()) != 0 {
		t.Fatalf("follow-up without a lead violates the invariant")
	}
}

// failingCRM wraps the memory client and fails a chosen step.
type failingCRM struct {
	*crm.MemoryClient
	failLog bool
}

var errCRMDown = errors.New("crm down")

func (f *failingCRM) LogConversation(ctx context.Context, log crm.ConversationLog) (crm.Activity, error) {
	if f.failLog {
		return crm.Activity{}, errCRMDown
	}
	return f.MemoryClient.LogConversation(ctx, log)
}

func TestComplete_CollaboratorFailureAborts(t *testing.T) {
	fake := &failingCRM{MemoryClient: crm.NewMemoryClient(nil), failLog: true}
	svc := NewService(fake)

	call := calls.CallData{
		CallID:         "conv_45",
		CustomerPhone:  "+14155552671",
		ToolsTriggered: []string{calls.ToolInventorySearch},
	}

	_, err := svc.Complete(context.Background(), call)
	if !errors.Is(err, errCRMDown) {
		t.Fatalf("expected wrapped collaborator error, got %v", err)
	}

	// earlier write (the upsert) is not rolled back, later steps never ran
	if _, ok, _ := fake.FindCustomerByPhone(context.Background(), "+14155552671"); !ok {
		t.Fatalf("upsert from the aborted run should remain")
	}
	if len(fake.Leads()) != 0 {
		t.Fatalf("lead step must not run after a failure")
	}
}
