package crm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/phone"
)

// MemoryClient is an in-memory CRM for local runs and tests.
// Upserts are serialized under one mutex, which satisfies the atomic
// upsert-by-phone contract. Not intended for production.
type MemoryClient struct {
	mu sync.Mutex

	assigner AgentAssigner
	clock    func() time.Time

	customers  map[string]Customer // keyed by normalized phone
	activities []Activity
	leads      []Lead
	tasks      []FollowUpTask
}

func NewMemoryClient(assigner AgentAssigner) *MemoryClient {
	if assigner == nil {
		assigner = StaticAssigner{Agent: "agent1"}
	}
	return &MemoryClient{
		assigner:  assigner,
		clock:     time.Now,
		customers: make(map[string]Customer),
	}
}

// SetClock overrides the record timestamp source. Test hook.
func (m *MemoryClient) SetClock(clock func() time.Time) { m.clock = clock }

func newID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func (m *MemoryClient) FindCustomerByPhone(_ context.Context, number string) (Customer, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.customers[phone.NormalizeE164(number)]
	return c, ok, nil
}

func (m *MemoryClient) UpsertCustomer(_ context.Context, info extract.CustomerInfo) (Customer, error) {
	if strings.TrimSpace(info.Phone) == "" {
		return Customer{}, ErrPhoneRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock().UTC()
	key := phone.NormalizeE164(info.Phone)

	c, ok := m.customers[key]
	if !ok {
		c = Customer{
			ID:        newID("CUST"),
			Phone:     key,
			CreatedAt: now,
		}
	}

	// Partial updates: empty incoming fields never clear stored ones.
	if info.Name != "" {
		c.Name = info.Name
	}
	if info.Email != "" {
		c.Email = info.Email
	}
	if len(info.Preferences) > 0 {
		if c.Preferences == nil {
			c.Preferences = make(map[string]string, len(info.Preferences))
		}
		for k, v := range info.Preferences {
			c.Preferences[k] = v
		}
	}
	c.VehicleInterest = append(c.VehicleInterest, info.VehicleInterest...)
	c.LastContact = now
	c.UpdatedAt = now

	m.customers[key] = c
	return c, nil
}

func (m *MemoryClient) LogConversation(_ context.Context, log ConversationLog) (Activity, error) {
	if log.CustomerID == "" {
		return Activity{}, ErrCustomerIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a := Activity{
		ID:               newID("ACT"),
		CustomerID:       log.CustomerID,
		Type:             ActivityTypeVoiceCall,
		Duration:         log.Duration,
		Summary:          log.Summary,
		Sentiment:        log.Sentiment,
		Outcome:          log.Outcome,
		FollowUpRequired: log.FollowUpRequired,
		AgentType:        AgentTypeAIVoice,
		RecordingURL:     log.RecordingURL,
		CreatedAt:        m.clock().UTC(),
	}
	m.activities = append(m.activities, a)
	return a, nil
}

func (m *MemoryClient) CreateLead(_ context.Context, info extract.LeadInfo) (Lead, error) {
	if strings.TrimSpace(info.Phone) == "" {
		return Lead{}, ErrPhoneRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	l := Lead{
		ID:                newID("LEAD"),
		Source:            LeadSource,
		Status:            LeadStatusNew,
		Score:             LeadScore(info),
		Name:              info.Name,
		Phone:             phone.NormalizeE164(info.Phone),
		Email:             info.Email,
		Interests:         append([]string(nil), info.Interests...),
		Budget:            info.Budget,
		Timeline:          string(info.Timeline),
		TradeIn:           info.TradeIn,
		FinancingInterest: info.FinancingInterest,
		AssignedTo:        m.assigner.Assign(info),
		CreatedAt:         m.clock().UTC(),
	}
	m.leads = append(m.leads, l)
	return l, nil
}

func (m *MemoryClient) ScheduleFollowUp(_ context.Context, req FollowUpRequest) (FollowUpTask, error) {
	if req.CustomerID == "" {
		return FollowUpTask{}, ErrCustomerIDRequired
	}
	if req.LeadID == "" {
		return FollowUpTask{}, ErrLeadIDRequired
	}

	if req.Priority == "" {
		req.Priority = PriorityNormal
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := FollowUpTask{
		ID:           newID("TASK"),
		Type:         TaskTypeFollowUpCall,
		CustomerID:   req.CustomerID,
		LeadID:       req.LeadID,
		ScheduledFor: req.ScheduledFor,
		Priority:     req.Priority,
		Notes:        req.Notes,
		AssignedTo:   req.AssignedTo,
		CreatedAt:    m.clock().UTC(),
	}
	m.tasks = append(m.tasks, t)
	return t, nil
}

// Snapshot accessors for tests and the local dashboard.

func (m *MemoryClient) Activities() []Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Activity(nil), m.activities...)
}

func (m *MemoryClient) Leads() []Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Lead(nil), m.leads...)
}

func (m *MemoryClient) FollowUps() []FollowUpTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]FollowUpTask(nil), m.tasks...)
}
