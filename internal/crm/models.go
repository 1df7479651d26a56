package crm

import "time"

// CRM record shapes. The CRM owns these; the completion pipeline only
// references them by id after creation.

const (
	LeadSource    = "voice_ai"
	LeadStatusNew = "new"

	ActivityTypeVoiceCall = "voice_call"
	AgentTypeAIVoice      = "ai_voice"

	TaskTypeFollowUpCall = "follow_up_call"

	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// Customer is keyed by phone number: upserts match on the normalized
// phone and update in place, so one caller maps to one record.
type Customer struct {
	ID    string `json:"id" db:"id"`
	Phone string `json:"phone" db:"phone"`
	Name  string `json:"name,omitempty" db:"name"`
	Email string `json:"email,omitempty" db:"email"`

	Preferences     map[string]string `json:"preferences,omitempty" db:"preferences"`
	VehicleInterest []string          `json:"vehicle_interest,omitempty" db:"vehicle_interest"`

	LastContact time.Time `json:"last_contact" db:"last_contact"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Activity is an append-only conversation log entry on a customer.
// Activities are never updated or deleted.
type Activity struct {
	ID         string `json:"id" db:"id"`
	CustomerID string `json:"customer_id" db:"customer_id"`

	Type string `json:"type" db:"type"`

	Duration         int    `json:"duration" db:"duration"`
	Summary          string `json:"summary" db:"summary"`
	Sentiment        string `json:"sentiment" db:"sentiment"`
	Outcome          string `json:"outcome" db:"outcome"`
	FollowUpRequired bool   `json:"follow_up_required" db:"follow_up_required"`

	AgentType    string `json:"agent_type" db:"agent_type"`
	RecordingURL string `json:"recording_url,omitempty" db:"recording_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Lead is created at most once per qualifying call and never updated by
// the completion pipeline afterwards.
type Lead struct {
	ID     string `json:"id" db:"id"`
	Source string `json:"source" db:"source"`
	Status string `json:"status" db:"status"`

	// Score is in [0,100]; see LeadScore.
	Score int `json:"score" db:"score"`

	Name  string `json:"name,omitempty" db:"name"`
	Phone string `json:"phone" db:"phone"`
	Email string `json:"email,omitempty" db:"email"`

	Interests []string `json:"interests,omitempty" db:"interests"`
	Budget    *int     `json:"budget,omitempty" db:"budget"`
	Timeline  string   `json:"timeline" db:"timeline"`

	TradeIn           bool `json:"trade_in" db:"trade_in"`
	FinancingInterest bool `json:"financing_interest" db:"financing_interest"`

	AssignedTo string `json:"assigned_to" db:"assigned_to"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FollowUpTask links a customer and the lead that justified the task.
// Invariant: a task exists only when a lead was created for the same call.
type FollowUpTask struct {
	ID         string `json:"id" db:"id"`
	Type       string `json:"type" db:"type"`
	CustomerID string `json:"customer_id" db:"customer_id"`
	LeadID     string `json:"lead_id" db:"lead_id"`

	ScheduledFor time.Time `json:"scheduled_for" db:"scheduled_for"`
	Priority     string    `json:"priority" db:"priority"`
	Notes        string    `json:"notes,omitempty" db:"notes"`
	AssignedTo   string    `json:"assigned_to" db:"assigned_to"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
