package crm

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"
	"github.com/MichaelCrowe11/dealer-logic-pilot/pkg/phone"
)

// PostgresClient persists CRM records in Postgres via database/sql (pgx stdlib).
//
// NOTE: This client assumes the following tables exist:
// - customers        (phone UNIQUE, the upsert natural key)
// - activities       (immutable append-only)
// - leads            (immutable after insert)
// - follow_up_tasks
//
// Preferences and interest lists are stored as JSONB; no read path in this
// service needs to query inside them.
type PostgresClient struct {
	db       *sql.DB
	assigner AgentAssigner
	clock    func() time.Time
}

func NewPostgresClient(db *sql.DB, assigner AgentAssigner) *PostgresClient {
	if assigner == nil {
		assigner = StaticAssigner{Agent: "agent1"}
	}
	return &PostgresClient{db: db, assigner: assigner, clock: time.Now}
}

// SetClock overrides the record timestamp source. Test hook.
func (p *PostgresClient) SetClock(clock func() time.Time) { p.clock = clock }

func (p *PostgresClient) FindCustomerByPhone(ctx context.Context, number string) (Customer, bool, error) {
	const q = `
SELECT id, phone, name, email, preferences, vehicle_interest, last_contact, created_at, updated_at
FROM customers
WHERE phone = $1
`
	c, err := scanCustomer(p.db.QueryRowContext(ctx, q, phone.NormalizeE164(number)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, false, nil
		}
		return Customer{}, false, err
	}
	return c, true, nil
}

func (p *PostgresClient) UpsertCustomer(ctx context.Context, info extract.CustomerInfo) (Customer, error) {
	if strings.TrimSpace(info.Phone) == "" {
		return Customer{}, ErrPhoneRequired
	}

	now := p.clock().UTC()
	key := phone.NormalizeE164(info.Phone)

	prefs, err := json.Marshal(info.Preferences)
	if err != nil {
		return Customer{}, err
	}
	interests, err := json.Marshal(info.VehicleInterest)
	if err != nil {
		return Customer{}, err
	}

	// COALESCE/NULLIF keep partial upserts from clearing stored fields;
	// interest history appends rather than replaces.
	const q = `
INSERT INTO customers (id, phone, name, email, preferences, vehicle_interest, last_contact, created_at, updated_at)
VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),$5,$6,$7,$7,$7)
ON CONFLICT (phone)
DO UPDATE SET name             = COALESCE(NULLIF(EXCLUDED.name, ''), customers.name),
              email            = COALESCE(NULLIF(EXCLUDED.email, ''), customers.email),
              preferences      = customers.preferences || EXCLUDED.preferences,
              vehicle_interest = customers.vehicle_interest || EXCLUDED.vehicle_interest,
              last_contact     = EXCLUDED.last_contact,
              updated_at       = EXCLUDED.updated_at
RETURNING id, phone, name, email, preferences, vehicle_interest, last_contact, created_at, updated_at
`
	return scanCustomer(p.db.QueryRowContext(ctx, q,
		newID("CUST"), key, info.Name, info.Email, prefs, interests, now,
	))
}

func (p *PostgresClient) LogConversation(ctx context.Context, log ConversationLog) (Activity, error) {
	if log.CustomerID == "" {
		return Activity{}, ErrCustomerIDRequired
	}

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
		CreatedAt:        p.clock().UTC(),
	}

	const q = `
INSERT INTO activities (id, customer_id, type, duration, summary, sentiment, outcome, follow_up_required, agent_type, recording_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`
	if _, err := p.db.ExecContext(ctx, q,
		a.ID, a.CustomerID, a.Type, a.Duration, a.Summary, a.Sentiment,
		a.Outcome, a.FollowUpRequired, a.AgentType, a.RecordingURL, a.CreatedAt,
	); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (p *PostgresClient) CreateLead(ctx context.Context, info extract.LeadInfo) (Lead, error) {
	if strings.TrimSpace(info.Phone) == "" {
		return Lead{}, ErrPhoneRequired
	}

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
		AssignedTo:        p.assigner.Assign(info),
		CreatedAt:         p.clock().UTC(),
	}

	interests, err := json.Marshal(l.Interests)
	if err != nil {
		return Lead{}, err
	}

	var budget sql.NullInt64
	if l.Budget != nil {
		budget = sql.NullInt64{Int64: int64(*l.Budget), Valid: true}
	}

	const q = `
INSERT INTO leads (id, source, status, score, name, phone, email, interests, budget, timeline, trade_in, financing_interest, assigned_to, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`
	if _, err := p.db.ExecContext(ctx, q,
		l.ID, l.Source, l.Status, l.Score, l.Name, l.Phone, l.Email,
		interests, budget, l.Timeline, l.TradeIn, l.FinancingInterest,
		l.AssignedTo, l.CreatedAt,
	); err != nil {
		return Lead{}, err
	}
	return l, nil
}

func (p *PostgresClient) ScheduleFollowUp(ctx context.Context, req FollowUpRequest) (FollowUpTask, error) {
	if req.CustomerID == "" {
		return FollowUpTask{}, ErrCustomerIDRequired
	}
	if req.LeadID == "" {
		return FollowUpTask{}, ErrLeadIDRequired
	}
	if req.Priority == "" {
		req.Priority = PriorityNormal
	}

	t := FollowUpTask{
		ID:           newID("TASK"),
		Type:         TaskTypeFollowUpCall,
		CustomerID:   req.CustomerID,
		LeadID:       req.LeadID,
		ScheduledFor: req.ScheduledFor,
		Priority:     req.Priority,
		Notes:        req.Notes,
		AssignedTo:   req.AssignedTo,
		CreatedAt:    p.clock().UTC(),
	}

	const q = `
INSERT INTO follow_up_tasks (id, type, customer_id, lead_id, scheduled_for, priority, notes, assigned_to, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
	if _, err := p.db.ExecContext(ctx, q,
		t.ID, t.Type, t.CustomerID, t.LeadID, t.ScheduledFor, t.Priority,
		t.Notes, t.AssignedTo, t.CreatedAt,
	); err != nil {
		return FollowUpTask{}, err
	}
	return t, nil
}

func scanCustomer(row *sql.Row) (Customer, error) {
	var (
		c         Customer
		name      sql.NullString
		email     sql.NullString
		prefs     []byte
		interests []byte
	)
	if err := row.Scan(
		&c.ID, &c.Phone, &name, &email, &prefs, &interests,
		&c.LastContact, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return Customer{}, err
	}
	c.Name = name.String
	c.Email = email.String
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &c.Preferences); err != nil {
			return Customer{}, err
		}
	}
	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &c.VehicleInterest); err != nil {
			return Customer{}, err
		}
	}
	return c, nil
}
