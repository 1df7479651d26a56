// Package transfer routes callers who ask for a human to the right
// department line, and queues them when no one picks up immediately.
package transfer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Departments the voice agent can hand off to.
const (
	DepartmentSales     = "sales"
	DepartmentService   = "service"
	DepartmentFinance   = "finance"
	DepartmentAppraisal = "appraisal"
	DepartmentGeneral   = "general"
)

// defaultDIDs is the pilot dealership's department dial plan. Real
// numbers come from configuration.
var defaultDIDs = map[string]string{
	DepartmentSales:     "555-0101",
	DepartmentService:   "555-0102",
	DepartmentFinance:   "555-0103",
	DepartmentAppraisal: "555-0104",
	DepartmentGeneral:   "555-0100",
}

// Handoff describes where a transfer is going.
type Handoff struct {
	Department string `json:"department"`
	Number     string `json:"transfer_number"`
}

// QueuedCall is the fallback when the department line is busy.
type QueuedCall struct {
	QueueID       string `json:"queue_id"`
	Department    string `json:"department"`
	Position      int    `json:"position"`
	EstimatedWait string `json:"estimated_wait"`
}

// Router maps departments to their direct inward dial numbers.
type Router struct {
	dids map[string]string
}

// NewRouter builds a router from configured overrides layered over the
// pilot defaults. Unknown override keys are carried as-is so a
// dealership can add departments without a code change.
func NewRouter(overrides map[string]string) *Router {
	dids := make(map[string]string, len(defaultDIDs)+len(overrides))
	for dept, did := range defaultDIDs {
		dids[dept] = did
	}
	for dept, did := range overrides {
		if did != "" {
			dids[strings.ToLower(dept)] = did
		}
	}
	return &Router{dids: dids}
}

// Route resolves the department's number, falling back to the general
// line for departments it does not know.
func (r *Router) Route(department string) Handoff {
	dept := strings.ToLower(strings.TrimSpace(department))
	if did, ok := r.dids[dept]; ok {
		return Handoff{Department: dept, Number: did}
	}
	return Handoff{Department: DepartmentGeneral, Number: r.dids[DepartmentGeneral]}
}

// Queue places the caller in the department's hold queue. The pilot
// has no live queue depth feed, so position and wait are nominal.
func (r *Router) Queue(department string) QueuedCall {
	h := r.Route(department)
	return QueuedCall{
		QueueID:       fmt.Sprintf("Q_%s", strings.ReplaceAll(uuid.NewString(), "-", "")),
		Department:    h.Department,
		Position:      1,
		EstimatedWait: "30 seconds",
	}
}
