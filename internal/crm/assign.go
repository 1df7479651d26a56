package crm

import (
	"math/rand"

	"github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"
)

// AgentAssigner picks the sales agent a new lead is routed to.
// Injected so lead-assignment tests stay reproducible.
type AgentAssigner interface {
	Assign(info extract.LeadInfo) string
}

// RandomAssigner spreads leads over a fixed agent pool.
type RandomAssigner struct {
	pool []string
	intn func(n int) int
}

// NewRandomAssigner builds an assigner over pool. A nil intn uses the
// package-level math/rand source.
func NewRandomAssigner(pool []string, intn func(n int) int) *RandomAssigner {
	if intn == nil {
		intn = rand.Intn
	}
	return &RandomAssigner{pool: append([]string(nil), pool...), intn: intn}
}

func (a *RandomAssigner) Assign(extract.LeadInfo) string {
	if len(a.pool) == 0 {
		return ""
	}
	return a.pool[a.intn(len(a.pool))]
}

// StaticAssigner always returns the same agent. Test double.
type StaticAssigner struct {
	Agent string
}

func (a StaticAssigner) Assign(extract.LeadInfo) string { return a.Agent }
