package crm

import "github.com/MichaelCrowe11/dealer-logic-pilot/internal/extract"

// LeadScore rates a lead in [0,100] from its qualifying signals.
//
// The bonuses are additive and not mutually exclusive; the raw total can
// exceed 100 before the cap (immediate + high budget + trade-in already
// reaches 105). Whether that weighting is intentional is an open question
// inherited from the pilot; the cap is the observed behavior.
func LeadScore(info extract.LeadInfo) int {
	score := 50

	switch info.Timeline {
	case extract.TimelineImmediate:
		score += 30
	case extract.TimelineThisMonth:
		score += 20
	}
	if info.Budget != nil && *info.Budget > 30000 {
		score += 15
	}
	if info.TradeIn {
		score += 10
	}
	if info.FinancingInterest {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
