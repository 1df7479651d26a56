// Package tradein estimates trade-in value ranges for the
// check_trade_value tool. The numbers are a deterministic pilot
// heuristic, not a market appraisal; the appraisal desk gives the
// final figure.
package tradein

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Valuation is the estimated trade-in range handed back to the caller.
type Valuation struct {
	Min     int      `json:"estimated_value_min"`
	Max     int      `json:"estimated_value_max"`
	Average int      `json:"estimated_value_avg"`
	Factors []string `json:"factors"`
}

// Request mirrors the check_trade_value tool parameters as the agent
// registration declares them.
type Request struct {
	Year      int    `json:"year"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Mileage   int    `json:"mileage"`
	Condition string `json:"condition"`
}

var ErrUnknownCondition = errors.New("tradein: unknown condition")

const (
	baseValue         = 20000
	depreciationYear  = 1500
	normalMilesPerYr  = 12000
	excessMileRate    = 0.1
	rangeSpreadFactor = 0.1 // +-10% around the point estimate
)

var conditionMultipliers = map[string]float64{
	"excellent": 1.1,
	"good":      1.0,
	"fair":      0.85,
}

// Estimator computes valuations. The clock pins the model year used
// for depreciation.
type Estimator struct {
	clock func() time.Time
}

func NewEstimator() *Estimator {
	return &Estimator{clock: time.Now}
}

// SetClock overrides the time source. Test hook.
func (e *Estimator) SetClock(clock func() time.Time) { e.clock = clock }

// Estimate returns a valuation range for the described vehicle.
func (e *Estimator) Estimate(req Request) (Valuation, error) {
	condition := strings.ToLower(strings.TrimSpace(req.Condition))
	if condition == "" {
		condition = "good"
	}
	multiplier, ok := conditionMultipliers[condition]
	if !ok {
		return Valuation{}, fmt.Errorf("%w: %q", ErrUnknownCondition, req.Condition)
	}

	age := e.clock().Year() - req.Year
	if age < 0 {
		age = 0
	}

	value := float64(baseValue)
	value -= float64(age * depreciationYear)

	excessMiles := float64(req.Mileage - normalMilesPerYr)
	if excessMiles > 0 {
		value -= excessMiles * excessMileRate
	}

	value *= multiplier
	if value < 0 {
		value = 0
	}

	v := Valuation{
		Min:     int(math.Round(value * (1 - rangeSpreadFactor))),
		Max:     int(math.Round(value * (1 + rangeSpreadFactor))),
		Average: int(math.Round(value)),
		Factors: []string{"year", "mileage", "condition", "market_demand"},
	}
	return v, nil
}
