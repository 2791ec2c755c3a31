package llm

import "math"

// Feasibility score bounds.
const (
	feasibilityFloor   = 5.0
	feasibilityCeiling = 100.0

	// easyMonthlyRatePct is the monthly growth rate, in percent, at or below
	// which a goal scores the full 100. Past it the score decreases by three
	// points per extra percent of required monthly growth.
	easyMonthlyRatePct = 5.0
	ratePenaltySlope   = 3.0
)

// feasibilityScore derives a goal-feasibility score from the ratio of
// requested growth to current scale and the requested timeline. Deterministic
// arithmetic, no generative input: identical triples always yield the
// identical score, rounded to one decimal and clamped into [5,100].
func feasibilityScore(current, target int64, months int) float64 {
	monthlyRate := (float64(target-current) / float64(current)) / float64(months)

	raw := feasibilityCeiling - math.Max(0, (monthlyRate*100-easyMonthlyRatePct)*ratePenaltySlope)
	score := math.Max(feasibilityFloor, math.Min(feasibilityCeiling, raw))
	return math.Round(score*10) / 10
}
