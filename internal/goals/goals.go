// Package goals implements the deterministic goal feasibility planner.
// Pure arithmetic from the request fields: no generative input, no I/O,
// identical requests always produce identical plans.
package goals

import (
	"fmt"
	"math"

	"github.com/astroforge/astroforge/internal/domain"
)

// Score bands by required monthly growth rate, from easiest to hardest.
var bands = []struct {
	maxRate float64
	score   float64
	label   string
}{
	{0.05, 95.0, "Highly Achievable"},
	{0.10, 80.0, "Achievable"},
	{0.20, 60.0, "Challenging"},
	{0.40, 38.0, "Very Challenging"},
	{math.Inf(1), 18.0, "Extremely Ambitious"},
}

// realisticFraction discounts the needed growth rate for the projection
// curve, accounting for real-world variance.
const realisticFraction = 0.85

const maxRecommendations = 6

// Calculate produces the feasibility plan for a follower target.
// The request must already be validated.
func Calculate(req *domain.GoalRequest) *domain.GoalResponse {
	needed := req.TargetFollowers - req.CurrentFollowers
	monthlyRate := (float64(needed) / float64(req.CurrentFollowers)) / float64(req.TimelineMonths)

	var score float64
	var label string
	for _, b := range bands {
		if monthlyRate <= b.maxRate {
			score, label = b.score, b.label
			break
		}
	}

	// Posting frequency adjustments.
	switch {
	case req.PostingFrequency >= 14:
		score = math.Min(100.0, score+12.0)
	case req.PostingFrequency >= 7:
		score = math.Min(100.0, score+7.0)
	case req.PostingFrequency >= 5:
		score = math.Min(100.0, score+3.0)
	case req.PostingFrequency <= 2:
		score = math.Max(5.0, score-10.0)
	}
	score = math.Round(score*10) / 10

	return &domain.GoalResponse{
		FeasibilityScore:   score,
		FeasibilityLabel:   label,
		RequiredGrowthRate: math.Round(monthlyRate*100*100) / 100,
		Projection:         project(req, needed, monthlyRate),
		Recommendations:    recommend(req, monthlyRate),
	}
}

// project builds the month-by-month curve: the compounding realistic path
// alongside the linear target path.
func project(req *domain.GoalRequest, needed int64, monthlyRate float64) []domain.ProjectionPoint {
	realisticMonthly := monthlyRate * realisticFraction
	points := make([]domain.ProjectionPoint, 0, req.TimelineMonths+1)
	current := float64(req.CurrentFollowers)
	for month := 0; month <= req.TimelineMonths; month++ {
		points = append(points, domain.ProjectionPoint{
			Month:     month,
			Followers: int64(math.Round(current)),
			Target:    req.CurrentFollowers + needed*int64(month)/int64(req.TimelineMonths),
		})
		current *= 1 + realisticMonthly
	}
	return points
}

func recommend(req *domain.GoalRequest, monthlyRate float64) []string {
	var recs []string

	if monthlyRate > 0.30 {
		recs = append(recs, fmt.Sprintf(
			"Your target requires %.1f%% monthly growth — consider extending your timeline or lowering the target to avoid burnout.",
			monthlyRate*100))
	}

	if req.PostingFrequency < 5 {
		recs = append(recs, fmt.Sprintf(
			"Posting %dx/week is below the recommended minimum of 5x. Increasing frequency will significantly improve feasibility.",
			req.PostingFrequency))
	}

	recs = append(recs,
		fmt.Sprintf("Focus 80%% of content on proven %s formats that already perform in your niche.", req.Niche),
		"Run monthly collabs with 2-3 creators at a similar follower count for free cross-exposure.",
		"Invest time in thumbnail and hook quality — the first 3 seconds determine 70% of watch time.",
		"Engage authentically in comments for 30 minutes after each post — this boosts algorithm reach.",
		"Track your top 3 performing posts weekly and double down on those formats.",
	)

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
