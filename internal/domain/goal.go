package domain

import "errors"

// Goal planner validation errors.
var (
	// ErrCurrentFollowersInvalid indicates a non-positive current count.
	ErrCurrentFollowersInvalid = errors.New("current_followers must be greater than zero")

	// ErrTargetNotAboveCurrent indicates the target does not exceed the current count.
	ErrTargetNotAboveCurrent = errors.New("target_followers must be greater than current_followers")

	// ErrTimelineInvalid indicates a timeline outside 1-60 months.
	ErrTimelineInvalid = errors.New("timeline_months must be between 1 and 60")

	// ErrPostingFrequencyInvalid indicates posts/week outside 1-21.
	ErrPostingFrequencyInvalid = errors.New("posting_frequency must be between 1 and 21")
)

// GoalRequest describes a follower target for the deterministic planner.
type GoalRequest struct {
	CurrentFollowers int64  `json:"current_followers"`
	TargetFollowers  int64  `json:"target_followers"`
	TimelineMonths   int    `json:"timeline_months"`
	Niche            string `json:"niche"`
	PostingFrequency int    `json:"posting_frequency"` // posts per week
}

// Validate enforces the planner's input bounds.
func (r *GoalRequest) Validate() error {
	if r.CurrentFollowers <= 0 {
		return ErrCurrentFollowersInvalid
	}
	if r.TargetFollowers <= r.CurrentFollowers {
		return ErrTargetNotAboveCurrent
	}
	if r.TimelineMonths <= 0 || r.TimelineMonths > 60 {
		return ErrTimelineInvalid
	}
	if r.PostingFrequency < 1 || r.PostingFrequency > 21 {
		return ErrPostingFrequencyInvalid
	}
	return nil
}

// ProjectionPoint is one month of the goal projection curve.
type ProjectionPoint struct {
	Month     int   `json:"month"`
	Followers int64 `json:"followers"`
	Target    int64 `json:"target"`
}

// GoalResponse is the planner's deterministic output.
type GoalResponse struct {
	FeasibilityScore   float64           `json:"feasibility_score"`
	FeasibilityLabel   string            `json:"feasibility_label"`
	RequiredGrowthRate float64           `json:"required_growth_rate"` // percent per month
	Projection         []ProjectionPoint `json:"projection"`
	Recommendations    []string          `json:"recommendations"`
}
