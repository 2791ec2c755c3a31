package domain

import "errors"

// Validation errors shared by the generative request types.
var (
	// ErrUsernameRequired indicates a missing creator handle.
	ErrUsernameRequired = errors.New("username is required")

	// ErrFollowersInvalid indicates a non-positive follower count.
	ErrFollowersInvalid = errors.New("followers must be greater than zero")

	// ErrZodiacInvalid indicates an unrecognized sun sign.
	ErrZodiacInvalid = errors.New("zodiac must be one of the twelve sun signs")

	// ErrBirthDateRequired indicates a missing date of birth.
	ErrBirthDateRequired = errors.New("date of birth is required")
)

// InsightsRequest asks for a growth-strategy document for one creator.
// Optional fields left at their zero value are substituted with documented
// defaults by the prompt builder: Niche "general", Goals "grow audience",
// TargetFollowers 2x Followers, TimelineMonths 6.
type InsightsRequest struct {
	Username        string  `json:"username"`
	Platform        string  `json:"platform"`
	Followers       int64   `json:"followers"`
	EngagementRate  float64 `json:"engagement_rate"`
	Niche           string  `json:"niche,omitempty"`
	Goals           string  `json:"goals,omitempty"`
	TargetFollowers int64   `json:"target_followers,omitempty"`
	TimelineMonths  int     `json:"timeline_months,omitempty"`
}

// Validate checks the request fields that cannot be defaulted.
func (r *InsightsRequest) Validate() error {
	if r.Username == "" {
		return ErrUsernameRequired
	}
	if r.Followers <= 0 {
		return ErrFollowersInvalid
	}
	return nil
}

// GrowthPrediction carries the model's projected follower milestones.
type GrowthPrediction struct {
	Month1     int64  `json:"month_1"`
	Month3     int64  `json:"month_3"`
	Month6     int64  `json:"month_6"`
	Month12    int64  `json:"month_12"`
	Confidence string `json:"confidence"`
}

// InsightsResponse is the validated growth-strategy document.
// FeasibilityScore is computed locally after validation when the request
// carried a target and timeline; it is never model-generated.
type InsightsResponse struct {
	ProfileAnalysis  string              `json:"profile_analysis"`
	Mistakes         []string            `json:"mistakes"`
	DailyPlan        []string            `json:"daily_plan"`
	ContentIdeas     []string            `json:"content_ideas"`
	HookIdeas        []string            `json:"hook_ideas"`
	PostingSchedule  map[string][]string `json:"posting_schedule"`
	GrowthPrediction GrowthPrediction    `json:"growth_prediction"`
	FeasibilityScore *float64            `json:"feasibility_score,omitempty"`
}
