package domain

// RiskProfile classifies a creator's risk posture as read from the palm.
// Unrecognized model output is normalized to RiskModerate by the validator.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// PalmResponse is the validated standalone palm reading. Score fields are
// always within [1,100] by the time a caller sees them.
type PalmResponse struct {
	PersonalityTraits  []string    `json:"personality_traits"`
	RiskProfile        RiskProfile `json:"risk_profile"`
	CreativityScore    int         `json:"creativity_score"`
	LeadershipScore    int         `json:"leadership_score"`
	CommunicationScore int         `json:"communication_score"`
	Summary            string      `json:"summary"`
}

// ZodiacReading is the astrology section of a combined creator analysis.
type ZodiacReading struct {
	Personality     string   `json:"personality"`
	GoodTimings     []string `json:"good_timings"`
	BadTimings      []string `json:"bad_timings"`
	GoodDays        []string `json:"good_days"`
	BadDays         []string `json:"bad_days"`
	MonthlyForecast string   `json:"monthly_forecast"`
	Remedies        []string `json:"remedies"`
}

// PalmReading is the palm section of a combined creator analysis.
type PalmReading struct {
	OverallReading   string   `json:"overall_reading"`
	CreativityScore  int      `json:"creativity_score"`
	LeadershipScore  int      `json:"leadership_score"`
	ResilienceScore  int      `json:"resilience_score"`
	Difficulties     []string `json:"difficulties"`
	HowToOvercome    []string `json:"how_to_overcome"`
	CreatorStrengths []string `json:"creator_strengths"`
}

// PlanDay is one entry of the 30-day action plan.
type PlanDay struct {
	Day  string `json:"day"`
	Task string `json:"task"`
}

// CreatorAnalysisRequest asks for the combined multi-modal reading.
// Stats carries the platform-specific counters the caller supplied
// (followers/posts for Instagram, subscribers/videos/views for YouTube).
type CreatorAnalysisRequest struct {
	Name        string           `json:"name"`
	Platform    Platform         `json:"platform"`
	Goal        string           `json:"goal"`
	Zodiac      Zodiac           `json:"zodiac"`
	DateOfBirth string           `json:"dob"`
	Stats       map[string]int64 `json:"stats,omitempty"`
}

// Validate checks the combined-analysis request.
func (r *CreatorAnalysisRequest) Validate() error {
	if r.Name == "" {
		return ErrUsernameRequired
	}
	if r.DateOfBirth == "" {
		return ErrBirthDateRequired
	}
	if !r.Zodiac.Valid() {
		return ErrZodiacInvalid
	}
	return nil
}

// CreatorAnalysisResponse is the validated combined reading.
// MonthlyPlan keeps the model's week nesting: four weeks of PlanDay entries.
type CreatorAnalysisResponse struct {
	PlatformAssessment string              `json:"platform_assessment"`
	WhatWentRight      []string            `json:"what_went_right"`
	WhatWentWrong      []string            `json:"what_went_wrong"`
	ContentStrategy    string              `json:"content_strategy"`
	AstroZodiacReading ZodiacReading       `json:"astro_zodiac_reading"`
	PalmReading        PalmReading         `json:"palm_reading"`
	BestPostingDays    []string            `json:"best_posting_days"`
	PostingSchedule    map[string][]string `json:"posting_schedule"`
	MonthlyPlan        [][]PlanDay         `json:"monthly_plan"`
	GrowthPrediction   string              `json:"growth_prediction"`
	FinalBlessing      string              `json:"final_blessing"`
}
