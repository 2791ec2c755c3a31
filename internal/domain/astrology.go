package domain

// AstrologyRequest asks for a zodiac reading from birth details.
// TimeOfBirth defaults to "12:00" when absent.
type AstrologyRequest struct {
	DateOfBirth string `json:"dob"`
	TimeOfBirth string `json:"time_of_birth,omitempty"`
	Zodiac      Zodiac `json:"zodiac"`
}

// Validate checks the request for a usable sign and birth date.
func (r *AstrologyRequest) Validate() error {
	if r.DateOfBirth == "" {
		return ErrBirthDateRequired
	}
	if !r.Zodiac.Valid() {
		return ErrZodiacInvalid
	}
	return nil
}

// AstrologyResponse is the validated zodiac reading. SunSign always echoes
// the requested sign regardless of what the model returned.
type AstrologyResponse struct {
	SunSign             string   `json:"sun_sign"`
	PersonalityInsights string   `json:"personality_insights"`
	GrowthPatterns      string   `json:"growth_patterns"`
	LuckyPostingTimes   []string `json:"lucky_posting_times"`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	BestContentTypes    []string `json:"best_content_types"`
	MonthlyForecast     string   `json:"monthly_forecast"`
}
