package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroforge/astroforge/internal/domain"
	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
)

func validPalmResult() map[string]any {
	return map[string]any{
		"personality_traits":  []any{"curious", "persistent"},
		"risk_profile":        "moderate",
		"creativity_score":    float64(80),
		"leadership_score":    float64(65),
		"communication_score": float64(72),
		"summary":             "strong creative lines",
	}
}

func TestValidateResult_MissingFields(t *testing.T) {
	tests := []struct {
		name        string
		kind        domain.OperationKind
		obj         map[string]any
		wantMissing []string
	}{
		{
			name:        "palm_missing_one_field",
			kind:        domain.OpPalm,
			obj:         dropKeys(validPalmResult(), "summary"),
			wantMissing: []string{"summary"},
		},
		{
			name:        "palm_missing_several_fields_reported_together",
			kind:        domain.OpPalm,
			obj:         dropKeys(validPalmResult(), "risk_profile", "creativity_score", "summary"),
			wantMissing: []string{"risk_profile", "creativity_score", "summary"},
		},
		{
			name: "insights_empty_object_reports_all",
			kind: domain.OpInsights,
			obj:  map[string]any{},
			wantMissing: []string{
				"profile_analysis", "mistakes", "daily_plan", "content_ideas",
				"hook_ideas", "posting_schedule", "growth_prediction",
			},
		},
		{
			name: "astrology_missing_forecast",
			kind: domain.OpAstrology,
			obj: map[string]any{
				"sun_sign":             "Leo",
				"personality_insights": "x",
				"growth_patterns":      "x",
				"lucky_posting_times":  []any{},
				"strengths":            []any{},
				"weaknesses":           []any{},
				"best_content_types":   []any{},
			},
			wantMissing: []string{"monthly_forecast"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateResult(tt.kind, tt.obj)
			require.Error(t, err)

			var lerr *llmerrors.Error
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, llmerrors.KindSchemaViolation, lerr.Kind)
			assert.Equal(t, tt.wantMissing, lerr.MissingFields)
		})
	}
}

func TestValidateResult_PresentKeyWithNullValueCounts(t *testing.T) {
	obj := validPalmResult()
	obj["summary"] = nil

	// Presence is key presence, not truthiness.
	got, err := validateResult(domain.OpPalm, obj)
	require.NoError(t, err)
	assert.Contains(t, got, "summary")
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{name: "in_range_float", in: float64(55), want: 55},
		{name: "lower_bound", in: float64(1), want: 1},
		{name: "upper_bound", in: float64(100), want: 100},
		{name: "below_range_clamped", in: float64(0), want: 1},
		{name: "negative_clamped", in: float64(-40), want: 1},
		{name: "above_range_clamped", in: float64(250), want: 100},
		{name: "numeric_string", in: "87", want: 87},
		{name: "numeric_string_with_spaces", in: " 33 ", want: 33},
		{name: "non_numeric_string_defaults", in: "very high", want: 70},
		{name: "nil_defaults", in: nil, want: 70},
		{name: "bool_defaults", in: true, want: 70},
		{name: "list_defaults", in: []any{90}, want: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampScore(tt.in))
		})
	}
}

func TestValidateResult_PalmRepairs(t *testing.T) {
	obj := validPalmResult()
	obj["creativity_score"] = float64(150)
	obj["leadership_score"] = "not a number"
	obj["communication_score"] = float64(-5)
	obj["risk_profile"] = "  AGGRESSIVE "

	got, err := validateResult(domain.OpPalm, obj)
	require.NoError(t, err)

	assert.Equal(t, 100, got["creativity_score"])
	assert.Equal(t, 70, got["leadership_score"])
	assert.Equal(t, 1, got["communication_score"])
	assert.Equal(t, "aggressive", got["risk_profile"])
}

func TestValidateResult_RiskProfileFallback(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "unknown_literal", in: "reckless", want: "moderate"},
		{name: "non_string", in: float64(3), want: "moderate"},
		{name: "mixed_case_valid", in: "Conservative", want: "conservative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := validPalmResult()
			obj["risk_profile"] = tt.in

			got, err := validateResult(domain.OpPalm, obj)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got["risk_profile"])
		})
	}
}

func TestValidateResult_ScheduleBackfill(t *testing.T) {
	obj := map[string]any{
		"profile_analysis": "x",
		"mistakes":         []any{"a"},
		"daily_plan":       []any{"b"},
		"content_ideas":    []any{"c"},
		"hook_ideas":       []any{"d"},
		"posting_schedule": map[string]any{
			"Monday": []any{"10:00 AM"},
			"Friday": []any{"8:00 PM"},
		},
		"growth_prediction": map[string]any{"month_1": float64(1000)},
	}

	got, err := validateResult(domain.OpInsights, obj)
	require.NoError(t, err)

	schedule, ok := got["posting_schedule"].(map[string]any)
	require.True(t, ok)
	require.Len(t, schedule, 7)

	assert.Equal(t, []any{"10:00 AM"}, schedule["Monday"])
	assert.Equal(t, []any{"8:00 PM"}, schedule["Friday"])
	for _, day := range []string{"Tuesday", "Wednesday", "Thursday", "Saturday", "Sunday"} {
		assert.Equal(t, []any{}, schedule[day], day)
	}
}

func TestValidateResult_ScheduleNotAnObjectReplaced(t *testing.T) {
	obj := map[string]any{
		"profile_analysis":  "x",
		"mistakes":          []any{},
		"daily_plan":        []any{},
		"content_ideas":     []any{},
		"hook_ideas":        []any{},
		"posting_schedule":  "every morning",
		"growth_prediction": map[string]any{},
	}

	got, err := validateResult(domain.OpInsights, obj)
	require.NoError(t, err)

	schedule, ok := got["posting_schedule"].(map[string]any)
	require.True(t, ok)
	require.Len(t, schedule, 7)
	for _, day := range calendarDays {
		assert.Equal(t, []any{}, schedule[day], day)
	}
}

func TestValidateResult_CreatorAnalysisNestedScores(t *testing.T) {
	obj := validCreatorAnalysisResult()
	palm := obj["palm_reading"].(map[string]any)
	palm["creativity_score"] = float64(400)
	palm["leadership_score"] = "n/a"

	got, err := validateResult(domain.OpCreatorAnalysis, obj)
	require.NoError(t, err)

	repaired := got["palm_reading"].(map[string]any)
	assert.Equal(t, 100, repaired["creativity_score"])
	assert.Equal(t, 70, repaired["leadership_score"])
	assert.Equal(t, 88, repaired["resilience_score"])
}

func TestValidateResult_NestedScoreSkippedWhenParentNotObject(t *testing.T) {
	obj := validCreatorAnalysisResult()
	obj["palm_reading"] = "illegible"

	// Presence check passes; the unnavigable repair path is skipped and the
	// shape mismatch is left for decoding to reject.
	got, err := validateResult(domain.OpCreatorAnalysis, obj)
	require.NoError(t, err)
	assert.Equal(t, "illegible", got["palm_reading"])
}

func validCreatorAnalysisResult() map[string]any {
	return map[string]any{
		"platform_assessment": "honest assessment",
		"what_went_right":     []any{"a"},
		"what_went_wrong":     []any{"b"},
		"content_strategy":    "long strategy",
		"astro_zodiac_reading": map[string]any{
			"personality": "p",
		},
		"palm_reading": map[string]any{
			"overall_reading":  "deep lines",
			"creativity_score": float64(77),
			"leadership_score": float64(61),
			"resilience_score": float64(88),
		},
		"best_posting_days": []any{"Friday"},
		"posting_schedule": map[string]any{
			"Monday": []any{"9:00 AM"},
		},
		"monthly_plan":      []any{},
		"growth_prediction": "steady",
		"final_blessing":    "go forth",
	}
}

func dropKeys(m map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		delete(m, k)
	}
	return m
}
