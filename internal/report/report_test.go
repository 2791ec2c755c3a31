package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllSections(t *testing.T) {
	doc, err := Render(&Request{
		Username: "stellar_sam",
		Profile: map[string]any{
			"platform": "instagram", "followers": 12500,
			"engagement_rate": 4.2, "total_posts": 310,
		},
		Insights: map[string]any{
			"profile_analysis": "solid base",
			"mistakes":         []any{"posting at 3 AM"},
			"daily_plan":       []any{"8:00 AM - engage"},
		},
		Astrology: map[string]any{
			"sun_sign":             "Leo",
			"personality_insights": "magnetic presence",
			"monthly_forecast":     "favorable winds",
		},
		Goals: map[string]any{
			"feasibility_score":    80.0,
			"feasibility_label":    "Achievable",
			"required_growth_rate": 10.0,
			"recommendations":      []any{"collab monthly"},
		},
	})
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "@stellar_sam")
	assert.Contains(t, html, "Profile Overview")
	assert.Contains(t, html, "12500")
	assert.Contains(t, html, "Growth Strategy")
	assert.Contains(t, html, "posting at 3 AM")
	assert.Contains(t, html, "Astrology Reading")
	assert.Contains(t, html, "Leo")
	assert.Contains(t, html, "Goal Feasibility")
	assert.Contains(t, html, "Achievable")
	assert.Contains(t, html, "collab monthly")
}

func TestRender_OmitsEmptySections(t *testing.T) {
	doc, err := Render(&Request{
		Username: "minimal",
		Goals: map[string]any{
			"feasibility_score": 60.0,
			"feasibility_label": "Challenging",
		},
	})
	require.NoError(t, err)

	html := string(doc)
	assert.NotContains(t, html, "Profile Overview")
	assert.NotContains(t, html, "Growth Strategy")
	assert.NotContains(t, html, "Astrology Reading")
	assert.Contains(t, html, "Goal Feasibility")
}

func TestRender_DefaultsUsername(t *testing.T) {
	doc, err := Render(&Request{})
	require.NoError(t, err)
	assert.Contains(t, string(doc), "@Creator")
}

func TestRender_EscapesHTML(t *testing.T) {
	doc, err := Render(&Request{
		Username: "safe",
		Insights: map[string]any{
			"profile_analysis": `<script>alert("x")</script>`,
		},
	})
	require.NoError(t, err)

	html := string(doc)
	assert.False(t, strings.Contains(html, `<script>alert`))
	assert.Contains(t, html, "&lt;script&gt;")
}
