package llm

import (
	"strconv"
	"strings"

	"github.com/astroforge/astroforge/internal/domain"
	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
)

// Bounds for score fields and the documented fallback when the model returns
// a non-numeric or out-of-range value.
const (
	scoreMin     = 1
	scoreMax     = 100
	scoreDefault = 70
)

// calendarDays is the fixed key set for day-keyed schedule fields.
var calendarDays = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// fieldPath addresses a field in the parsed object, optionally one level
// deep (e.g. palm_reading.creativity_score).
type fieldPath []string

type enumRule struct {
	path     fieldPath
	allowed  []string
	fallback string
}

// resultSchema is the static declaration of what one operation kind requires
// from the model and which repairs apply after the presence check.
//
// The asymmetry is intentional: top-level required fields are strict (any
// missing key fails the whole result), while day-keyed schedule fields are
// lenient (absent days are backfilled as empty, never failed).
type resultSchema struct {
	required []string
	scores   []fieldPath
	enums    []enumRule
	dayKeyed []string
}

var schemas = map[domain.OperationKind]resultSchema{
	domain.OpInsights: {
		required: []string{
			"profile_analysis", "mistakes", "daily_plan", "content_ideas",
			"hook_ideas", "posting_schedule", "growth_prediction",
		},
		dayKeyed: []string{"posting_schedule"},
	},
	domain.OpAstrology: {
		required: []string{
			"sun_sign", "personality_insights", "growth_patterns",
			"lucky_posting_times", "strengths", "weaknesses",
			"best_content_types", "monthly_forecast",
		},
	},
	domain.OpPalm: {
		required: []string{
			"personality_traits", "risk_profile", "creativity_score",
			"leadership_score", "communication_score", "summary",
		},
		scores: []fieldPath{
			{"creativity_score"}, {"leadership_score"}, {"communication_score"},
		},
		enums: []enumRule{{
			path:     fieldPath{"risk_profile"},
			allowed:  []string{"conservative", "moderate", "aggressive"},
			fallback: "moderate",
		}},
	},
	domain.OpCreatorAnalysis: {
		required: []string{
			"platform_assessment", "what_went_right", "what_went_wrong",
			"content_strategy", "astro_zodiac_reading", "palm_reading",
			"best_posting_days", "posting_schedule", "monthly_plan",
			"growth_prediction", "final_blessing",
		},
		scores: []fieldPath{
			{"palm_reading", "creativity_score"},
			{"palm_reading", "leadership_score"},
			{"palm_reading", "resilience_score"},
		},
		dayKeyed: []string{"posting_schedule"},
	},
}

// validateResult checks the parsed object against the required field set for
// the operation kind and applies kind-specific repairs. Validation is
// all-or-nothing: a missing required field fails the whole result, and no
// partially-populated object ever reaches a caller.
func validateResult(kind domain.OperationKind, obj map[string]any) (map[string]any, error) {
	sch, ok := schemas[kind]
	if !ok {
		return nil, llmerrors.New(llmerrors.KindSchemaViolation, "no schema for operation %q", kind)
	}

	var missing []string
	for _, key := range sch.required {
		if _, present := obj[key]; !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, llmerrors.SchemaViolation(missing)
	}

	for _, path := range sch.scores {
		parent, key := resolve(obj, path)
		if parent != nil {
			parent[key] = clampScore(parent[key])
		}
	}

	for _, rule := range sch.enums {
		parent, key := resolve(obj, rule.path)
		if parent == nil {
			continue
		}
		parent[key] = normalizeEnum(parent[key], rule)
	}

	for _, key := range sch.dayKeyed {
		obj[key] = backfillWeek(obj[key])
	}

	return obj, nil
}

// resolve walks a fieldPath to the map holding its final key. Returns nil
// when an intermediate segment is absent or not an object; repairs on an
// unnavigable path are skipped, leaving the shape mismatch to decoding.
func resolve(obj map[string]any, path fieldPath) (map[string]any, string) {
	parent := obj
	for _, seg := range path[:len(path)-1] {
		next, ok := parent[seg].(map[string]any)
		if !ok {
			return nil, ""
		}
		parent = next
	}
	return parent, path[len(path)-1]
}

// clampScore coerces a score into [1,100], substituting the documented
// default for non-numeric input. Out-of-range values are clamped to the
// nearest bound, never passed through.
func clampScore(v any) int {
	n := scoreDefault
	switch val := v.(type) {
	case float64:
		n = int(val)
	case int:
		n = val
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			n = int(f)
		}
	}
	if n < scoreMin {
		return scoreMin
	}
	if n > scoreMax {
		return scoreMax
	}
	return n
}

// normalizeEnum maps the value to one of the permitted literals, case
// insensitively, or to the documented fallback.
func normalizeEnum(v any, rule enumRule) string {
	s, ok := v.(string)
	if !ok {
		return rule.fallback
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, allowed := range rule.allowed {
		if s == allowed {
			return allowed
		}
	}
	return rule.fallback
}

// backfillWeek synthesizes empty entries for any calendar day absent from a
// day-keyed mapping. A value that is not an object at all is replaced by a
// full empty week.
func backfillWeek(v any) map[string]any {
	week, ok := v.(map[string]any)
	if !ok {
		week = make(map[string]any, len(calendarDays))
	}
	for _, day := range calendarDays {
		if _, present := week[day]; !present {
			week[day] = []any{}
		}
	}
	return week
}
