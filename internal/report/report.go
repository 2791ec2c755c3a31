// Package report renders a shareable HTML growth report from whichever
// analysis sections the caller has collected. Sections with no data are
// omitted rather than rendered empty.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Request carries the loosely-typed section payloads accumulated by the
// frontend. Any subset may be present.
type Request struct {
	Profile   map[string]any `json:"profile,omitempty"`
	Insights  map[string]any `json:"insights,omitempty"`
	Astrology map[string]any `json:"astrology,omitempty"`
	Goals     map[string]any `json:"goals,omitempty"`
	Username  string         `json:"username"`
}

// Render produces the HTML report document.
func Render(req *Request) ([]byte, error) {
	username := req.Username
	if username == "" {
		username = "Creator"
	}

	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, map[string]any{
		"Username":  username,
		"Generated": time.Now().Format("January 2, 2006"),
		"Profile":   req.Profile,
		"Insights":  req.Insights,
		"Astrology": req.Astrology,
		"Goals":     req.Goals,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Growth Report — {{.Username}}</title>
<style>
  body { font-family: 'Segoe UI', sans-serif; color: #1a1a2e; margin: 40px; }
  h1 { color: #5b21b6; }
  h2 { border-bottom: 2px solid #ede9fe; padding-bottom: 6px; }
  .section { margin-bottom: 32px; }
  .metrics { display: flex; gap: 24px; }
  .metric .value { font-size: 1.6em; font-weight: 700; color: #5b21b6; }
  .metric .label { color: #6b7280; font-size: 0.85em; }
  ul { line-height: 1.7; }
  .footer { margin-top: 48px; color: #9ca3af; font-size: 0.8em; }
</style>
</head>
<body>
<h1>Creator Growth Report</h1>
<p>Prepared for <strong>@{{.Username}}</strong> on {{.Generated}}</p>

{{with .Profile}}
<div class="section">
  <h2>Profile Overview</h2>
  <div class="metrics">
    <div class="metric"><div class="value">{{.followers}}</div><div class="label">Followers</div></div>
    <div class="metric"><div class="value">{{.engagement_rate}}%</div><div class="label">Engagement Rate</div></div>
    <div class="metric"><div class="value">{{.total_posts}}</div><div class="label">Total Posts</div></div>
  </div>
  <p>Platform: <strong>{{.platform}}</strong></p>
</div>
{{end}}

{{with .Insights}}
<div class="section">
  <h2>Growth Strategy</h2>
  <p>{{.profile_analysis}}</p>
  {{with .mistakes}}<h3>Mistakes to fix</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
  {{with .daily_plan}}<h3>Daily plan</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
  {{with .content_ideas}}<h3>Content ideas</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
  {{with .hook_ideas}}<h3>Hook ideas</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}

{{with .Astrology}}
<div class="section">
  <h2>Astrology Reading</h2>
  <p><strong>{{.sun_sign}}</strong></p>
  <p>{{.personality_insights}}</p>
  <p>{{.growth_patterns}}</p>
  {{with .lucky_posting_times}}<h3>Lucky posting times</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
  <p>{{.monthly_forecast}}</p>
</div>
{{end}}

{{with .Goals}}
<div class="section">
  <h2>Goal Feasibility</h2>
  <div class="metrics">
    <div class="metric"><div class="value">{{.feasibility_score}}</div><div class="label">Feasibility Score</div></div>
    <div class="metric"><div class="value">{{.feasibility_label}}</div><div class="label">Verdict</div></div>
    <div class="metric"><div class="value">{{.required_growth_rate}}%</div><div class="label">Required Monthly Growth</div></div>
  </div>
  {{with .recommendations}}<h3>Recommendations</h3><ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}

<div class="footer">Generated by AstroForge</div>
</body>
</html>
`))
