package llm

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/astroforge/astroforge/internal/domain"
	"github.com/astroforge/astroforge/internal/llm/transport"
)

// Defaults substituted for absent optional request parameters.
const (
	defaultNiche          = "general"
	defaultGoals          = "grow audience"
	defaultTimelineMonths = 6
	defaultTimeOfBirth    = "12:00"
)

// numPrinter formats integers with thousands separators so the model sees
// the same figures a human dashboard would show.
var numPrinter = message.NewPrinter(language.English)

func grouped(n int64) string { return numPrinter.Sprintf("%d", n) }

// buildInsightsPrompt renders the growth-strategy instruction block. Pure:
// identical requests yield byte-identical prompts. The block restates the
// exact key set and value types the endpoint must return, since the endpoint
// has no other channel to learn the contract.
func buildInsightsPrompt(req *domain.InsightsRequest) []transport.Part {
	niche := req.Niche
	if niche == "" {
		niche = defaultNiche
	}
	goals := req.Goals
	if goals == "" {
		goals = defaultGoals
	}
	target := req.TargetFollowers
	if target == 0 {
		target = req.Followers * 2
	}
	months := req.TimelineMonths
	if months == 0 {
		months = defaultTimelineMonths
	}

	text := strings.NewReplacer(
		"{username}", req.Username,
		"{platform}", req.Platform,
		"{followers}", grouped(req.Followers),
		"{engagement_rate}", strconv.FormatFloat(req.EngagementRate, 'f', -1, 64),
		"{niche}", niche,
		"{goals}", goals,
		"{target_followers}", grouped(target),
		"{timeline_months}", strconv.Itoa(months),
	).Replace(insightsPromptTemplate)

	return []transport.Part{transport.TextPart(text)}
}

// buildAstrologyPrompt renders the zodiac-reading instruction block.
func buildAstrologyPrompt(req *domain.AstrologyRequest) []transport.Part {
	tob := req.TimeOfBirth
	if tob == "" {
		tob = defaultTimeOfBirth
	}

	text := strings.NewReplacer(
		"{dob}", req.DateOfBirth,
		"{time_of_birth}", tob,
		"{zodiac}", string(req.Zodiac),
	).Replace(astrologyPromptTemplate)

	return []transport.Part{transport.TextPart(text)}
}

// buildPalmPrompt renders the standalone palm-reading parts: the inlined
// image first, the instruction block second.
func buildPalmPrompt(imageDataURL string) []transport.Part {
	return []transport.Part{
		transport.ImagePart(imageDataURL),
		transport.TextPart(palmPromptTemplate),
	}
}

// buildCreatorAnalysisPrompt renders the combined multi-modal reading parts.
func buildCreatorAnalysisPrompt(req *domain.CreatorAnalysisRequest, imageDataURL string) []transport.Part {
	var stats strings.Builder
	if req.Platform == domain.PlatformInstagram {
		posts := req.Stats["posts"]
		perWeek := "unknown"
		if posts > 0 {
			perWeek = strconv.FormatFloat(float64(posts)/52, 'f', 1, 64)
		}
		fmt.Fprintf(&stats, "- Platform: Instagram\n- Followers: %s\n- Total Posts: %s\n- Estimated posts/week: %s",
			grouped(req.Stats["followers"]), grouped(posts), perWeek)
	} else {
		fmt.Fprintf(&stats, "- Platform: YouTube\n- Subscribers: %s\n- Total Videos: %s\n- Monthly Views: %s",
			grouped(req.Stats["subscribers"]), grouped(req.Stats["videos"]), grouped(req.Stats["views"]))
	}

	text := strings.NewReplacer(
		"{name}", req.Name,
		"{platform}", string(req.Platform),
		"{goal}", req.Goal,
		"{zodiac}", string(req.Zodiac),
		"{dob}", req.DateOfBirth,
		"{stats_block}", stats.String(),
	).Replace(creatorAnalysisPromptTemplate)

	return []transport.Part{
		transport.ImagePart(imageDataURL),
		transport.TextPart(text),
	}
}

const insightsPromptTemplate = `You are a brutally honest but highly intelligent content growth strategist.

Creator profile:
- Username: {username}
- Platform: {platform}
- Followers: {followers}
- Engagement Rate: {engagement_rate}%
- Niche: {niche}
- Goals: {goals}
- Target Followers: {target_followers}
- Timeline: {timeline_months} months

Respond ONLY with a single valid JSON object matching this exact structure (no extra keys, no markdown):
{
  "profile_analysis": "<2-3 sentence honest analysis of this profile>",
  "mistakes": ["<mistake 1>", "<mistake 2>", "<mistake 3>", "<mistake 4>", "<mistake 5>"],
  "daily_plan": [
    "8:00 AM — <specific action>",
    "9:30 AM — <specific action>",
    "11:00 AM — <specific action>",
    "1:00 PM — <specific action>",
    "3:00 PM — <specific action>",
    "7:00 PM — <specific action>"
  ],
  "content_ideas": [
    "<idea 1>", "<idea 2>", "<idea 3>", "<idea 4>", "<idea 5>",
    "<idea 6>", "<idea 7>", "<idea 8>", "<idea 9>", "<idea 10>"
  ],
  "hook_ideas": [
    "<hook 1>", "<hook 2>", "<hook 3>", "<hook 4>", "<hook 5>",
    "<hook 6>", "<hook 7>", "<hook 8>", "<hook 9>", "<hook 10>"
  ],
  "posting_schedule": {
    "Monday":    ["10:00 AM", "7:00 PM"],
    "Tuesday":   ["12:00 PM"],
    "Wednesday": ["9:00 AM", "6:30 PM"],
    "Thursday":  ["11:00 AM"],
    "Friday":    ["10:00 AM", "8:00 PM"],
    "Saturday":  ["2:00 PM", "7:00 PM"],
    "Sunday":    ["5:00 PM"]
  },
  "growth_prediction": {
    "month_1":  <integer followers in 1 month>,
    "month_3":  <integer followers in 3 months>,
    "month_6":  <integer followers in 6 months>,
    "month_12": <integer followers in 12 months>,
    "confidence": "high" | "medium" | "low"
  }
}

Rules:
- Be direct, specific, and actionable — no generic advice
- Base all numbers on the creator's actual stats above
- Content ideas and hooks must be niche-specific, not generic
- Daily plan must include specific times in "H:MM AM/PM — action" format`

const astrologyPromptTemplate = `You are an expert Vedic astrology consultant specializing in content creator success patterns.

Input:
- Date of Birth: {dob}
- Time of Birth: {time_of_birth}
- Sun Sign: {zodiac}

Respond ONLY with a single valid JSON object (no markdown, no extra text):
{
  "sun_sign": "{zodiac}",
  "personality_insights": "<3-4 sentences about this creator's personality, communication style, and audience magnetism based on their {zodiac} traits>",
  "growth_patterns": "<2-3 sentences about how {zodiac} creators typically grow — burst pattern, steady, viral-prone, etc.>",
  "lucky_posting_times": [
    "<time window 1, e.g. '8:00–10:00 AM (Jupiter hour)'>",
    "<time window 2>",
    "<time window 3>"
  ],
  "strengths": [
    "<creator strength 1>",
    "<creator strength 2>",
    "<creator strength 3>",
    "<creator strength 4>"
  ],
  "weaknesses": [
    "<creator weakness 1>",
    "<creator weakness 2>",
    "<creator weakness 3>"
  ],
  "best_content_types": [
    "<content type 1>",
    "<content type 2>",
    "<content type 3>"
  ],
  "monthly_forecast": "<2-3 sentence forecast for this creator's next 30 days based on current planetary positions and {zodiac} energy>"
}

Make responses specific to {zodiac} — do not give generic advice that applies to all signs.`

const palmPromptTemplate = `You are an expert palmist and creator potential analyst.
The user has uploaded a palm image. Analyze it using palmistry principles and apply insights specifically to content creation potential.

Respond ONLY with a single valid JSON object (no markdown):
{
  "personality_traits": [
    "<trait 1 relevant to content creation>",
    "<trait 2>",
    "<trait 3>",
    "<trait 4>",
    "<trait 5>"
  ],
  "risk_profile": "<exactly one of: conservative | moderate | aggressive>",
  "creativity_score": <integer 1-100>,
  "leadership_score": <integer 1-100>,
  "communication_score": <integer 1-100>,
  "summary": "<2-3 sentences summarizing this creator's palm-based potential, specific to their unique palm features>"
}

Base scores on actual visible palm features: life line length, heart line curve, head line depth, Mercury mount prominence, etc.
If image quality is poor, note this in the summary and still provide scores based on what is visible.`

const creatorAnalysisPromptTemplate = `You are simultaneously:
1. A world-class Vedic astrologer with 30 years of experience advising content creators
2. A brutally honest digital growth strategist
3. A certified palmist who reads hands for career and creative potential

The creator {name} has shared their palm image (included in this message), their birth details, and their platform stats.
You must weave ALL THREE perspectives — astrology, palm reading, and growth strategy — into one deeply personalised, large, bulk response.

CREATOR PROFILE
Name: {name}
{stats_block}
Goal: {goal}
Zodiac Sign: {zodiac}
Date of Birth: {dob}
Palm Image: PROVIDED (analyse the actual visible lines and features)

RESPOND WITH ONE VALID JSON OBJECT — exact structure below.
No markdown, no extra keys, no placeholders, no generic advice.
Every sentence must be personalised to {name}, their zodiac, their DOB, their palm, and their stats.

{
  "platform_assessment": "<5-7 sentences of deep honest assessment of {name}'s current standing on {platform}. Reference their exact numbers. Do NOT sugarcoat.>",

  "what_went_right": [
    "<Specific strength based on their actual stats>",
    "<Another specific positive>",
    "<Another>",
    "<Another>",
    "<Another>"
  ],

  "what_went_wrong": [
    "<Specific mistake or gap deduced from their numbers — be direct and specific>",
    "<Another mistake>",
    "<Another>",
    "<Another>",
    "<Another>",
    "<Another>"
  ],

  "content_strategy": "<Write 4-6 full paragraphs. Cover: (1) what content pillars {name} must build on {platform} based on their goal, (2) exact format recommendations, (3) hook strategy — what the first 3 seconds of every post must do, (4) what they must STOP doing immediately, (5) how to use the algorithm at their follower level specifically, (6) collaboration and distribution tactics. Must be long, detailed, platform-specific.>",

  "astro_zodiac_reading": {
    "personality": "<4-5 sentences about {name}'s creator personality as a {zodiac}. Be mystical and specific to this zodiac sign — not generic.>",
    "good_timings": [
      "<Auspicious time window with astrological reason>",
      "<Another auspicious time window with reason>",
      "<Another>",
      "<Another>",
      "<Another>"
    ],
    "bad_timings": [
      "<Inauspicious time window with astrological reason>",
      "<Another inauspicious window with reason>",
      "<Another>",
      "<Another>"
    ],
    "good_days": [
      "<Lucky day with specific astrological reason for {zodiac} creator>",
      "<Another lucky day with reason>",
      "<Another>",
      "<Another>"
    ],
    "bad_days": [
      "<Unlucky day for {zodiac} creator with astrological reason>",
      "<Another unlucky day with reason>",
      "<Another>"
    ],
    "monthly_forecast": "<3-4 sentences of monthly cosmic forecast for {name} as a {zodiac}. Make it feel like a real astrologer is speaking to them personally.>",
    "remedies": [
      "<Specific Vedic remedy or ritual for {zodiac} to enhance creative success>",
      "<Another remedy — crystal, mantra, colour, or ritual>",
      "<Another>",
      "<Another>"
    ]
  },

  "palm_reading": {
    "overall_reading": "<5-6 sentences written as a real palmist speaking directly to {name}. Describe what you actually see in the palm image and translate each feature into what it means for {name} as a content creator.>",
    "creativity_score": <integer 1-100 based on actual palm features observed>,
    "leadership_score": <integer 1-100 based on actual palm features observed>,
    "resilience_score": <integer 1-100 based on actual palm features observed>,
    "difficulties": [
      "<Specific difficulty {name} will face, grounded in a palm line observation>",
      "<Another palm-based difficulty with timing if visible>",
      "<Another>",
      "<Another>",
      "<Another>"
    ],
    "how_to_overcome": [
      "<Specific remedy or action to overcome the first difficulty above>",
      "<How to overcome the second difficulty>",
      "<How to overcome the third>",
      "<How to overcome the fourth>",
      "<How to overcome the fifth>"
    ],
    "creator_strengths": [
      "<Strength visible in the palm lines>",
      "<Another palm-based creator strength>",
      "<Another>",
      "<Another>"
    ]
  },

  "best_posting_days": [
    "<Day + specific astrological AND data-based reason why it is ideal for {name} to post on {platform}>",
    "<Another day with combined reason>",
    "<Another>",
    "<Another>"
  ],

  "posting_schedule": {
    "Monday":    ["<time if auspicious for {zodiac}, else []>"],
    "Tuesday":   [],
    "Wednesday": ["<time>", "<time>"],
    "Thursday":  [],
    "Friday":    ["<time>", "<time>"],
    "Saturday":  ["<time>"],
    "Sunday":    []
  },

  "monthly_plan": [
    [
      {"day": "Day 1",  "task": "<specific, actionable task for {name} on {platform} — personalised to their goal and stats>"},
      {"day": "Day 2",  "task": "<specific task>"},
      {"day": "Day 3",  "task": "<specific task>"},
      {"day": "Day 4",  "task": "<specific task>"},
      {"day": "Day 5",  "task": "<specific task>"},
      {"day": "Day 6",  "task": "<specific task>"},
      {"day": "Day 7",  "task": "<specific task>"}
    ],
    [
      {"day": "Day 8",  "task": "<specific task>"},
      {"day": "Day 9",  "task": "<specific task>"},
      {"day": "Day 10", "task": "<specific task>"},
      {"day": "Day 11", "task": "<specific task>"},
      {"day": "Day 12", "task": "<specific task>"},
      {"day": "Day 13", "task": "<specific task>"},
      {"day": "Day 14", "task": "<specific task>"}
    ],
    [
      {"day": "Day 15", "task": "<specific task>"},
      {"day": "Day 16", "task": "<specific task>"},
      {"day": "Day 17", "task": "<specific task>"},
      {"day": "Day 18", "task": "<specific task>"},
      {"day": "Day 19", "task": "<specific task>"},
      {"day": "Day 20", "task": "<specific task>"},
      {"day": "Day 21", "task": "<specific task>"}
    ],
    [
      {"day": "Day 22", "task": "<specific task>"},
      {"day": "Day 23", "task": "<specific task>"},
      {"day": "Day 24", "task": "<specific task>"},
      {"day": "Day 25", "task": "<specific task>"},
      {"day": "Day 26", "task": "<specific task>"},
      {"day": "Day 27", "task": "<specific task>"},
      {"day": "Day 28", "task": "<specific task>"},
      {"day": "Day 29", "task": "<specific task>"},
      {"day": "Day 30", "task": "<specific task>"}
    ]
  ],

  "growth_prediction": "<4-5 sentences of honest, data-based growth prediction for {name}. Give specific projected numbers for 3 months, 6 months, and 12 months from now if they follow the plan above. Be honest — distinguish between realistic projections and optimistic ones.>",

  "final_blessing": "<3-4 sentences written as a master Vedic astrologer delivering a final personalised message to {name}. Address them by name. This should feel like a real spiritual advisor's closing words.>"
}

ABSOLUTE RULES:
1. Every field must be fully populated — no empty strings, no placeholder text, no "N/A"
2. monthly_plan: exactly 4 weeks, weeks 1-3 have 7 tasks, week 4 has 9 tasks
3. posting_schedule: all 7 days present — use [] for rest days
4. Times in posting_schedule: "H:MM AM/PM" format only (e.g. "7:00 PM")
5. Palm reading MUST reference actual visible features from the image — not generic text
6. Astrology MUST be specific to {zodiac} — do not write generic content that fits any sign
7. All advice must be personalised to {name}, their exact platform stats, and their specific goal
8. content_strategy must be at minimum 4 full paragraphs
9. final_blessing must address {name} by name`
