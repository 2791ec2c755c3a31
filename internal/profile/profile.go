// Package profile acquires public profile statistics for a creator URL.
// YouTube and Instagram profiles are scraped from their public pages;
// every other platform gets deterministic simulated statistics, seeded from
// the URL so repeated lookups agree. Engagement-adjacent counters, top
// posts, and the growth series are always synthesized from the same seed.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/astroforge/astroforge/internal/domain"
)

const (
	fetchTimeout  = 10 * time.Second
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	growthWeeks   = 24
	topPostsCount = 5
)

// ErrExtractionFailed indicates the platform page could not be parsed for
// follower counts. Surfaced instead of silently simulating for platforms we
// claim to scrape.
var ErrExtractionFailed = errors.New("profile extraction failed")

var (
	youtubeStatsRe = regexp.MustCompile(`(?s)(\d+(?:\.\d+)?[KMB]?) subscribers.*?(?:• )?(\d+(?:\.\d+)?[KMB]?) videos`)
	youtubeViewsRe = regexp.MustCompile(`• ([\d,]+) views`)
	instagramMetaRe = regexp.MustCompile(
		`<meta property="og:description" content="([\d,.]+[KMB]?) Followers, ([\d,.]+[KMB]?) Following, ([\d,.]+[KMB]?) Posts`)
)

// Provider fetches or simulates profile statistics.
type Provider struct {
	client *http.Client
	logger *slog.Logger
}

// NewProvider builds a provider. A nil client gets a bounded-timeout default.
func NewProvider(client *http.Client, logger *slog.Logger) *Provider {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{client: client, logger: logger.With("component", "profile")}
}

// Fetch resolves statistics for a profile URL.
func (p *Provider) Fetch(ctx context.Context, url string) (*domain.Profile, error) {
	platform := domain.DetectPlatform(url)
	username := ExtractUsername(url)
	rng := seededRNG(url)

	var followers, following, totalPosts, totalViews int64
	var err error

	switch platform {
	case domain.PlatformYouTube:
		followers, totalPosts, totalViews, err = p.scrapeYouTube(ctx, url)
		if err != nil {
			return nil, err
		}
		following = rng.Int64N(501) // YouTube does not expose following
	case domain.PlatformInstagram:
		followers, following, totalPosts, err = p.scrapeInstagram(ctx, url)
		if err != nil {
			return nil, err
		}
	default:
		lo, hi := followerRange(platform)
		followers = lo + rng.Int64N(hi-lo+1)
		following = 100 + rng.Int64N(maxInt64(1, minInt64(5000, maxInt64(101, followers/10))-100)+1)
		totalPosts = 30 + rng.Int64N(1171)
	}

	engagement := engagementRate(platform, rng)

	var avgViews int64
	if totalPosts > 0 && totalViews > 0 {
		avgViews = totalViews / totalPosts
	} else {
		avgViews = int64(float64(followers) * uniform(rng, 2.0, 10.0))
	}

	var avgLikes int64
	if avgViews > 0 {
		avgLikes = int64(float64(avgViews) * uniform(rng, 0.05, 0.15))
	} else {
		avgLikes = int64(float64(followers) * engagement / 100 * uniform(rng, 0.7, 1.2))
	}
	avgComments := int64(float64(avgLikes) * uniform(rng, 0.1, 0.3))

	p.logger.Info("profile resolved",
		"platform", string(platform), "username", username, "followers", followers)

	return &domain.Profile{
		Platform:       platform,
		Username:       username,
		Followers:      followers,
		Following:      following,
		EngagementRate: engagement,
		TotalPosts:     totalPosts,
		AvgLikes:       avgLikes,
		AvgComments:    avgComments,
		TopPosts:       topPosts(platform, url, rng, avgLikes, avgComments, engagement),
		GrowthData:     growthSeries(rng, followers, engagement),
	}, nil
}

func (p *Provider) scrapeYouTube(ctx context.Context, url string) (subs, videos, views int64, err error) {
	html, err := p.get(ctx, strings.TrimRight(url, "/")+"/about")
	if err != nil {
		return 0, 0, 0, err
	}

	if m := youtubeStatsRe.FindStringSubmatch(html); m != nil {
		subs = ParseCount(m[1])
		videos = ParseCount(m[2])
	}
	if m := youtubeViewsRe.FindStringSubmatch(html); m != nil {
		views, _ = strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	}
	if subs == 0 {
		return 0, 0, 0, fmt.Errorf("%w: youtube page yielded no subscriber count", ErrExtractionFailed)
	}
	return subs, videos, views, nil
}

func (p *Provider) scrapeInstagram(ctx context.Context, url string) (followers, following, posts int64, err error) {
	html, err := p.get(ctx, url)
	if err != nil {
		return 0, 0, 0, err
	}

	if m := instagramMetaRe.FindStringSubmatch(html); m != nil {
		followers = ParseCount(m[1])
		following = ParseCount(m[2])
		posts = ParseCount(m[3])
	}
	if followers == 0 {
		return 0, 0, 0, fmt.Errorf("%w: instagram page yielded no follower count", ErrExtractionFailed)
	}
	return followers, following, posts, nil
}

func (p *Provider) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrExtractionFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return string(body), nil
}

// ExtractUsername pulls the handle out of any common social URL shape,
// skipping path segments that are never usernames.
func ExtractUsername(url string) string {
	cleaned := strings.TrimSpace(url)
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(strings.ToLower(cleaned), prefix) {
			cleaned = cleaned[len(prefix):]
			break
		}
	}
	cleaned = strings.TrimPrefix(cleaned, "www.")

	var parts []string
	for _, p := range strings.Split(cleaned, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "creator"
	}

	skip := map[string]struct{}{
		"channel": {}, "c": {}, "user": {}, "watch": {}, "shorts": {}, "reel": {},
		"p": {}, "tv": {}, "stories": {}, "reels": {}, "hashtag": {}, "explore": {},
	}

	for i := len(parts) - 1; i >= 1; i-- {
		seg := strings.TrimPrefix(parts[i], "@")
		if j := strings.IndexAny(seg, "?#"); j >= 0 {
			seg = seg[:j]
		}
		seg = strings.TrimSpace(seg)
		if _, skipped := skip[strings.ToLower(seg)]; seg != "" && !skipped && len(seg) > 1 {
			return seg
		}
	}
	return "creator"
}

// ParseCount converts display counts like "1.2M" or "15,400" to integers.
// Unparseable input yields 0.
func ParseCount(text string) int64 {
	text = strings.NewReplacer(",", "", " ", "").Replace(text)
	if text == "" {
		return 0
	}

	multipliers := map[byte]int64{'K': 1_000, 'M': 1_000_000, 'B': 1_000_000_000}
	last := text[len(text)-1]
	if mult, ok := multipliers[last&^0x20]; ok { // tolerate lowercase suffix
		num, err := strconv.ParseFloat(text[:len(text)-1], 64)
		if err != nil {
			return 0
		}
		return int64(num * float64(mult))
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// seededRNG derives a deterministic generator from the URL so the same
// profile URL always simulates the same statistics.
func seededRNG(url string) *rand.Rand {
	var seed uint64
	for _, c := range url {
		seed += uint64(c)
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func followerRange(platform domain.Platform) (int64, int64) {
	switch platform {
	case domain.PlatformInstagram:
		return 5_000, 2_000_000
	case domain.PlatformYouTube:
		return 1_000, 5_000_000
	case domain.PlatformTikTok:
		return 10_000, 10_000_000
	case domain.PlatformFacebook:
		return 500, 1_000_000
	case domain.PlatformTwitter:
		return 500, 2_000_000
	default:
		return 10_000, 500_000
	}
}

func engagementRate(platform domain.Platform, rng *rand.Rand) float64 {
	var lo, hi float64
	switch platform {
	case domain.PlatformInstagram:
		lo, hi = 2.0, 8.0
	case domain.PlatformYouTube:
		lo, hi = 1.0, 6.0
	case domain.PlatformTikTok:
		lo, hi = 4.0, 18.0
	case domain.PlatformFacebook:
		lo, hi = 0.5, 3.0
	case domain.PlatformTwitter:
		lo, hi = 0.5, 4.0
	default:
		lo, hi = 1.0, 8.0
	}
	return round2(uniform(rng, lo, hi))
}

var postTypes = map[domain.Platform][]string{
	domain.PlatformInstagram: {"Reel", "Carousel", "Story Highlight", "Tutorial", "Collab"},
	domain.PlatformYouTube:   {"Tutorial", "Vlog", "Review", "Short", "Podcast Clip"},
	domain.PlatformTikTok:    {"Trend", "Tutorial", "Storytime", "Duet", "POV"},
	domain.PlatformFacebook:  {"Video", "Photo Post", "Reel", "Story", "Live"},
	domain.PlatformTwitter:   {"Thread", "Video Tweet", "Poll", "Quote Tweet", "Space"},
	domain.PlatformUnknown:   {"Post", "Video", "Story", "Collab", "Tutorial"},
}

func topPosts(platform domain.Platform, url string, rng *rand.Rand, avgLikes, avgComments int64, engagement float64) []domain.TopPost {
	types, ok := postTypes[platform]
	if !ok {
		types = postTypes[domain.PlatformUnknown]
	}

	var seed uint64
	for _, c := range url {
		seed += uint64(c)
	}

	posts := make([]domain.TopPost, 0, topPostsCount)
	for i := 0; i < topPostsCount; i++ {
		posts = append(posts, domain.TopPost{
			Title:      fmt.Sprintf("%s — #%d", types[rng.IntN(len(types))], 100+rng.IntN(900)),
			Likes:      int64(float64(avgLikes) * uniform(rng, 1.8, 6.0)),
			Comments:   int64(float64(avgComments) * uniform(rng, 1.5, 5.0)),
			Thumbnail:  fmt.Sprintf("https://picsum.photos/seed/%d/400/300", seed%100+uint64(i)),
			Platform:   string(platform),
			Engagement: round2(uniform(rng, engagement, engagement*3.5)),
		})
	}
	return posts
}

func growthSeries(rng *rand.Rand, followers int64, engagement float64) []domain.GrowthWeek {
	base := time.Now().AddDate(0, 0, -growthWeeks*7)
	series := make([]domain.GrowthWeek, 0, growthWeeks+1)
	current := float64(followers) * 0.70
	for w := 0; w <= growthWeeks; w++ {
		series = append(series, domain.GrowthWeek{
			Week:       base.AddDate(0, 0, w*7).Format("Jan 02"),
			Followers:  int64(current),
			Engagement: round2(uniform(rng, engagement*0.6, engagement*1.4)),
			Views:      int64(current * uniform(rng, 2.0, 7.0)),
		})
		current *= 1 + uniform(rng, 0.003, 0.045)
	}
	return series
}

func uniform(rng *rand.Rand, lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }

func round2(f float64) float64 { return float64(int64(f*100+0.5)) / 100 }

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
