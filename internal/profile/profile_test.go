package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroforge/astroforge/internal/domain"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{name: "plain_integer", in: "15400", want: 15400},
		{name: "thousands_separators", in: "15,400", want: 15400},
		{name: "k_suffix", in: "1.2K", want: 1200},
		{name: "lowercase_k_suffix", in: "1.2k", want: 1200},
		{name: "m_suffix", in: "3.5M", want: 3500000},
		{name: "b_suffix", in: "1B", want: 1000000000},
		{name: "embedded_spaces", in: " 2.5 K ", want: 2500},
		{name: "empty", in: "", want: 0},
		{name: "garbage", in: "lots", want: 0},
		{name: "suffix_without_number", in: "K", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.in))
		})
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "instagram_handle", url: "https://instagram.com/stellar_sam", want: "stellar_sam"},
		{name: "with_www_and_trailing_slash", url: "https://www.instagram.com/stellar_sam/", want: "stellar_sam"},
		{name: "youtube_at_handle", url: "https://youtube.com/@SamCreates", want: "SamCreates"},
		{name: "youtube_channel_path_skipped", url: "https://youtube.com/c/SamCreates", want: "SamCreates"},
		{name: "query_string_stripped", url: "https://tiktok.com/@sam?lang=en", want: "sam"},
		{name: "bare_domain_falls_back", url: "https://instagram.com", want: "creator"},
		{name: "empty_falls_back", url: "", want: "creator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractUsername(tt.url))
		})
	}
}

func TestFetch_SimulatedPlatformDeterministic(t *testing.T) {
	p := NewProvider(nil, nil)
	url := "https://tiktok.com/@deterministic_dana"

	first, err := p.Fetch(context.Background(), url)
	require.NoError(t, err)
	second, err := p.Fetch(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, first.Followers, second.Followers)
	assert.Equal(t, first.Following, second.Following)
	assert.Equal(t, first.EngagementRate, second.EngagementRate)
	assert.Equal(t, first.AvgLikes, second.AvgLikes)
}

func TestFetch_SimulatedStatsWithinPlatformRange(t *testing.T) {
	p := NewProvider(nil, nil)

	prof, err := p.Fetch(context.Background(), "https://tiktok.com/@range_check")
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformTikTok, prof.Platform)
	assert.Equal(t, "range_check", prof.Username)
	assert.GreaterOrEqual(t, prof.Followers, int64(10_000))
	assert.LessOrEqual(t, prof.Followers, int64(10_000_000))
	assert.GreaterOrEqual(t, prof.EngagementRate, 4.0)
	assert.LessOrEqual(t, prof.EngagementRate, 18.0)
	assert.Len(t, prof.TopPosts, 5)
	assert.Len(t, prof.GrowthData, 25)
}

func TestScrapeYouTube(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/about", r.URL.Path)
		_, _ = w.Write([]byte(`<html>Some Channel 1.2M subscribers • 340 videos • 45,000,000 views</html>`))
	}))
	defer srv.Close()

	p := NewProvider(srv.Client(), nil)
	subs, videos, views, err := p.scrapeYouTube(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, int64(1_200_000), subs)
	assert.Equal(t, int64(340), videos)
	assert.Equal(t, int64(45_000_000), views)
}

func TestScrapeYouTube_NoSubscribersFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>nothing useful here</html>`))
	}))
	defer srv.Close()

	p := NewProvider(srv.Client(), nil)
	_, _, _, err := p.scrapeYouTube(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestScrapeInstagram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(
			`<meta property="og:description" content="45.2K Followers, 310 Following, 1,240 Posts - see photos" />`))
	}))
	defer srv.Close()

	p := NewProvider(srv.Client(), nil)
	followers, following, posts, err := p.scrapeInstagram(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, int64(45_200), followers)
	assert.Equal(t, int64(310), following)
	assert.Equal(t, int64(1240), posts)
}

func TestScrapeInstagram_Non200Fails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewProvider(srv.Client(), nil)
	_, _, _, err := p.scrapeInstagram(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}
