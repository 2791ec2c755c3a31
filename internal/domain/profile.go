package domain

// TopPost is one of a profile's highest-performing posts.
type TopPost struct {
	Title      string  `json:"title"`
	Likes      int64   `json:"likes"`
	Comments   int64   `json:"comments"`
	Thumbnail  string  `json:"thumbnail"`
	Platform   string  `json:"platform"`
	Engagement float64 `json:"engagement"`
}

// GrowthWeek is one week of a profile's historical growth series.
type GrowthWeek struct {
	Week       string  `json:"week"`
	Followers  int64   `json:"followers"`
	Engagement float64 `json:"engagement"`
	Views      int64   `json:"views"`
}

// Profile is the statistics snapshot for one creator profile, either scraped
// from the platform's public pages or deterministically simulated.
type Profile struct {
	Platform       Platform     `json:"platform"`
	Username       string       `json:"username"`
	Followers      int64        `json:"followers"`
	Following      int64        `json:"following"`
	EngagementRate float64      `json:"engagement_rate"`
	TotalPosts     int64        `json:"total_posts"`
	AvgLikes       int64        `json:"avg_likes"`
	AvgComments    int64        `json:"avg_comments"`
	TopPosts       []TopPost    `json:"top_posts"`
	GrowthData     []GrowthWeek `json:"growth_data"`
}
