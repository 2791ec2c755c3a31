package domain

import "strings"

// Platform identifies the social network a creator publishes on.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformUnknown   Platform = "unknown"
)

// DetectPlatform infers the platform from a profile URL.
// Unrecognized hosts map to PlatformUnknown rather than an error; the
// profile provider falls back to simulated statistics for those.
func DetectPlatform(url string) Platform {
	u := strings.ToLower(url)
	switch {
	case strings.Contains(u, "instagram"):
		return PlatformInstagram
	case strings.Contains(u, "youtube"), strings.Contains(u, "youtu.be"):
		return PlatformYouTube
	case strings.Contains(u, "facebook"), strings.Contains(u, "fb.com"):
		return PlatformFacebook
	case strings.Contains(u, "tiktok"):
		return PlatformTikTok
	case strings.Contains(u, "twitter"), strings.Contains(u, "x.com"):
		return PlatformTwitter
	default:
		return PlatformUnknown
	}
}

// Zodiac is a western sun sign as supplied by the caller.
type Zodiac string

// The twelve sun signs, in calendar order.
const (
	Aries       Zodiac = "Aries"
	Taurus      Zodiac = "Taurus"
	Gemini      Zodiac = "Gemini"
	Cancer      Zodiac = "Cancer"
	Leo         Zodiac = "Leo"
	Virgo       Zodiac = "Virgo"
	Libra       Zodiac = "Libra"
	Scorpio     Zodiac = "Scorpio"
	Sagittarius Zodiac = "Sagittarius"
	Capricorn   Zodiac = "Capricorn"
	Aquarius    Zodiac = "Aquarius"
	Pisces      Zodiac = "Pisces"
)

var zodiacs = map[Zodiac]struct{}{
	Aries: {}, Taurus: {}, Gemini: {}, Cancer: {}, Leo: {}, Virgo: {},
	Libra: {}, Scorpio: {}, Sagittarius: {}, Capricorn: {}, Aquarius: {}, Pisces: {},
}

// Valid reports whether z is one of the twelve recognized signs.
func (z Zodiac) Valid() bool {
	_, ok := zodiacs[z]
	return ok
}

// ParseZodiac normalizes a caller-supplied sign name, accepting any casing.
func ParseZodiac(s string) (Zodiac, bool) {
	if s == "" {
		return "", false
	}
	z := Zodiac(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
	return z, z.Valid()
}
