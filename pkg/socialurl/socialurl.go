// Package socialurl recognizes and normalizes social media post URLs
// for embedding in user profiles.
package socialurl

import (
	"net/url"
	"regexp"
	"strings"
)

// Platform identifies a supported social platform.
type Platform string

const (
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
	Threads   Platform = "threads"
)

// Parsed is the result of recognizing a social post URL.
type Parsed struct {
	Platform Platform
	URL      string
	// IsShortURL marks Facebook share links that cannot be embedded directly.
	IsShortURL bool
}

var platformPatterns = []struct {
	platform Platform
	re       *regexp.Regexp
}{
	{Instagram, regexp.MustCompile(`^https?://(www\.)?instagram\.com/(p|reel|tv)/[\w-]+`)},
	{Threads, regexp.MustCompile(`^https?://(www\.)?threads\.(net|com)/@[\w.]+/post/\w+`)},
	{Facebook, regexp.MustCompile(`^https?://(www\.)?(facebook\.com|fb\.watch)/.+`)},
}

var fbShortURLPattern = regexp.MustCompile(`^https?://(www\.)?facebook\.com/share/(p|v|r)/`)

// Parse recognizes a social post URL. It reports false for URLs that do
// not match any supported platform.
func Parse(raw string) (Parsed, bool) {
	trimmed := strings.TrimSpace(raw)

	for _, p := range platformPatterns {
		if !p.re.MatchString(trimmed) {
			continue
		}
		return Parsed{
			Platform:   p.platform,
			URL:        cleanURL(trimmed, p.platform),
			IsShortURL: p.platform == Facebook && fbShortURLPattern.MatchString(trimmed),
		}, true
	}

	return Parsed{}, false
}

// IsFacebookShortURL reports whether the URL is a facebook.com/share
// short link.
func IsFacebookShortURL(raw string) bool {
	return fbShortURLPattern.MatchString(raw)
}

// PlatformName returns the display name for a platform.
func PlatformName(p Platform) string {
	switch p {
	case Instagram:
		return "Instagram"
	case Facebook:
		return "Facebook"
	case Threads:
		return "Threads"
	}
	return string(p)
}

// cleanURL strips query parameters that are not needed for embedding.
// Instagram links carry tracking parameters (utm_source, igsh) that the
// embed endpoint rejects.
func cleanURL(raw string, platform Platform) string {
	if platform != Instagram {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
