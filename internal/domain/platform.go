package domain

import (
	"errors"
	"regexp"
	"strings"
)

// Platform represents the source platform for downloads
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformUnknown   Platform = "unknown"
)

var (
	// ErrMissingURL is returned when the submitted URL is empty after trimming.
	ErrMissingURL = errors.New("missing URL")
	// ErrUnsupportedURL is returned when the URL matches no supported platform.
	ErrUnsupportedURL = errors.New("unsupported URL")
)

// urlPatterns is the fixed acceptance set. Each pattern is anchored at the
// start of the string, tolerates a missing scheme, and covers the known
// subdomain variants (vm./vt. short links for TikTok, the ddinstagram mirror
// for Instagram).
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(https?://)?(www\.|vm\.|vt\.)?tiktok\.com/`),
	regexp.MustCompile(`^(https?://)?(www\.)?instagram\.com/`),
	regexp.MustCompile(`^(https?://)?ddinstagram\.com/`),
}

// NormalizeURL trims the raw input and prepends https:// when the scheme is
// missing.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	return url
}

// ValidateURL checks a normalized URL against the acceptance patterns.
func ValidateURL(url string) error {
	if url == "" {
		return ErrMissingURL
	}
	for _, p := range urlPatterns {
		if p.MatchString(url) {
			return nil
		}
	}
	return ErrUnsupportedURL
}

// DetectPlatform tags a URL with its platform label. This is a deliberate
// second pass, independent of the acceptance patterns: a plain
// case-insensitive substring lookup used for display and bookkeeping only.
func DetectPlatform(url string) Platform {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "tiktok"):
		return PlatformTikTok
	case strings.Contains(lower, "instagram"), strings.Contains(lower, "ddinstagram"):
		return PlatformInstagram
	}
	return PlatformUnknown
}
