package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"adds scheme", "tiktok.com/@user/video/123", "https://tiktok.com/@user/video/123"},
		{"keeps https", "https://www.instagram.com/reel/abc/", "https://www.instagram.com/reel/abc/"},
		{"keeps http", "http://tiktok.com/@user", "http://tiktok.com/@user"},
		{"trims whitespace", "  tiktok.com/@user  ", "https://tiktok.com/@user"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.raw))
		})
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://www.tiktok.com/@user/video/123",
		"https://tiktok.com/@user/video/123",
		"https://vm.tiktok.com/ZMabcdef/",
		"https://vt.tiktok.com/ZSabcdef/",
		"http://www.tiktok.com/@user/video/123",
		"https://www.instagram.com/reel/Cabcdef/",
		"https://instagram.com/p/Cabcdef/",
		"https://ddinstagram.com/p/Cabcdef/",
	}
	for _, url := range valid {
		t.Run(url, func(t *testing.T) {
			assert.NoError(t, ValidateURL(url))
		})
	}

	invalid := []string{
		"https://youtube.com/watch?v=abc",
		"https://example.com/tiktok.com/",
		"not-a-real-url",
		"https://mytiktok.com/video",
		"https://vimeo.com/12345",
	}
	for _, url := range invalid {
		t.Run(url, func(t *testing.T) {
			assert.ErrorIs(t, ValidateURL(url), ErrUnsupportedURL)
		})
	}

	assert.ErrorIs(t, ValidateURL(""), ErrMissingURL)
}

func TestValidateURL_NormalizedSchemeless(t *testing.T) {
	// The acceptance patterns tolerate a missing scheme, so validation works
	// on raw input too, not only normalized URLs.
	assert.NoError(t, ValidateURL("tiktok.com/@user/video/123"))
	assert.NoError(t, ValidateURL("www.instagram.com/reel/abc/"))
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.tiktok.com/@user/video/123", PlatformTikTok},
		{"https://vm.tiktok.com/ZMabcdef/", PlatformTikTok},
		{"https://WWW.TIKTOK.COM/@user", PlatformTikTok},
		{"https://www.instagram.com/reel/abc/", PlatformInstagram},
		{"https://ddinstagram.com/p/abc/", PlatformInstagram},
		{"https://example.com", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}
