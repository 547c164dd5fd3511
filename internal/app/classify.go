package app

import (
	"errors"
	"strings"

	"github.com/wassimajzoub/saveclip/internal/domain"
)

// User-facing messages for the download failure buckets.
const (
	msgPrivate = "This content is private or requires login."
	msgDeleted = "Video not found. It may have been deleted."
	msgBlocked = "Could not download the video. It may be unavailable or the platform may be blocking the request."

	msgFileMissing = "Download completed but file not found."
)

// classifyDownloadError maps an extractor failure onto one of the user-facing
// messages. The substring heuristics on the backend's error text are fragile
// by nature, which is why they live here and nowhere else: the worker only
// ever sees the resulting message.
func classifyDownloadError(err error) string {
	var dlErr *domain.DownloadError
	if !errors.As(err, &dlErr) {
		return "Unexpected error: " + err.Error()
	}

	msg := dlErr.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "Private") || strings.Contains(lower, "login"):
		return msgPrivate
	case strings.Contains(lower, "not found") || strings.Contains(msg, "404"):
		return msgDeleted
	default:
		return msgBlocked
	}
}
