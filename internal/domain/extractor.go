package domain

import "context"

// MediaInfo holds the metadata extracted for a media URL before downloading.
type MediaInfo struct {
	Title     string
	Thumbnail string
	Duration  float64
	Uploader  string
}

// ProgressFunc receives periodic transfer updates from an extractor.
// total is 0 when the size is unknown. finished fires once at the end of the
// transfer, before any finalization or remuxing happens.
type ProgressFunc func(downloaded, total int64, finished bool)

// Extractor is the external collaborator that knows how to talk to the video
// platforms. Implementations perform blocking network calls and must honour
// the context.
type Extractor interface {
	// FetchMetadata resolves the media metadata without downloading.
	FetchMetadata(ctx context.Context, url string) (*MediaInfo, error)

	// Download fetches the media into outputTemplate (an output path pattern
	// understood by the backend), reporting progress through the callback.
	Download(ctx context.Context, url, outputTemplate string, progress ProgressFunc) error
}

// DownloadError is the distinguishable failure type for extraction and
// download errors. Its message text carries whatever the backend reported and
// is what the error classifier pattern-matches on.
type DownloadError struct {
	Message string
	Cause   error
}

func (e *DownloadError) Error() string {
	return e.Message
}

func (e *DownloadError) Unwrap() error {
	return e.Cause
}

// NewDownloadError wraps a backend failure.
func NewDownloadError(msg string, cause error) *DownloadError {
	return &DownloadError{Message: msg, Cause: cause}
}
