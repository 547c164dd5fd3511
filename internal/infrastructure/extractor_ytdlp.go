package infrastructure

import (
	"context"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/internal/domain"
)

// browserUserAgent is sent with every platform request; Instagram in
// particular serves different markup to unknown clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/120.0.0.0 Safari/537.36"

// progressSampleInterval controls how often yt-dlp progress updates are
// forwarded to the task record.
const progressSampleInterval = 500 * time.Millisecond

// YTDLPExtractor implements domain.Extractor on top of yt-dlp through the
// go-ytdlp wrapper. All platform-specific stream extraction and decoding
// lives behind that binary; this type only translates options, progress
// events and failures.
type YTDLPExtractor struct {
	config *domain.DownloadConfig
	logger *zap.Logger
}

// NewYTDLPExtractor creates a yt-dlp backed extractor
func NewYTDLPExtractor(config *domain.DownloadConfig, logger *zap.Logger) *YTDLPExtractor {
	return &YTDLPExtractor{
		config: config,
		logger: logger,
	}
}

// FetchMetadata resolves title, thumbnail, duration and uploader without
// downloading anything.
func (e *YTDLPExtractor) FetchMetadata(ctx context.Context, url string) (*domain.MediaInfo, error) {
	cmd := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		NoPlaylist().
		Quiet().
		SocketTimeout(e.config.SocketTimeout.Seconds()).
		AddHeaders("User-Agent:" + browserUserAgent)

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, domain.NewDownloadError(extractErrorText(result, err), err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return nil, domain.NewDownloadError("no metadata returned for "+url, err)
	}

	media := &domain.MediaInfo{
		Title:     derefString(info[0].Title),
		Thumbnail: derefString(info[0].Thumbnail),
		Uploader:  derefString(info[0].Uploader),
	}
	if info[0].Duration != nil {
		media.Duration = *info[0].Duration
	}
	if media.Title == "" {
		media.Title = "video"
	}

	e.logger.Debug("Metadata extracted",
		zap.String("url", url),
		zap.String("title", media.Title),
		zap.String("uploader", media.Uploader))

	return media, nil
}

// Download fetches the media into outputTemplate, preferring an mp4
// container and remuxing into it when the source differs. Transient network
// errors are retried by yt-dlp itself up to the configured cap.
func (e *YTDLPExtractor) Download(ctx context.Context, url, outputTemplate string, progress domain.ProgressFunc) error {
	cmd := ytdlp.New().
		Format(e.config.Format).
		MergeOutputFormat("mp4").
		Output(outputTemplate).
		NoPlaylist().
		Quiet().
		NoWarnings().
		Retries(strconv.Itoa(e.config.MaxRetries)).
		SocketTimeout(e.config.SocketTimeout.Seconds()).
		AddHeaders("User-Agent:" + browserUserAgent)

	if progress != nil {
		cmd.ProgressFunc(progressSampleInterval, func(update ytdlp.ProgressUpdate) {
			switch update.Status {
			case ytdlp.ProgressStatusDownloading:
				progress(int64(update.DownloadedBytes), int64(update.TotalBytes), false)
			case ytdlp.ProgressStatusFinished:
				progress(int64(update.DownloadedBytes), int64(update.TotalBytes), true)
			}
		})
	}

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return domain.NewDownloadError(extractErrorText(result, err), err)
	}

	return nil
}

// extractErrorText prefers yt-dlp's own stderr output over the wrapper's
// exit-status message, since the former carries the text the error
// classifier matches on.
func extractErrorText(result *ytdlp.Result, err error) string {
	if result != nil && result.Stderr != "" {
		return result.Stderr
	}
	return err.Error()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
