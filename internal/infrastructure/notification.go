package infrastructure

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/internal/domain"
)

// NotificationService sends desktop notifications for terminal task states.
// Disabled by default; useful when the service runs on a workstation.
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
	}
}

// NotifyDownloadComplete announces a finished download.
func (n *NotificationService) NotifyDownloadComplete(filename string) {
	n.send("Download complete", filename)
}

// NotifyDownloadFailed announces a failed download.
func (n *NotificationService) NotifyDownloadFailed(url, reason string) {
	n.send("Download failed", fmt.Sprintf("%s: %s", url, reason))
}

func (n *NotificationService) send(title, message string) {
	if !n.config.Enabled {
		return
	}

	var cmd *exec.Cmd
	switch n.config.Method {
	case "osascript":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		cmd = exec.Command("osascript", "-e", script)
	case "notify-send":
		cmd = exec.Command("notify-send", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return
	}

	if err := cmd.Run(); err != nil {
		n.logger.Warn("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
	}
}
