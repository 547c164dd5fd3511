package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Retention    RetentionConfig    `mapstructure:"retention"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	Dir           string        `mapstructure:"dir"`
	Format        string        `mapstructure:"format"`
	MaxRetries    int           `mapstructure:"max_retries"`
	SocketTimeout time.Duration `mapstructure:"socket_timeout"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	TitleMaxLen   int           `mapstructure:"title_max_len"`
}

// RetentionConfig controls how long downloaded artifacts are kept on disk
type RetentionConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	MaxAge   time.Duration `mapstructure:"max_age"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Download: DownloadConfig{
			Dir:           "downloads",
			Format:        "best[ext=mp4]/best",
			MaxRetries:    3,
			SocketTimeout: 30 * time.Second,
			MaxConcurrent: 4,
			TitleMaxLen:   80,
		},
		Retention: RetentionConfig{
			Interval: 5 * time.Minute,
			MaxAge:   30 * time.Minute,
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
