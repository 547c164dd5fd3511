package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wassimajzoub/saveclip/internal/app"
	"github.com/wassimajzoub/saveclip/pkg/logger"
)

const version = "1.0.0"

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "saveclip",
		Short: "saveclip - download videos from TikTok and Instagram",
		Long:  `A small self-contained service that downloads videos from TikTok and Instagram via yt-dlp, with progress polling over HTTP.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(versionCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the download service",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one retention sweep over the download directory and exit",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := app.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		log := logger.NewDefault()
		defer log.Sync()

		sweeper := app.NewSweeper(config.Download.Dir, &config.Retention, log)
		sweeper.SweepOnce()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("saveclip %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
