package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"animerelay/pkg/auth"
	"animerelay/pkg/config"
	"animerelay/pkg/dedup"
	"animerelay/pkg/logger"
	"animerelay/pkg/pipeline"
	"animerelay/pkg/scanner"
	"animerelay/pkg/telegram"
)

var (
	// Run command flags
	lookback  time.Duration
	postDelay time.Duration
	sources   []string
	dryRun    bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan all sources once and relay new posts",
	Long: `Scan every configured source account for recent posts with media,
drop the ones that were already relayed, and post the rest to the
configured Telegram channel.

Credentials are resolved from (in order): stored credentials
('animerelay auth set'), the TELEGRAM_BOT_TOKEN and TELEGRAM_CHANNEL_ID
environment variables, or the configuration file.`,
	Example: `  # One full scan-and-relay pass
  animerelay run

  # Widen the lookback window and scan a single account
  animerelay run --lookback 48h --source @myanimelist

  # See what would be posted without sending anything
  animerelay run --dry-run`,
	Args: cobra.NoArgs,
	Run:  runRelay,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&lookback, "lookback", 0, "maximum post age to consider (default 24h)")
	runCmd.Flags().DurationVar(&postDelay, "post-delay", -1, "pause after each successful relay (default 10s)")
	runCmd.Flags().StringArrayVar(&sources, "source", nil, "source account to scan (repeatable, overrides the configured list)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "format candidates without sending or persisting anything")
}

func runRelay(cmd *cobra.Command, args []string) {
	flags := make(map[string]interface{})
	if lookback > 0 {
		flags["lookback"] = lookback
	}
	if postDelay >= 0 {
		flags["post-delay"] = postDelay
	}
	if len(sources) > 0 {
		flags["sources"] = sources
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if logFile != "" {
		flags["log-file"] = logFile
	}

	// Stored credentials win over the config file; the environment wins
	// over both (RetrieveDefault checks it first).
	if credManager, err := auth.NewManager(); err == nil {
		if creds, err := credManager.RetrieveDefault(); err == nil {
			flags["bot-token"] = creds.BotToken
			flags["channel"] = creds.ChannelID
		}
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("animerelay starting")

	fetcher := scanner.NewHTTPFetcher(&cfg.Scan, log)

	p := pipeline.New(cfg, pipeline.Options{
		Scanner:    scanner.New(fetcher, cfg.Scan.Lookback, log),
		Dispatcher: telegram.NewClient(&cfg.Telegram, log),
		Store:      dedup.NewStore(&cfg.Dedup, log),
		DryRun:     dryRun,
		Logger:     log,
	})

	result := p.Run()

	if result.SourcesFailed > 0 && result.SourcesScanned == 0 {
		// Everything failed; surface it to the scheduler.
		os.Exit(1)
	}
}
