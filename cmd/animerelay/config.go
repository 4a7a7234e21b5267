package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"animerelay/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage animerelay configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables
  - Configuration file
  - Default values (lowest priority)`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is created as '.animerelay.yaml' in the current directory unless
a different path is given with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration merged from all sources.
The bot token is masked.`,
	Run: runConfigShow,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Run:   runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

const exampleConfig = `# animerelay configuration file
#
# Credentials can also come from the environment (TELEGRAM_BOT_TOKEN,
# TELEGRAM_CHANNEL_ID) or from 'animerelay auth set'; leaving them out of
# this file is recommended.

telegram:
  bot_token: ""
  channel_id: ""
  api_base_url: "https://api.telegram.org"
  send_timeout: 15s

scan:
  # Source accounts to watch. Leading @ is optional.
  sources:
    - "@Anime"
    - "@comic_natalie"
    - "@MangaMoguraRE"
    - "@AniNewsAndFacts"
    - "@WSJ_manga"
    - "@animetv_jp"
    - "@animecornernews"
    - "@animety_off"
    - "@ItsAnimeJP"
    - "@AIR_News01"
    - "@AniTrendz"
    - "@myanimelist"
  base_url: "https://twitter.com"
  user_agent: "Mozilla/5.0"
  # Only posts younger than this are considered.
  lookback: 24h
  request_timeout: 30s

relay:
  # Courtesy pause after each successful post.
  post_delay: 10s
  footer: "🍁 | @TheAnimeTimes_acn"

dedup:
  posted_ids_file: "posted_tweets.json"
  posted_content_file: "posted_content.json"

logging:
  level: "info"
  file: "animerelay.log"
`

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = ".animerelay.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(os.Stderr, "Configuration file already exists: %s\n", configPath)
		os.Exit(1)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write configuration file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", configPath)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment: %v\n", err)
		os.Exit(1)
	}

	// Never print the real token
	if cfg.Telegram.BotToken != "" {
		cfg.Telegram.BotToken = "********"
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render configuration: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	if _, err := config.Load(configFile, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration invalid:\n%v\n", err)
		os.Exit(1)
	}
	fmt.Println("Configuration is valid.")
}
