package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the relay bot
type Config struct {
	// Telegram delivery settings
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`

	// Source scanning settings
	Scan ScanConfig `yaml:"scan" json:"scan"`

	// Relay pacing and caption settings
	Relay RelayConfig `yaml:"relay" json:"relay"`

	// Dedup state persistence
	Dedup DedupConfig `yaml:"dedup" json:"dedup"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TelegramConfig holds the destination channel and Bot API settings
type TelegramConfig struct {
	BotToken    string        `yaml:"bot_token" json:"bot_token"`
	ChannelID   string        `yaml:"channel_id" json:"channel_id"`
	APIBaseURL  string        `yaml:"api_base_url" json:"api_base_url"`
	SendTimeout time.Duration `yaml:"send_timeout" json:"send_timeout"`
}

// ScanConfig holds the source list and scraping settings
type ScanConfig struct {
	Sources        []string      `yaml:"sources" json:"sources"`
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	Lookback       time.Duration `yaml:"lookback" json:"lookback"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// RelayConfig holds pacing and caption settings
type RelayConfig struct {
	// PostDelay is the courtesy pause after each successful relay.
	PostDelay time.Duration `yaml:"post_delay" json:"post_delay"`
	// Footer is the signature line appended to every caption.
	Footer string `yaml:"footer" json:"footer"`
}

// DedupConfig holds the paths of the two flat state files
type DedupConfig struct {
	PostedIDsFile     string `yaml:"posted_ids_file" json:"posted_ids_file"`
	PostedContentFile string `yaml:"posted_content_file" json:"posted_content_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultSources is the fixed list of accounts the bot watches
var DefaultSources = []string{
	"@Anime", "@comic_natalie", "@MangaMoguraRE",
	"@AniNewsAndFacts", "@WSJ_manga", "@animetv_jp",
	"@animecornernews", "@animety_off", "@ItsAnimeJP",
	"@AIR_News01", "@AniTrendz", "@myanimelist",
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			APIBaseURL:  "https://api.telegram.org",
			SendTimeout: 15 * time.Second,
		},
		Scan: ScanConfig{
			Sources:        append([]string(nil), DefaultSources...),
			BaseURL:        "https://twitter.com",
			UserAgent:      "Mozilla/5.0",
			Lookback:       24 * time.Hour,
			RequestTimeout: 30 * time.Second,
		},
		Relay: RelayConfig{
			PostDelay: 10 * time.Second,
			Footer:    "🍁 | @TheAnimeTimes_acn",
		},
		Dedup: DedupConfig{
			PostedIDsFile:     "posted_tweets.json",
			PostedContentFile: "posted_content.json",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "animerelay.log",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	// Telegram credentials keep their original variable names so existing
	// deployments carry over unchanged
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.Telegram.BotToken = token
	}
	if channel := os.Getenv("TELEGRAM_CHANNEL_ID"); channel != "" {
		c.Telegram.ChannelID = channel
	}
	if base := os.Getenv("ANIMERELAY_API_BASE_URL"); base != "" {
		c.Telegram.APIBaseURL = base
	}

	if sources := os.Getenv("ANIMERELAY_SOURCES"); sources != "" {
		var list []string
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		if len(list) > 0 {
			c.Scan.Sources = list
		}
	}
	if lookback := os.Getenv("ANIMERELAY_LOOKBACK"); lookback != "" {
		if d, err := time.ParseDuration(lookback); err == nil && d > 0 {
			c.Scan.Lookback = d
		}
	}
	if delay := os.Getenv("ANIMERELAY_POST_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			c.Relay.PostDelay = d
		}
	}

	if idsFile := os.Getenv("ANIMERELAY_POSTED_IDS_FILE"); idsFile != "" {
		c.Dedup.PostedIDsFile = idsFile
	}
	if contentFile := os.Getenv("ANIMERELAY_POSTED_CONTENT_FILE"); contentFile != "" {
		c.Dedup.PostedContentFile = contentFile
	}

	if logLevel := os.Getenv("ANIMERELAY_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("ANIMERELAY_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".animerelay.yaml",
		".animerelay.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "animerelay", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "animerelay", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".animerelay.yaml"),
		filepath.Join(os.Getenv("HOME"), ".animerelay.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.BotToken == "" {
		errs = append(errs, errors.New("Telegram bot token is required"))
	}
	if c.Telegram.ChannelID == "" {
		errs = append(errs, errors.New("Telegram channel ID is required"))
	}
	if c.Telegram.APIBaseURL == "" {
		errs = append(errs, errors.New("Telegram API base URL is required"))
	}
	if c.Telegram.SendTimeout <= 0 {
		errs = append(errs, errors.New("send timeout must be positive"))
	}

	if len(c.Scan.Sources) == 0 {
		errs = append(errs, errors.New("at least one source is required"))
	}
	if c.Scan.BaseURL == "" {
		errs = append(errs, errors.New("scan base URL is required"))
	}
	if c.Scan.Lookback <= 0 {
		errs = append(errs, errors.New("lookback window must be positive"))
	}
	if c.Scan.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Relay.PostDelay < 0 {
		errs = append(errs, errors.New("post delay cannot be negative"))
	}

	if c.Dedup.PostedIDsFile == "" {
		errs = append(errs, errors.New("posted IDs file is required"))
	}
	if c.Dedup.PostedContentFile == "" {
		errs = append(errs, errors.New("posted content file is required"))
	}
	if c.Dedup.PostedIDsFile != "" && c.Dedup.PostedIDsFile == c.Dedup.PostedContentFile {
		errs = append(errs, errors.New("posted IDs and posted content files must differ"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["bot-token"].(string); ok && token != "" {
		c.Telegram.BotToken = token
	}
	if channel, ok := flags["channel"].(string); ok && channel != "" {
		c.Telegram.ChannelID = channel
	}
	if sources, ok := flags["sources"].([]string); ok && len(sources) > 0 {
		c.Scan.Sources = sources
	}
	if lookback, ok := flags["lookback"].(time.Duration); ok && lookback > 0 {
		c.Scan.Lookback = lookback
	}
	if delay, ok := flags["post-delay"].(time.Duration); ok && delay >= 0 {
		c.Relay.PostDelay = delay
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".animerelay.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
