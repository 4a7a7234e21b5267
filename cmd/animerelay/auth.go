package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"animerelay/pkg/auth"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Telegram bot credentials",
	Long: `Manage the stored Telegram bot credentials.

Credentials are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (TELEGRAM_BOT_TOKEN, TELEGRAM_CHANNEL_ID)

Never share your bot token or config files!`,
}

// authSetCmd represents the auth set command
var authSetCmd = &cobra.Command{
	Use:   "set [profile]",
	Short: "Store bot credentials securely",
	Long: `Store the bot token and destination channel ID securely in the
system keychain or an encrypted file.

You will be prompted for:
  - Channel ID (e.g. @mychannel or -1001234567890)
  - Bot token (input is hidden)`,
	Example: `  # Store the default credentials
  animerelay auth set

  # Store credentials under a named profile
  animerelay auth set staging`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAuthSet,
}

// authStatusCmd represents the auth status command
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored credential profiles",
	Long:  `List all stored credential profiles with the bot token masked.`,
	Run:   runAuthStatus,
}

// authRemoveCmd represents the auth remove command
var authRemoveCmd = &cobra.Command{
	Use:   "remove [profile]",
	Short: "Remove stored credentials",
	Args:  cobra.MaximumNArgs(1),
	Run:   runAuthRemove,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRemoveCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize credential manager: %v\n", err)
		os.Exit(1)
	}

	profile := auth.DefaultProfile
	if len(args) > 0 {
		profile = args[0]
	}

	auth.ShowBotSetupGuide()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Channel ID: ")
	channel, _ := reader.ReadString('\n')
	channel = strings.TrimSpace(channel)

	fmt.Print("Bot token (input hidden): ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read token: %v\n", err)
		os.Exit(1)
	}
	token := strings.TrimSpace(string(tokenBytes))

	creds := &auth.Credentials{
		Name:      profile,
		BotToken:  token,
		ChannelID: channel,
	}

	if err := manager.Store(creds); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to store credentials: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credentials stored for profile %q.\n", profile)
}

func runAuthStatus(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize credential manager: %v\n", err)
		os.Exit(1)
	}

	profiles, err := manager.List()
	if err != nil || len(profiles) == 0 {
		fmt.Println("No stored credentials. Run 'animerelay auth set' or export")
		fmt.Println("TELEGRAM_BOT_TOKEN and TELEGRAM_CHANNEL_ID.")
		return
	}

	for _, creds := range profiles {
		s := auth.Sanitize(creds)
		fmt.Printf("%-12s channel=%s token=%s modified=%s\n",
			s.Name, s.ChannelID, s.BotToken, s.LastModified.Format("2006-01-02 15:04"))
	}
}

func runAuthRemove(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize credential manager: %v\n", err)
		os.Exit(1)
	}

	profile := auth.DefaultProfile
	if len(args) > 0 {
		profile = args[0]
	}

	if err := manager.Delete(profile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to remove credentials: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credentials removed for profile %q.\n", profile)
}
