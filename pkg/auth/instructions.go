package auth

import (
	"fmt"
	"strings"
)

// ShowBotSetupGuide displays step-by-step instructions for obtaining the
// bot token and channel ID
func ShowBotSetupGuide() {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("🤖 TELEGRAM BOT SETUP GUIDE")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()

	fmt.Println("The relay needs a bot token and the ID of the destination channel.")
	fmt.Println()

	fmt.Println("STEP 1: Create a bot")
	fmt.Println("   - Open a chat with @BotFather on Telegram")
	fmt.Println("   - Send /newbot and follow the prompts")
	fmt.Println("   - Copy the token it gives you (looks like 123456789:AAF...xyz)")
	fmt.Println()

	fmt.Println("STEP 2: Prepare the channel")
	fmt.Println("   - Add the bot to your channel as an administrator")
	fmt.Println("   - The channel ID is either @yourchannelname or a numeric")
	fmt.Println("     ID like -1001234567890 (forward a channel post to")
	fmt.Println("     @userinfobot to see it)")
	fmt.Println()

	fmt.Println("⚠️  The token gives full control of the bot. Never commit it or")
	fmt.Println("   share it; this tool stores it in the system keychain or an")
	fmt.Println("   encrypted file.")
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()
}
