// The notify command pushes a one-off message to the dashboard's Telegram
// bot, for use from scripts and CI hooks.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/notify"
)

var (
	flagToken   string
	flagChatID  string
	flagAPIBase string
)

var rootCmd = &cobra.Command{
	Use:   "notify MESSAGE...",
	Short: "Send a notification to the team Telegram chat",
	Long: `Sends a Markdown-formatted message through the configured Telegram bot.
Credentials come from TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID, or the
--token and --chat-id flags. Without credentials the message is printed
to stdout instead of being sent.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runNotify,
}

func init() {
	rootCmd.Flags().StringVar(&flagToken, "token", "", "Telegram bot token (overrides TELEGRAM_BOT_TOKEN)")
	rootCmd.Flags().StringVar(&flagChatID, "chat-id", "", "Telegram chat ID (overrides TELEGRAM_CHAT_ID)")
	rootCmd.Flags().StringVar(&flagAPIBase, "api-base", "", "Telegram API base URL (for testing)")
}

func runNotify(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	token := flagToken
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	chatID := flagChatID
	if chatID == "" {
		chatID = os.Getenv("TELEGRAM_CHAT_ID")
	}

	if token == "" || chatID == "" {
		fmt.Println("Notification (not sent - missing credentials):")
		fmt.Println(message)
		return nil
	}

	client := notify.NewClient(flagAPIBase, token, chatID)
	if err := client.Send(message); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	fmt.Println("Telegram notification sent")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "notify: %s\n", err)
		os.Exit(1)
	}
}
