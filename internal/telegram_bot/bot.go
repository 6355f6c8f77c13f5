package telegram_bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"bullyguard/internal/classifier"
	"bullyguard/internal/models"
)

const (
	greetingText = "👋 Hi! Send me any message and I will tell you whether it reads as bullying or respectful."
	helpText     = "📚 Help:\n\n" +
		"/start - Greeting\n" +
		"/help - This help\n\n" +
		"Send any text message and I will reply with a label and a confidence score."
	emptyTextPrompt  = "Please send some text for me to analyze."
	classifyErrReply = "⚠️ Sorry, I could not analyze that message. Please try again."
	unknownCmdReply  = "Unknown command. Use /help for help."
)

// Bot receives chat messages, runs them through the classifier, and replies
// with the verdict.
type Bot struct {
	api    *tgbotapi.BotAPI
	clf    classifier.Classifier
	logger *zap.Logger
}

// NewBot creates a new Telegram bot instance.
func NewBot(token string, clf classifier.Classifier, logger *zap.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))

	return &Bot{
		api:    botAPI,
		clf:    clf,
		logger: logger,
	}, nil
}

// Start begins long polling for updates from Telegram. Updates are handled
// one at a time; a failed classification never stops the loop.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Telegram bot started, waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Telegram bot shutting down...")
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

// handleMessage dispatches commands and forwards everything else to the
// classifier.
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.sendMessage(message.Chat.ID, commandReply(message.Command()))
		return
	}

	b.sendMessage(message.Chat.ID, b.replyFor(ctx, message.Text))
}

// commandReply selects the fixed reply for a bot command.
func commandReply(cmd string) string {
	switch cmd {
	case "start":
		return greetingText
	case "help":
		return helpText
	default:
		return unknownCmdReply
	}
}

// replyFor produces the reply text for one inbound message. Blank input gets
// the fixed prompt without touching the classifier; classification failures
// are logged and turned into the fixed error reply.
func (b *Bot) replyFor(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return emptyTextPrompt
	}

	verdict, err := b.clf.Classify(ctx, text)
	if err != nil {
		b.logger.Error("Failed to classify message", zap.Error(err))
		return classifyErrReply
	}

	return formatVerdict(verdict)
}

// formatVerdict renders the two-line Markdown reply: a glyph-prefixed label
// line and a confidence line with two decimals.
func formatVerdict(v *models.Verdict) string {
	label := "✅ *Respectful*"
	if v.IsBullying() {
		label = "🚨 *Potential Bullying*"
	}
	return fmt.Sprintf("%s\nConfidence: %.2f%%", label, v.Confidence)
}

// sendMessage is a helper to send a Markdown-formatted text message.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
