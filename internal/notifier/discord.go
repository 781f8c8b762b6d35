package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// discordAPI is the part of *discordgo.Session the sink uses.
type discordAPI interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// DiscordSink mirrors notices into a Discord channel. The message is deleted
// when the notice is dismissed.
type DiscordSink struct {
	session   discordAPI
	channelID string
	logger    *slog.Logger
}

// NewDiscordSink opens a bot session for the given token.
func NewDiscordSink(token, channelID string, logger *slog.Logger) (*DiscordSink, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return newDiscordSink(session, channelID, logger), nil
}

func newDiscordSink(session discordAPI, channelID string, logger *slog.Logger) *DiscordSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscordSink{session: session, channelID: channelID, logger: logger}
}

func (s *DiscordSink) Show(ctx context.Context, n Notice) (func(), error) {
	msg, err := s.session.ChannelMessageSend(s.channelID, formatNotice(n), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send discord message: %w", err)
	}

	return func() {
		if err := s.session.ChannelMessageDelete(s.channelID, msg.ID); err != nil {
			s.logger.Warn("failed to delete discord message", "error", err, "message_id", msg.ID)
		}
	}, nil
}

func formatNotice(n Notice) string {
	icon := map[Kind]string{
		KindSuccess: "✅",
		KindError:   "❌",
		KindInfo:    "ℹ️",
		KindWarning: "⚠️",
	}[n.Kind]
	return fmt.Sprintf("%s **Diet forms**\n%s", icon, n.Message)
}
