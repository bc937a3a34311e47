package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
)

// restClient is the subset of *discordgo.Session used to manage messages.
type restClient interface {
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Messenger posts and edits planning messages over the REST API. It needs
// no gateway connection, so the CLI can use it too.
type Messenger struct {
	rest restClient
	log  *slog.Logger
}

// NewMessenger wraps a session (or any REST client with the same methods).
func NewMessenger(rest restClient, log *slog.Logger) *Messenger {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Messenger{rest: rest, log: log}
}

// Post implements calendar.Messenger.
func (m *Messenger) Post(ctx context.Context, channelID string, v planning.View) (string, error) {
	msg := renderLogged(m.log, v)
	sent, err := m.rest.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     msg.Embeds(),
		Components: msg.Components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("sending message to channel %s: %w", channelID, err)
	}
	return sent.ID, nil
}

// Update implements calendar.Messenger. The message is fetched first so a
// deleted message or unreachable channel is reported as such.
func (m *Messenger) Update(ctx context.Context, channelID, messageID string, v planning.View) error {
	if _, err := m.rest.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("fetching message %s in channel %s: %w", messageID, channelID, err)
	}

	msg := renderLogged(m.log, v)
	embeds := msg.Embeds()
	components := msg.Components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	_, err := m.rest.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("editing message %s: %w", messageID, err)
	}
	return nil
}
