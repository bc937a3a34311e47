package discord

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/twiced-technology-gmbh/weekplan/internal/calendar"
	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
)

const genericFailure = "⚠️ Something went wrong, please try again later."

func public(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	}
}

func publicView(m Message) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     m.Embeds(),
			Components: m.Components,
		},
	}
}

func ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// fail turns an operation error into a private reply. Errors that are not
// the caller's fault are logged and answered generically.
func fail(log *slog.Logger, err error) *discordgo.InteractionResponse {
	if !clierr.IsUserFacing(err) {
		log.Error("interaction failed", "error", err)
		return ephemeral(genericFailure)
	}

	log.Info("interaction rejected", "code", clierr.CodeOf(err), "reason", err.Error())
	prefix := "⚠️ "
	if clierr.CodeOf(err) == clierr.Forbidden {
		prefix = "⛔ "
	}
	return ephemeral(prefix + upperFirst(err.Error()))
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// callerOf identifies the user behind an interaction. Only guild members
// can be administrators; direct messages never are.
func callerOf(i *discordgo.Interaction) calendar.Caller {
	if i.Member != nil && i.Member.User != nil {
		return calendar.Caller{
			ID:    i.Member.User.ID,
			Name:  displayName(i.Member),
			Admin: i.Member.Permissions&discordgo.PermissionAdministrator != 0,
		}
	}
	if i.User != nil {
		return calendar.Caller{ID: i.User.ID, Name: userName(i.User)}
	}
	return calendar.Caller{}
}

func displayName(m *discordgo.Member) string {
	if nick := strings.TrimSpace(m.Nick); nick != "" {
		return nick
	}
	return userName(m.User)
}

func userName(u *discordgo.User) string {
	if name := strings.TrimSpace(u.GlobalName); name != "" {
		return name
	}
	return u.Username
}

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionsOf(opts []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	m := make(optionMap, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (m optionMap) lookupStr(name string) (string, bool) {
	o, ok := m[name]
	if !ok || o.Type != discordgo.ApplicationCommandOptionString {
		return "", false
	}
	return o.StringValue(), true
}

func (m optionMap) str(name string) string {
	v, _ := m.lookupStr(name)
	return v
}

func (m optionMap) integer(name string) int {
	o, ok := m[name]
	if !ok || o.Type != discordgo.ApplicationCommandOptionInteger {
		return 0
	}
	return int(o.IntValue())
}

func (m optionMap) channel(name string) string {
	o, ok := m[name]
	if !ok || o.Type != discordgo.ApplicationCommandOptionChannel {
		return ""
	}
	return o.ChannelValue(nil).ID
}
