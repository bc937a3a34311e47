// Package discord exposes the calendar through a Discord bot: slash
// commands, button interactions and the pinned planning message.
package discord

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
)

// Discord message limits.
const (
	maxFields   = 25
	maxRows     = 5
	maxPerRow   = 5
	maxLabelLen = 80
	// The last row is reserved for week navigation.
	maxTaskButtons = (maxRows - 1) * maxPerRow
)

// Message is a planning view rendered for Discord.
type Message struct {
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	// Dropped counts fields and buttons left out to fit Discord's limits.
	Dropped int
}

// Embeds returns the embed as the slice the REST API expects.
func (m Message) Embeds() []*discordgo.MessageEmbed {
	return []*discordgo.MessageEmbed{m.Embed}
}

// Render converts v into an embed plus button rows.
func Render(v planning.View) Message {
	embed := &discordgo.MessageEmbed{
		Title:       v.Title,
		Description: v.Description,
		Color:       v.Color,
	}

	var m Message
	fields := v.Fields
	if len(fields) > maxFields {
		m.Dropped += len(fields) - maxFields
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("…and %d more", len(fields)-maxFields),
		}
		fields = fields[:maxFields]
	}
	for _, f := range fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  truncate(f.Name, 256), //nolint:mnd // Discord field name limit
			Value: f.Value,
		})
	}
	m.Embed = embed

	pending := v.PendingActions()
	if len(pending) > maxTaskButtons {
		m.Dropped += len(pending) - maxTaskButtons
		pending = pending[:maxTaskButtons]
	}
	for start := 0; start < len(pending); start += maxPerRow {
		end := min(start+maxPerRow, len(pending))
		m.Components = append(m.Components, row(pending[start:end], discordgo.SuccessButton))
	}
	if nav := v.NavigationActions(); len(nav) > 0 {
		m.Components = append(m.Components, row(nav, discordgo.PrimaryButton))
	}
	return m
}

func renderLogged(log *slog.Logger, v planning.View) Message {
	m := Render(v)
	if m.Dropped > 0 {
		log.Warn("planning truncated to Discord limits", "dropped", m.Dropped, "title", v.Title)
	}
	return m
}

func row(actions []planning.Action, style discordgo.ButtonStyle) discordgo.ActionsRow {
	r := discordgo.ActionsRow{}
	for _, a := range actions {
		r.Components = append(r.Components, discordgo.Button{
			Label:    truncate(a.Label, maxLabelLen),
			Style:    style,
			CustomID: a.Encode(),
		})
	}
	return r
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
