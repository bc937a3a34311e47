package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/twiced-technology-gmbh/weekplan/internal/calendar"
	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
)

const (
	// Discord drops interactions that are not answered within three seconds.
	answerTimeout = 3 * time.Second
	syncTimeout   = 15 * time.Second
)

// responder answers interactions; *discordgo.Session implements it.
type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Bot connects the calendar service to the Discord gateway.
type Bot struct {
	session *discordgo.Session
	svc     *calendar.Service
	log     *slog.Logger
	guildID string
	ctx     context.Context //nolint:containedctx // handlers run on discordgo goroutines
}

// NewSession creates an unconnected session authenticated with a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

// NewBot creates a bot. Commands are registered in guildID, or globally
// when it is empty. svc must be built with calendar.WithDeferredSync: the
// bot refreshes the pinned message itself once the interaction is answered.
func NewBot(session *discordgo.Session, svc *calendar.Service, log *slog.Logger, guildID string) *Bot {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Bot{
		session: session,
		svc:     svc,
		log:     log,
		guildID: guildID,
		ctx:     context.Background(),
	}
}

// Run connects to the gateway, registers the slash commands and serves
// interactions until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening gateway connection: %w", err)
	}
	defer b.session.Close() //nolint:errcheck // shutting down

	appID := b.session.State.User.ID
	cmds, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, Commands(), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("registering slash commands: %w", err)
	}
	b.log.Info("slash commands registered", "count", len(cmds), "guild_id", b.guildID)

	<-ctx.Done()
	b.log.Info("disconnecting")
	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("connected", "user", r.User.String(), "guilds", len(r.Guilds))
}

func (b *Bot) onInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	b.respond(b.ctx, s, ic.Interaction)
}

// respond answers i and then, if the interaction changed the tasks,
// refreshes the pinned message. The refresh never delays the answer.
func (b *Bot) respond(parent context.Context, r responder, i *discordgo.Interaction) {
	ctx, cancel := context.WithTimeout(parent, answerTimeout)
	resp, mutated := b.handle(ctx, i)
	if resp != nil {
		if err := r.InteractionRespond(i, resp, discordgo.WithContext(ctx)); err != nil {
			b.log.Warn("answering interaction", "interaction_id", i.ID, "error", err)
		}
	}
	cancel()

	if mutated {
		sctx, scancel := context.WithTimeout(parent, syncTimeout)
		defer scancel()
		b.svc.Syncer().Refresh(sctx)
	}
}

// handle returns the answer to i and whether it mutated the tasks.
func (b *Bot) handle(ctx context.Context, i *discordgo.Interaction) (*discordgo.InteractionResponse, bool) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return b.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		return b.handleComponent(ctx, i)
	default:
		return nil, false
	}
}

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.Interaction) (*discordgo.InteractionResponse, bool) {
	data := i.ApplicationCommandData()
	opts := optionsOf(data.Options)
	c := callerOf(i)
	log := b.log.With("command", data.Name, "user", c.Name, "user_id", c.ID)

	switch data.Name {
	case cmdAdd:
		t, err := b.svc.Add(ctx, c, opts.str(optTitle), opts.str(optDate))
		if err != nil {
			return fail(log, err), false
		}
		return ephemeral(fmt.Sprintf("✅ Task added: %s – %s (ID %d)", t.Date, t.Title, t.ID)), true

	case cmdEdit:
		var eo calendar.EditOptions
		if v, ok := opts.lookupStr(optNewTitle); ok {
			eo.Title = &v
		}
		if v, ok := opts.lookupStr(optNewDate); ok {
			eo.Date = &v
		}
		t, err := b.svc.Edit(ctx, c, opts.integer(optTaskID), eo)
		if err != nil {
			return fail(log, err), false
		}
		return ephemeral(fmt.Sprintf("✏️ Task ID %d updated: %s – %s", t.ID, t.Date, t.Title)), true

	case cmdList:
		tasks, _, err := b.svc.List(ctx)
		if err != nil {
			return fail(log, err), false
		}
		if len(tasks) == 0 {
			return public("📭 No tasks recorded."), false
		}
		return publicView(renderLogged(log, planning.BuildList(tasks))), false

	case cmdWeek:
		v, err := b.svc.Week(ctx, 0)
		if err != nil {
			return fail(log, err), false
		}
		return publicView(renderLogged(log, v)), false

	case cmdRemove:
		id := opts.integer(optTaskID)
		if _, err := b.svc.Remove(ctx, c, id); err != nil {
			return fail(log, err), false
		}
		return public(fmt.Sprintf("🗑️ Task ID %d removed.", id)), true

	case cmdClear:
		if _, err := b.svc.Clear(ctx, c); err != nil {
			return fail(log, err), false
		}
		return public("🗑️ All tasks have been removed."), true

	case cmdChannel:
		p, err := b.svc.Configure(ctx, c, opts.channel(optChannel))
		if err != nil {
			return fail(log, err), false
		}
		return public(fmt.Sprintf("✅ Planning configured in <#%s>", p.ChannelID)), false

	default:
		log.Warn("unknown command")
		return ephemeral("⚠️ Unknown command."), false
	}
}

func (b *Bot) handleComponent(ctx context.Context, i *discordgo.Interaction) (*discordgo.InteractionResponse, bool) {
	data := i.MessageComponentData()
	c := callerOf(i)
	log := b.log.With("custom_id", data.CustomID, "user", c.Name, "user_id", c.ID)

	a, err := planning.Decode(data.CustomID)
	if err != nil {
		log.Warn("unknown button", "error", err)
		return ephemeral("⚠️ This button is no longer valid."), false
	}

	out, err := b.svc.HandleAction(ctx, c, a)
	if err != nil {
		return fail(log, err), false
	}
	if out.View != nil {
		msg := renderLogged(log, *out.View)
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     msg.Embeds(),
				Components: msg.Components,
			},
		}, false
	}
	return public(fmt.Sprintf("✅ **%s** completed task: *%s*", c.Name, out.Task.Title)), true
}
