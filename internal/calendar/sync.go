package calendar

import (
	"context"
	"log/slog"

	"github.com/twiced-technology-gmbh/weekplan/internal/date"
	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
	"github.com/twiced-technology-gmbh/weekplan/internal/store"
)

// Syncer keeps the pinned planning message showing the current week.
type Syncer struct {
	tasks   *store.TaskStore
	pointer *store.PointerStore
	msgr    Messenger
	log     *slog.Logger
	today   func() date.Date
}

// Refresh re-renders the current week into the pinned message. It never
// fails: a missing pointer is a no-op and platform errors are logged, so
// the mutation that triggered the refresh still succeeds.
func (s *Syncer) Refresh(ctx context.Context) {
	if s.msgr == nil {
		return
	}

	p, ok, err := s.pointer.Load(ctx)
	if err != nil {
		s.log.Warn("loading planning channel", "error", err)
		return
	}
	if !ok {
		s.log.Debug("no planning channel configured, skipping refresh")
		return
	}

	tasks, _, err := s.tasks.LoadAll(ctx)
	if err != nil {
		s.log.Warn("loading tasks for refresh", "error", err)
		return
	}

	view := planning.BuildWeek(tasks, date.Week(s.today(), 0), 0)
	if err := s.msgr.Update(ctx, p.ChannelID, p.MessageID, view); err != nil {
		s.log.Warn("refreshing planning message",
			"channel_id", p.ChannelID,
			"message_id", p.MessageID,
			"error", err,
		)
		return
	}
	s.log.Debug("planning message refreshed", "channel_id", p.ChannelID, "message_id", p.MessageID)
}
