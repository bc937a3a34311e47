// Package calendar implements the calendar's operations independently of
// any chat platform: it validates and authorizes requests, applies them to
// the task store and keeps the pinned planning message in sync.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/twiced-technology-gmbh/weekplan/internal/activity"
	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/date"
	"github.com/twiced-technology-gmbh/weekplan/internal/filelock"
	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
	"github.com/twiced-technology-gmbh/weekplan/internal/store"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// Caller identifies whoever triggered an operation.
type Caller struct {
	ID    string
	Name  string // display name, recorded when completing tasks
	Admin bool
}

// Messenger publishes planning views on the chat platform.
type Messenger interface {
	// Post sends a new message showing v and returns its ID.
	Post(ctx context.Context, channelID string, v planning.View) (messageID string, err error)
	// Update replaces the content and buttons of an existing message.
	Update(ctx context.Context, channelID, messageID string, v planning.View) error
}

// ErrNoMessenger is returned by operations that need a chat platform
// session when the service runs without one.
var ErrNoMessenger = errors.New("no chat platform session available")

// Service runs calendar operations against a task store and pointer store.
type Service struct {
	tasks    *store.TaskStore
	pointer  *store.PointerStore
	msgr     Messenger
	syncer   *Syncer
	log      *slog.Logger
	activity *activity.Log
	loc      *time.Location
	now      func() time.Time
	lockPath string
	deferred bool

	mu sync.Mutex // serializes load-modify-save within the process
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithActivityLog records every mutation to l.
func WithActivityLog(l *activity.Log) Option {
	return func(s *Service) { s.activity = l }
}

// WithLocation sets the timezone deciding which week is current.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithLockFile makes mutations hold an advisory lock on path, serializing
// them with other processes sharing the same storage.
func WithLockFile(path string) Option {
	return func(s *Service) { s.lockPath = path }
}

// WithDeferredSync stops mutations from refreshing the pinned message
// before they return. The caller then runs Syncer().Refresh itself, after
// it has answered whoever triggered the mutation.
func WithDeferredSync() Option {
	return func(s *Service) { s.deferred = true }
}

// New creates a Service. msgr may be nil, in which case the pinned message
// is never refreshed and Configure fails with ErrNoMessenger.
func New(tasks *store.TaskStore, pointer *store.PointerStore, msgr Messenger, opts ...Option) *Service {
	s := &Service{
		tasks:   tasks,
		pointer: pointer,
		msgr:    msgr,
		log:     slog.New(slog.DiscardHandler),
		loc:     time.Local,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.syncer = &Syncer{
		tasks:   tasks,
		pointer: pointer,
		msgr:    msgr,
		log:     s.log,
		today:   s.Today,
	}
	return s
}

// SetNow overrides the clock (for testing).
func (s *Service) SetNow(fn func() time.Time) {
	s.now = fn
}

// Today returns the current date in the service's timezone.
func (s *Service) Today() date.Date {
	return date.Of(s.now(), s.loc)
}

// Syncer returns the controller refreshing the pinned message.
func (s *Service) Syncer() *Syncer {
	return s.syncer
}

// EditOptions lists the fields Edit changes; nil or blank fields are kept.
type EditOptions struct {
	Title *string
	Date  *string
}

// Add appends a pending task dated day (DD/MM/YYYY).
func (s *Service) Add(ctx context.Context, c Caller, title, day string) (task.Task, error) {
	if err := requireAdmin(c, "add tasks"); err != nil {
		return task.Task{}, err
	}
	title = strings.TrimSpace(title)
	if err := task.ValidateTitle(title); err != nil {
		return task.Task{}, err
	}
	if err := task.ValidateDate("date", day); err != nil {
		return task.Task{}, err
	}

	var added task.Task
	err := s.mutate(ctx, func(tasks []task.Task) ([]task.Task, error) {
		added = task.New(task.NextID(tasks), title, day)
		return append(tasks, added), nil
	})
	if err != nil {
		return task.Task{}, err
	}

	s.record(c, "add", added.ID, added.Date+" "+added.Title)
	s.afterMutation(ctx)
	return added, nil
}

// Edit changes the title and/or date of task id, whatever its state.
func (s *Service) Edit(ctx context.Context, c Caller, id int, opts EditOptions) (task.Task, error) {
	if err := requireAdmin(c, "edit tasks"); err != nil {
		return task.Task{}, err
	}
	opts.Title = nonBlank(opts.Title)
	opts.Date = nonBlank(opts.Date)
	if opts.Title == nil && opts.Date == nil {
		return task.Task{}, clierr.New(clierr.NoChanges, "nothing to change: give a new title or a new date")
	}
	if opts.Date != nil {
		if err := task.ValidateDate("date", *opts.Date); err != nil {
			return task.Task{}, err
		}
	}

	var edited task.Task
	err := s.mutate(ctx, func(tasks []task.Task) ([]task.Task, error) {
		t, err := task.Find(tasks, id)
		if err != nil {
			return nil, err
		}
		task.Edit(t, opts.Title, opts.Date)
		edited = *t
		return tasks, nil
	})
	if err != nil {
		return task.Task{}, err
	}

	s.record(c, "edit", edited.ID, edited.Date+" "+edited.Title)
	s.afterMutation(ctx)
	return edited, nil
}

// nonBlank trims v, treating a blank value as not given.
func nonBlank(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Remove deletes task id. Remaining tasks are renumbered 1..N.
func (s *Service) Remove(ctx context.Context, c Caller, id int) (task.Task, error) {
	if err := requireAdmin(c, "remove tasks"); err != nil {
		return task.Task{}, err
	}

	var removed task.Task
	err := s.mutate(ctx, func(tasks []task.Task) ([]task.Task, error) {
		out, r, err := task.Remove(tasks, id)
		removed = r
		return out, err
	})
	if err != nil {
		return task.Task{}, err
	}

	s.record(c, "remove", id, removed.Title)
	s.afterMutation(ctx)
	return removed, nil
}

// Clear deletes every task and returns how many there were.
func (s *Service) Clear(ctx context.Context, c Caller) (int, error) {
	if err := requireAdmin(c, "clear tasks"); err != nil {
		return 0, err
	}

	var n int
	err := s.mutate(ctx, func(tasks []task.Task) ([]task.Task, error) {
		n = len(tasks)
		return []task.Task{}, nil
	})
	if err != nil {
		return 0, err
	}

	s.record(c, "clear", 0, fmt.Sprintf("%d tasks", n))
	s.afterMutation(ctx)
	return n, nil
}

// MarkDone completes task id on behalf of c. Anyone may complete a task.
func (s *Service) MarkDone(ctx context.Context, c Caller, id int) (task.Task, error) {
	return s.complete(ctx, c, planning.Action{Kind: planning.ActionMarkDone, TaskID: id})
}

func (s *Service) complete(ctx context.Context, c Caller, a planning.Action) (task.Task, error) {
	var done task.Task
	err := s.mutate(ctx, func(tasks []task.Task) ([]task.Task, error) {
		t, err := task.Find(tasks, a.TaskID)
		if err != nil {
			return nil, err
		}
		if !a.Matches(*t) {
			return nil, clierr.Newf(clierr.StaleAction,
				"task #%d changed since this button was shown; refresh the planning", a.TaskID).
				WithDetails(map[string]any{"id": a.TaskID})
		}
		if err := task.MarkDone(t, c.Name); err != nil {
			return nil, err
		}
		done = *t
		return tasks, nil
	})
	if err != nil {
		return task.Task{}, err
	}

	s.record(c, "done", done.ID, done.Title)
	s.afterMutation(ctx)
	return done, nil
}

// List returns every task in store order with any load warnings.
func (s *Service) List(ctx context.Context) ([]task.Task, []task.Warning, error) {
	return s.tasks.LoadAll(ctx)
}

// Week builds the planning view offset weeks away from the current week.
func (s *Service) Week(ctx context.Context, offset int) (planning.View, error) {
	tasks, _, err := s.tasks.LoadAll(ctx)
	if err != nil {
		return planning.View{}, err
	}
	return planning.BuildWeek(tasks, date.Week(s.Today(), offset), offset), nil
}

// Configure posts a fresh planning message in channelID and makes it the
// pinned message kept in sync from now on.
func (s *Service) Configure(ctx context.Context, c Caller, channelID string) (store.Pointer, error) {
	if err := requireAdmin(c, "configure the planning channel"); err != nil {
		return store.Pointer{}, err
	}
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return store.Pointer{}, clierr.New(clierr.InvalidInput, "a target channel is required")
	}
	if s.msgr == nil {
		return store.Pointer{}, ErrNoMessenger
	}

	view, err := s.Week(ctx, 0)
	if err != nil {
		return store.Pointer{}, err
	}
	msgID, err := s.msgr.Post(ctx, channelID, view)
	if err != nil {
		return store.Pointer{}, fmt.Errorf("posting planning message: %w", err)
	}

	p := store.Pointer{ChannelID: channelID, MessageID: msgID}
	if err := s.pointer.Save(ctx, p); err != nil {
		return store.Pointer{}, fmt.Errorf("saving planning channel: %w", err)
	}

	s.record(c, "channel", 0, channelID)
	return p, nil
}

// Pointer returns the pinned message location, if one is configured.
func (s *Service) Pointer(ctx context.Context) (store.Pointer, bool, error) {
	return s.pointer.Load(ctx)
}

func (s *Service) afterMutation(ctx context.Context) {
	if !s.deferred {
		s.syncer.Refresh(ctx)
	}
}

// mutate runs one load-modify-save cycle under the service's locks. fn gets
// the freshly loaded tasks and returns the list to save.
func (s *Service) mutate(ctx context.Context, fn func([]task.Task) ([]task.Task, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lockPath != "" {
		l, err := filelock.Acquire(s.lockPath)
		if err != nil {
			return fmt.Errorf("acquiring lock: %w", err)
		}
		defer l.Release() //nolint:errcheck // best-effort unlock
	}

	tasks, _, err := s.tasks.LoadAll(ctx)
	if err != nil {
		return err
	}
	out, err := fn(tasks)
	if err != nil {
		return err
	}
	if err := s.tasks.SaveAll(ctx, out); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (s *Service) record(c Caller, action string, taskID int, detail string) {
	s.log.Info("calendar "+action, "task_id", taskID, "actor", c.Name, "detail", detail)
	s.activity.Record(action, taskID, c.Name, detail)
}

func requireAdmin(c Caller, what string) error {
	if c.Admin {
		return nil
	}
	return clierr.Newf(clierr.Forbidden, "only administrators can %s", what).
		WithDetails(map[string]any{"caller": c.Name})
}
