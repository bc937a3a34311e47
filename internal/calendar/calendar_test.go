package calendar

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weekplan/internal/activity"
	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
	"github.com/twiced-technology-gmbh/weekplan/internal/store"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

var (
	admin  = Caller{ID: "1", Name: "Ada", Admin: true}
	member = Caller{ID: "2", Name: "Bob"}
)

type update struct {
	channelID, messageID string
	view                 planning.View
}

type fakeMessenger struct {
	mu        sync.Mutex
	posts     []planning.View
	updates   []update
	updateErr error
}

func (f *fakeMessenger) Post(_ context.Context, _ string, v planning.View) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, v)
	return "msg-1", nil
}

func (f *fakeMessenger) Update(_ context.Context, channelID, messageID string, v planning.View) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, update{channelID, messageID, v})
	return nil
}

type fixture struct {
	svc     *Service
	msgr    *fakeMessenger
	tasks   *store.TaskStore
	pointer *store.PointerStore
}

// newFixture builds a service whose clock reads Wednesday 13/03/2024.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	tasks := store.NewTaskStore(store.NewMemoryDocument[[]task.Task]("tasks"))
	pointer := store.NewPointerStore(store.NewMemoryDocument[*store.Pointer]("channel"))
	msgr := &fakeMessenger{}

	opts = append([]Option{WithLocation(time.UTC)}, opts...)
	svc := New(tasks, pointer, msgr, opts...)
	svc.SetNow(func() time.Time { return time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC) })
	return &fixture{svc: svc, msgr: msgr, tasks: tasks, pointer: pointer}
}

func (f *fixture) seed(t *testing.T, tasks ...task.Task) {
	t.Helper()
	require.NoError(t, f.tasks.SaveAll(context.Background(), tasks))
}

func (f *fixture) stored(t *testing.T) []task.Task {
	t.Helper()
	tasks, _, err := f.tasks.LoadAll(context.Background())
	require.NoError(t, err)
	return tasks
}

func TestAdd_AssignsNextIDAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Add(ctx, admin, "Buy milk", "14/03/2024")
	require.NoError(t, err)
	second, err := f.svc.Add(ctx, admin, "  Call mom  ", "15/03/2024")
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "Call mom", second.Title)
	assert.False(t, second.Done)
	assert.Equal(t, []task.Task{first, second}, f.stored(t))
}

func TestAdd_RejectsBadInputWithoutTouchingStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, member, "x", "14/03/2024")
	assert.Equal(t, clierr.Forbidden, clierr.CodeOf(err))

	_, err = f.svc.Add(ctx, admin, "x", "2024-03-14")
	assert.Equal(t, clierr.InvalidDate, clierr.CodeOf(err))

	_, err = f.svc.Add(ctx, admin, "x", "31/02/2024")
	assert.Equal(t, clierr.InvalidDate, clierr.CodeOf(err))

	_, err = f.svc.Add(ctx, admin, "   ", "14/03/2024")
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))

	assert.Empty(t, f.stored(t))
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, task.Task{ID: 1, Title: "A", Date: "11/03/2024", Done: true, ValidatedBy: "Bob"})

	title := "A2"
	edited, err := f.svc.Edit(ctx, admin, 1, EditOptions{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "A2", edited.Title)
	assert.Equal(t, "11/03/2024", edited.Date)
	assert.True(t, edited.Done, "editing keeps completion state")
	assert.Equal(t, "Bob", edited.ValidatedBy)

	day := "20/03/2024"
	edited, err = f.svc.Edit(ctx, admin, 1, EditOptions{Date: &day})
	require.NoError(t, err)
	assert.Equal(t, "A2", edited.Title)
	assert.Equal(t, "20/03/2024", edited.Date)
	assert.Equal(t, []task.Task{edited}, f.stored(t))

	blank := ""
	renamed := "  A3 "
	edited, err = f.svc.Edit(ctx, admin, 1, EditOptions{Title: &renamed, Date: &blank})
	require.NoError(t, err)
	assert.Equal(t, "A3", edited.Title)
	assert.Equal(t, "20/03/2024", edited.Date, "a blank date keeps the current one")
}

func TestEdit_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, task.New(1, "A", "11/03/2024"))

	bad := "tomorrow"
	title := "x"
	blank := "  "
	cases := map[string]struct {
		caller Caller
		id     int
		opts   EditOptions
		code   string
	}{
		"not admin":    {member, 1, EditOptions{Title: &title}, clierr.Forbidden},
		"no fields":    {admin, 1, EditOptions{}, clierr.NoChanges},
		"blank fields": {admin, 1, EditOptions{Title: &blank, Date: &blank}, clierr.NoChanges},
		"bad date":     {admin, 1, EditOptions{Date: &bad}, clierr.InvalidDate},
		"missing task": {admin, 7, EditOptions{Title: &title}, clierr.TaskNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Edit(ctx, tc.caller, tc.id, tc.opts)
			assert.Equal(t, tc.code, clierr.CodeOf(err))
		})
	}
	assert.Equal(t, []task.Task{task.New(1, "A", "11/03/2024")}, f.stored(t))
}

func TestRemove_RenumbersDensely(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t,
		task.New(1, "A", "11/03/2024"),
		task.New(2, "B", "12/03/2024"),
		task.New(3, "C", "13/03/2024"),
	)

	removed, err := f.svc.Remove(ctx, admin, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", removed.Title)

	assert.Equal(t, []task.Task{
		task.New(1, "B", "12/03/2024"),
		task.New(2, "C", "13/03/2024"),
	}, f.stored(t))

	_, err = f.svc.Remove(ctx, admin, 5)
	assert.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))

	_, err = f.svc.Remove(ctx, member, 1)
	assert.Equal(t, clierr.Forbidden, clierr.CodeOf(err))
	assert.Len(t, f.stored(t), 2)
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, task.New(1, "A", "11/03/2024"), task.New(2, "B", "12/03/2024"))

	_, err := f.svc.Clear(ctx, member)
	assert.Equal(t, clierr.Forbidden, clierr.CodeOf(err))

	n, err := f.svc.Clear(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, f.stored(t))

	n, err = f.svc.Clear(ctx, admin)
	require.NoError(t, err)
	assert.Zero(t, n)

	added, err := f.svc.Add(ctx, admin, "fresh start", "14/03/2024")
	require.NoError(t, err)
	assert.Equal(t, 1, added.ID)
	assert.Equal(t, []task.Task{added}, f.stored(t))
}

func TestMarkDone_OpenToEveryone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, task.New(1, "A", "13/03/2024"))

	done, err := f.svc.MarkDone(ctx, member, 1)
	require.NoError(t, err)
	assert.True(t, done.Done)
	assert.Equal(t, "Bob", done.ValidatedBy)

	_, err = f.svc.MarkDone(ctx, admin, 1)
	assert.Equal(t, clierr.StatusConflict, clierr.CodeOf(err))
	assert.Equal(t, "Bob", f.stored(t)[0].ValidatedBy)

	_, err = f.svc.MarkDone(ctx, admin, 2)
	assert.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))
}

func TestWeek_FiltersToWindow(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		task.New(1, "before", "10/03/2024"),
		task.New(2, "monday", "11/03/2024"),
		task.New(3, "sunday", "17/03/2024"),
		task.New(4, "next", "18/03/2024"),
		task.New(5, "broken", "17-03-2024"),
	)

	v, err := f.svc.Week(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, v.Fields, 2)
	assert.Equal(t, 2, v.Fields[0].TaskID)
	assert.Equal(t, 3, v.Fields[1].TaskID)
	assert.Equal(t, "11/03/2024", v.Window.Start.String())

	v, err = f.svc.Week(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, v.Fields, 1)
	assert.Equal(t, 4, v.Fields[0].TaskID)

	v, err = f.svc.Week(context.Background(), -1)
	require.NoError(t, err)
	require.Len(t, v.Fields, 1)
	assert.Equal(t, 1, v.Fields[0].TaskID)
}

func TestList_KeepsBrokenRecordsWithWarnings(t *testing.T) {
	f := newFixture(t)
	f.seed(t, task.New(1, "ok", "11/03/2024"), task.New(2, "broken", "someday"))

	tasks, warnings, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].ID)
}

func TestConfigure_PostsAndStoresPointer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, task.New(1, "A", "13/03/2024"))

	_, err := f.svc.Configure(ctx, member, "chan")
	assert.Equal(t, clierr.Forbidden, clierr.CodeOf(err))

	_, err = f.svc.Configure(ctx, admin, " ")
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))

	p, err := f.svc.Configure(ctx, admin, "chan")
	require.NoError(t, err)
	assert.Equal(t, store.Pointer{ChannelID: "chan", MessageID: "msg-1"}, p)

	require.Len(t, f.msgr.posts, 1)
	assert.Equal(t, 0, f.msgr.posts[0].Offset)
	assert.Len(t, f.msgr.posts[0].Fields, 1)

	got, ok, err := f.svc.Pointer(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p, got)
}

func TestConfigure_WithoutMessenger(t *testing.T) {
	tasks := store.NewTaskStore(store.NewMemoryDocument[[]task.Task]("tasks"))
	pointer := store.NewPointerStore(store.NewMemoryDocument[*store.Pointer]("channel"))
	svc := New(tasks, pointer, nil)

	_, err := svc.Configure(context.Background(), admin, "chan")
	assert.ErrorIs(t, err, ErrNoMessenger)

	// Mutations still work without a platform session.
	_, err = svc.Add(context.Background(), admin, "A", "13/03/2024")
	assert.NoError(t, err)
}

func TestMutations_RefreshPinnedMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, admin, "before pointer", "13/03/2024")
	require.NoError(t, err)
	assert.Empty(t, f.msgr.updates, "no pointer, no refresh")

	require.NoError(t, f.pointer.Save(ctx, store.Pointer{ChannelID: "c", MessageID: "m"}))

	_, err = f.svc.Add(ctx, admin, "this week", "14/03/2024")
	require.NoError(t, err)
	_, err = f.svc.MarkDone(ctx, member, 1)
	require.NoError(t, err)
	_, err = f.svc.Remove(ctx, admin, 1)
	require.NoError(t, err)

	require.Len(t, f.msgr.updates, 3)
	last := f.msgr.updates[2]
	assert.Equal(t, "c", last.channelID)
	assert.Equal(t, "m", last.messageID)
	assert.Equal(t, 0, last.view.Offset)
	require.Len(t, last.view.Fields, 1)
	assert.Equal(t, "[ID 1] 14/03/2024 – this week", last.view.Fields[0].Name)
}

func TestMutations_DeferredSyncLeavesRefreshToCaller(t *testing.T) {
	f := newFixture(t, WithDeferredSync())
	ctx := context.Background()
	require.NoError(t, f.pointer.Save(ctx, store.Pointer{ChannelID: "c", MessageID: "m"}))

	_, err := f.svc.Add(ctx, admin, "A", "14/03/2024")
	require.NoError(t, err)
	_, err = f.svc.MarkDone(ctx, member, 1)
	require.NoError(t, err)
	_, err = f.svc.Clear(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, f.msgr.updates)

	f.svc.Syncer().Refresh(ctx)
	require.Len(t, f.msgr.updates, 1)
	assert.True(t, f.msgr.updates[0].view.Empty)
}

func TestMutations_SucceedWhenRefreshFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.pointer.Save(ctx, store.Pointer{ChannelID: "c", MessageID: "gone"}))
	f.msgr.updateErr = errors.New("unknown message")

	added, err := f.svc.Add(ctx, admin, "A", "13/03/2024")
	require.NoError(t, err)
	assert.Equal(t, []task.Task{added}, f.stored(t))
}

func TestMutations_FailingRefreshKeepsPointer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	want := store.Pointer{ChannelID: "c", MessageID: "gone"}
	require.NoError(t, f.pointer.Save(ctx, want))
	f.msgr.updateErr = errors.New("unknown message")

	_, err := f.svc.Clear(ctx, admin)
	require.NoError(t, err)

	got, ok, err := f.svc.Pointer(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestHandleAction_Navigation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, task.New(1, "next week", "20/03/2024"))

	out, err := f.svc.HandleAction(context.Background(), member,
		planning.Action{Kind: planning.ActionNextWeek, Offset: 1})
	require.NoError(t, err)
	require.NotNil(t, out.View)
	assert.Nil(t, out.Task)
	assert.Equal(t, 1, out.View.Offset)
	require.Len(t, out.View.Fields, 1)

	// Navigation never touches the pinned message.
	assert.Empty(t, f.msgr.updates)
}

func TestHandleAction_MarkDone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tk := task.New(1, "A", "13/03/2024")
	f.seed(t, tk)

	out, err := f.svc.HandleAction(ctx, member, planning.MarkDone(tk))
	require.NoError(t, err)
	require.NotNil(t, out.Task)
	assert.Equal(t, "Bob", out.Task.ValidatedBy)

	_, err = f.svc.HandleAction(ctx, member, planning.MarkDone(tk))
	assert.Equal(t, clierr.StatusConflict, clierr.CodeOf(err))
}

func TestHandleAction_StaleButtonAfterRenumbering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := task.New(1, "A", "13/03/2024")
	b := task.New(2, "B", "13/03/2024")
	f.seed(t, a, b)

	button := planning.MarkDone(b) // rendered while B was #2
	_, err := f.svc.Remove(ctx, admin, 1)
	require.NoError(t, err)

	// B is now #1; the old #2 button no longer resolves.
	_, err = f.svc.HandleAction(ctx, member, button)
	assert.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))

	f.seed(t, task.New(1, "B", "13/03/2024"), task.New(2, "C", "13/03/2024"))
	_, err = f.svc.HandleAction(ctx, member, button)
	assert.Equal(t, clierr.StaleAction, clierr.CodeOf(err))
	assert.False(t, f.stored(t)[1].Done)
}

func TestHandleAction_Unknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.HandleAction(context.Background(), member, planning.Action{Kind: "explode"})
	assert.ErrorIs(t, err, planning.ErrUnknownAction)
}

func TestConcurrentAddsKeepDenseIDs(t *testing.T) {
	f := newFixture(t, WithLockFile(filepath.Join(t.TempDir(), ".lock")))
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Add(ctx, admin, "t", "13/03/2024")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tasks := f.stored(t)
	require.Len(t, tasks, 20)
	for i, tk := range tasks {
		assert.Equal(t, i+1, tk.ID)
	}
}

func TestActivityLogRecordsMutations(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, WithActivityLog(activity.Open(dir)))
	ctx := context.Background()

	_, err := f.svc.Add(ctx, admin, "A", "13/03/2024")
	require.NoError(t, err)
	_, err = f.svc.MarkDone(ctx, member, 1)
	require.NoError(t, err)

	entries, err := activity.Open(dir).Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "add", entries[0].Action)
	assert.Equal(t, "Ada", entries[0].Actor)
	assert.Equal(t, "done", entries[1].Action)
	assert.Equal(t, "Bob", entries[1].Actor)
	assert.Equal(t, 1, entries[1].TaskID)
}
