package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

func openAll(t *testing.T) map[string]*Set {
	t.Helper()
	sets := make(map[string]*Set)
	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory} {
		s, err := Open(Options{
			Backend:     backend,
			Dir:         t.TempDir(),
			TasksFile:   "calendar.json",
			ChannelFile: "calendar_channel.json",
			SQLitePath:  "weekplan.db",
		})
		require.NoError(t, err, backend)
		t.Cleanup(func() { _ = s.Close() })
		sets[backend] = s
	}
	return sets
}

func TestTaskStore_EmptyWhenNothingStored(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		tasks, warnings, err := s.Tasks.LoadAll(ctx)
		require.NoError(t, err, name)
		assert.NotNil(t, tasks, name)
		assert.Empty(t, tasks, name)
		assert.Empty(t, warnings, name)
	}
}

func TestTaskStore_SaveAllOverwritesWholesale(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		first := []task.Task{task.New(1, "A", "10/03/2024"), task.New(2, "B", "11/03/2024")}
		require.NoError(t, s.Tasks.SaveAll(ctx, first), name)

		second := []task.Task{{ID: 1, Title: "C", Date: "12/03/2024", Done: true, ValidatedBy: "bob"}}
		require.NoError(t, s.Tasks.SaveAll(ctx, second), name)

		got, _, err := s.Tasks.LoadAll(ctx)
		require.NoError(t, err, name)
		assert.Equal(t, second, got, name)
	}
}

func TestTaskStore_KeepsOrderAndReportsWarnings(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		tasks := []task.Task{
			task.New(1, "late", "20/03/2024"),
			task.New(2, "hand edited", "2024-03-10"),
			task.New(3, "early", "01/03/2024"),
		}
		require.NoError(t, s.Tasks.SaveAll(ctx, tasks), name)

		got, warnings, err := s.Tasks.LoadAll(ctx)
		require.NoError(t, err, name)
		assert.Equal(t, tasks, got, name)
		require.Len(t, warnings, 1, name)
		assert.Equal(t, 2, warnings[0].ID, name)
	}
}

func TestFileDocument_CorruptIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calendar.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "title": "A",`), 0o600))

	tasks, _, err := NewTaskStore(NewFileDocument[[]task.Task](path)).LoadAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, tasks)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, clierr.StorageCorrupt, clierr.CodeOf(err))
}

func TestFileDocument_WrongShapeIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 1}`), 0o600))

	_, _, err := NewTaskStore(NewFileDocument[[]task.Task](path)).LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileDocument_BlankFileIsNotStored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar_channel.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, ok, err := NewPointerStore(NewFileDocument[*Pointer](path)).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileDocument_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	doc := NewFileDocument[[]task.Task](filepath.Join(dir, "nested", "calendar.json"))
	require.NoError(t, doc.Save(context.Background(), []task.Task{task.New(1, "A", "10/03/2024")}))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "calendar.json", entries[0].Name())
}

func TestMemoryDocument_CorruptIsAnError(t *testing.T) {
	doc := NewMemoryDocument[[]task.Task]("calendar")
	doc.SetRaw([]byte("not json"))

	_, _, err := NewTaskStore(doc).LoadAll(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestPointerStore_RoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		_, ok, err := s.Pointer.Load(ctx)
		require.NoError(t, err, name)
		assert.False(t, ok, name)

		p := Pointer{ChannelID: "111", MessageID: "222"}
		require.NoError(t, s.Pointer.Save(ctx, p), name)
		got, ok, err := s.Pointer.Load(ctx)
		require.NoError(t, err, name)
		assert.True(t, ok, name)
		assert.Equal(t, p, got, name)

		require.NoError(t, s.Pointer.Clear(ctx), name)
		_, ok, err = s.Pointer.Load(ctx)
		require.NoError(t, err, name)
		assert.False(t, ok, name)
	}
}

func TestPointer_AcceptsNumericSnowflakes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar_channel.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"channel_id": 1203456789012345678, "message_id": 1203456789012345999}`), 0o600))

	p, ok, err := NewPointerStore(NewFileDocument[*Pointer](path)).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1203456789012345678", p.ChannelID)
	assert.Equal(t, "1203456789012345999", p.MessageID)
}

func TestPointer_EmptyObjectIsNotConfigured(t *testing.T) {
	doc := NewMemoryDocument[*Pointer]("calendar_channel")
	doc.SetRaw([]byte(`{}`))

	_, ok, err := NewPointerStore(doc).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "redis"})
	assert.Error(t, err)
}

func TestOpen_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range openAll(t) {
		assert.Error(t, s.Tasks.SaveAll(ctx, nil), name)
	}
}
