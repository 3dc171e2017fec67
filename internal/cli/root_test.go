package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/stickyjar/internal/db"
	"github.com/tgienger/stickyjar/internal/models"
	"github.com/tgienger/stickyjar/internal/store"
)

// isolate points config and data directories at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exportSnapshot(t *testing.T, args ...string) store.Snapshot {
	t.Helper()
	out, err := execute(t, append([]string{"export"}, args...)...)
	require.NoError(t, err)
	var snap store.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	return snap
}

func TestRoot_NoArgsLaunchesTUI(t *testing.T) {
	isolate(t)

	original := launchTUIFunc
	defer func() { launchTUIFunc = original }()

	called := false
	launchTUIFunc = func(st *store.Store) error {
		called = true
		assert.NotNil(t, st)
		return nil
	}

	_, err := execute(t, "--ephemeral")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRoot_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stickyjar 1.2.3 (commit: abc, built: today)\n", out)
}

func TestTasks_AddListDone(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "add", "Water", "the", "plants", "--color", "sky", "--minutes", "10", "--category", "home")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Water the plants")

	_, err = execute(t, "preset", "1")
	require.NoError(t, err)

	out, err = execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[home]")
	assert.Contains(t, out, "[morning]")
	assert.Contains(t, out, "Water the plants")
	assert.Less(t, strings.Index(out, "[home]"), strings.Index(out, "[morning]"))

	snap := exportSnapshot(t)
	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, "Make coffee", snap.Tasks[0].Text)
	water := snap.Tasks[1]
	assert.Equal(t, models.ColorSky, water.Color)

	// unique prefix is enough
	out, err = execute(t, "done", water.ID[:len(water.ID)-2])
	require.NoError(t, err)
	assert.Contains(t, out, "Done: Water the plants. Streak 1, 1 today")

	snap = exportSnapshot(t)
	assert.Len(t, snap.Tasks, 1)
	require.Len(t, snap.Completed, 1)
	assert.Equal(t, water.ID, snap.Completed[0].ID)
	assert.Equal(t, 1, snap.Streak)
	assert.NotZero(t, snap.LastActivity)

	out, err = execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: 1")
	assert.Contains(t, out, "[x] First Task")
	assert.Contains(t, out, "[ ] Jar Master")
	// tasks, completed, streak and last activity
	assert.Contains(t, out, "Storage:   sqlite, 4 keys")

	assert.FileExists(t, filepath.Join(dir, "data", "stickyjar", "stickyjar.db"))
	assert.FileExists(t, filepath.Join(dir, "data", "stickyjar", "stickyjar.log"))
}

func TestTasks_Errors(t *testing.T) {
	isolate(t)

	_, err := execute(t, "add", "x", "--color", "plaid")
	assert.ErrorIs(t, err, models.ErrInvalidDraft)

	_, err = execute(t, "add", "   ")
	assert.ErrorIs(t, err, models.ErrEmptyText)

	_, err = execute(t, "preset", "9")
	assert.Error(t, err)

	_, err = execute(t, "done", "missing")
	assert.ErrorIs(t, err, models.ErrTaskNotFound)

	_, err = execute(t, "rm", "missing")
	assert.ErrorIs(t, err, models.ErrTaskNotFound)

	_, err = execute(t, "export", "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, "list", "--backend", "postgres")
	assert.Error(t, err)
}

func TestTasks_RemoveAndClear(t *testing.T) {
	isolate(t)

	for _, n := range []string{"1", "2", "3"} {
		_, err := execute(t, "preset", n)
		require.NoError(t, err)
	}
	snap := exportSnapshot(t)
	require.Len(t, snap.Tasks, 3)

	out, err := execute(t, "rm", snap.Tasks[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 10-min cleanup")

	_, err = execute(t, "done", snap.Tasks[1].ID)
	require.NoError(t, err)

	out, err = execute(t, "clear")
	require.NoError(t, err)
	assert.Equal(t, "Cleared 1 notes\n", out)

	out, err = execute(t, "clear", "--completed")
	require.NoError(t, err)
	assert.Equal(t, "Emptied the jar (1 tokens)\n", out)

	snap = exportSnapshot(t)
	assert.Empty(t, snap.Tasks)
	assert.Empty(t, snap.Completed)
	assert.Equal(t, 1, snap.Streak)
}

func TestExport_YAML(t *testing.T) {
	isolate(t)

	_, err := execute(t, "add", "Stretch")
	require.NoError(t, err)

	out, err := execute(t, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "tasks:")
	assert.Contains(t, out, "text: Stretch")
	assert.Contains(t, out, "color: butter")
	assert.Contains(t, out, "streak: 0")
}

func TestStorageFlags(t *testing.T) {
	dir := isolate(t)

	t.Run("bolt", func(t *testing.T) {
		path := filepath.Join(dir, "jar.bolt")
		_, err := execute(t, "--backend", "bolt", "--db", path, "add", "Bolted")
		require.NoError(t, err)

		snap := exportSnapshot(t, "--backend", "bolt", "--db", path)
		require.Len(t, snap.Tasks, 1)
		assert.Equal(t, "Bolted", snap.Tasks[0].Text)
		assert.FileExists(t, path)
	})

	t.Run("ephemeral", func(t *testing.T) {
		_, err := execute(t, "--ephemeral", "add", "Gone")
		require.NoError(t, err)

		out, err := execute(t, "--ephemeral", "list")
		require.NoError(t, err)
		assert.Equal(t, "No pending notes.\n", out)
	})
}

func TestConfig_InitAndShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config", "stickyjar", "config.toml")

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init")
	assert.Error(t, err)

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"bolt\"\n\n[jar]\ncapacity = 10\n"), 0o644))

	out, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend = 'bolt'")
	assert.Contains(t, out, "capacity = 10")
	assert.Contains(t, out, filepath.Join(dir, "data", "stickyjar", "stickyjar.bolt"))

	out, err = execute(t, "config", "show", "--ephemeral")
	require.NoError(t, err)
	assert.Contains(t, out, "backend = 'memory'")
}

func TestResolveTask_Ambiguous(t *testing.T) {
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	st := store.Open(db.NewMemory(),
		store.WithClock(func() time.Time { return now }),
		store.WithIDGenerator(func(time.Time) string { return "same" }),
	)

	a, err := st.CreateTask(models.Draft{Text: "a"})
	require.NoError(t, err)
	b, err := st.CreateTask(models.Draft{Text: "b"})
	require.NoError(t, err)
	assert.Equal(t, "same", a.ID)
	assert.Equal(t, "same-1", b.ID)

	// exact match wins over prefix
	got, err := resolveTask(st, "same")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = resolveTask(st, "sa")
	assert.ErrorIs(t, err, errAmbiguousID)

	got, err = resolveTask(st, "same-")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}
