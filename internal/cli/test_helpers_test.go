package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/taskman/internal/testutil"
)

// today is the calendar date of every test clock.
const today = "2026-03-10"

// testEnv is an isolated taskman installation: its own HOME, database and
// config path, and a clock shared by every command run against it.
type testEnv struct {
	t          *testing.T
	dir        string
	dbPath     string
	configPath string
	clock      *testutil.StepClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return &testEnv{
		t:          t,
		dir:        dir,
		dbPath:     filepath.Join(dir, "data", "tasks.db"),
		configPath: filepath.Join(dir, "config.yaml"),
		clock:      testutil.NewStepClock(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local), time.Second),
	}
}

func (e *testEnv) options() *RootOptions {
	return &RootOptions{
		Clock:  e.clock,
		RunIDs: testutil.NewFixedRunIDGenerator("test-run"),
	}
}

func (e *testEnv) args(args ...string) []string {
	return append([]string{"--db", e.dbPath, "--config", e.configPath}, args...)
}

// run executes one invocation and returns its stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	cmd := NewRootCommandWithOptions(e.options())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(e.args(args...))
	err := cmd.Execute()
	return out.String(), err
}

// mustRun executes one invocation that must succeed.
func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "taskman %v\n%s", args, out)
	return out
}

// runJSON executes one invocation with --format json and decodes the data
// field of the envelope into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	out := e.mustRun(append([]string{"--format", "json"}, args...)...)

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(e.t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(e.t, "ok", resp.Status)
	require.NoError(e.t, json.Unmarshal(resp.Data, v))
}

// seedSample adds the four tasks used by the listing and status tests.
// Today is 2026-03-10.
func (e *testEnv) seedSample() {
	e.t.Helper()
	e.mustRun("add", "Write report", "-p", "high", "--deadline", "2026-03-12", "--tags", "work, q1", "-d", "Quarterly numbers")
	e.mustRun("add", "Pay rent", "-p", "urgent", "--deadline", "2026-03-09")
	e.mustRun("add", "Read book")
	e.mustRun("add", "Clean desk", "-p", "low", "--deadline", "2026-03-01")
	e.mustRun("update", "4", "done")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
