package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cart/internal/cart"
)

func runReplayCmd(t *testing.T, format string, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: format})
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	return stdout, stderr, cmd.Execute()
}

func TestReplayCommand_WidgetLifecycle(t *testing.T) {
	out, _, err := runReplayCmd(t, "text", "../schema/testdata/widget.yaml")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Replayed 4 action(s)")
	assert.Contains(t, out.String(), "Fingerprint: "+cart.NewState().Fingerprint())
	assert.NotContains(t, out.String(), "deterministic")
}

func TestReplayCommand_Verify(t *testing.T) {
	out, _, err := runReplayCmd(t, "text", "../schema/testdata/widget.json", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Replay is deterministic")
}

func TestReplayCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	actions := writeFile(t, dir, "actions.json", `[
		{"type":"ADD","payload":{"sku":"B2","name":"Gadget","price":"5.00"}},
		{"type":"QUANTITY","payload":{"sku":"A1","qty":3}}
	]`)
	state := writeFile(t, dir, "state.yaml", "cart:\n  - {sku: A1, name: Widget, price: \"9.99\", qty: 1}\n")

	out, _, err := runReplayCmd(t, "json", actions, "--state", state, "--verify")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)

	var result ReplayResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, 2, result.Steps)
	assert.True(t, result.Verified)
	assert.True(t, result.Deterministic)
	assert.NotEmpty(t, result.Session)
	assert.Equal(t, []string{"B2", "A1"}, result.State.SKUs())
	assert.Equal(t, result.State.Fingerprint(), result.Fingerprint)
}

func TestReplayCommand_RejectedStep(t *testing.T) {
	out, errOut, err := runReplayCmd(t, "json", "../schema/testdata/invalid.json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(cart.ErrCodeUnknownActionType), resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), details["step"])

	// The session logs the rejection as a warning.
	assert.Contains(t, errOut.String(), "action rejected")
}

func TestReplayCommand_DuplicateSKUState(t *testing.T) {
	dir := t.TempDir()
	state := writeFile(t, dir, "state.json",
		`{"cart":[{"sku":"A1","name":"W","price":"1","qty":1},{"sku":"A1","name":"W","price":"1","qty":4}]}`)

	_, errOut, err := runReplayCmd(t, "text", "../schema/testdata/widget.json", "--state", state)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut.String(), "Error [E002]")
}

func TestReplayCommand_MissingFile(t *testing.T) {
	_, _, err := runReplayCmd(t, "text", "/nonexistent/actions.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplayCommand_VerboseLogsDispatches(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text", Verbose: true})
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"../schema/testdata/widget.json"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "replaying 4 action(s)")
	assert.Contains(t, stderr.String(), "action applied")
}
