package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"

func runTestCmd(t *testing.T, format string, args ...string) (stdout *bytes.Buffer, err error) {
	t.Helper()
	stdout = &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return stdout, cmd.Execute()
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := runTestCmd(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := runTestCmd(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := runTestCmd(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := runTestCmd(t, "json", t.TempDir())
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)

	var result TestResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, 0, result.Total)
}

func TestTestCommandRunsHarnessScenarios(t *testing.T) {
	out, err := runTestCmd(t, "text", harnessScenarios)
	require.NoError(t, err, out.String())

	assert.Contains(t, out.String(), "✓ widget_lifecycle")
	assert.Contains(t, out.String(), "✓ rejected_actions")
	assert.Contains(t, out.String(), "4 passed, 0 failed, 4 total")
}

func TestTestCommandFilter(t *testing.T) {
	out, err := runTestCmd(t, "json", harnessScenarios, "--filter", "widget*")
	require.NoError(t, err)

	var result TestResult
	require.NoError(t, json.Unmarshal(decodeResponse(t, out).Data, &result))
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "widget_lifecycle", result.Scenarios[0].Name)
}

func TestTestCommandInvalidFilter(t *testing.T) {
	_, err := runTestCmd(t, "text", harnessScenarios, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandUpdateWritesGolden(t *testing.T) {
	tmpDir := t.TempDir()
	scenariosDir := filepath.Join(tmpDir, "scenarios")
	require.NoError(t, os.MkdirAll(scenariosDir, 0755))

	src, err := os.ReadFile(filepath.Join(harnessScenarios, "submit_clears_cart.yaml"))
	require.NoError(t, err)
	writeFile(t, scenariosDir, "submit_clears_cart.yaml", string(src))

	_, err = runTestCmd(t, "text", scenariosDir, "--update")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(tmpDir, "golden", "submit_clears_cart.golden"))
	require.NoError(t, err)
	want, err := os.ReadFile("../harness/testdata/golden/submit_clears_cart.golden")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	// A second run compares against the file just written.
	out, err := runTestCmd(t, "text", scenariosDir)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 passed")
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	tmpDir := t.TempDir()
	scenariosDir := filepath.Join(tmpDir, "scenarios")
	goldenDir := filepath.Join(tmpDir, "snapshots")
	require.NoError(t, os.MkdirAll(scenariosDir, 0755))
	require.NoError(t, os.MkdirAll(goldenDir, 0755))

	writeFile(t, scenariosDir, "one_add.yaml", `name: one_add
description: "Single add"
steps:
  - action: {type: ADD, payload: {sku: A1, name: Widget, price: "1.00"}}
assertions:
  - type: contains
    sku: A1
`)
	writeFile(t, goldenDir, "one_add.golden", `{"stale":true}`)

	out, err := runTestCmd(t, "text", scenariosDir, "--golden", goldenDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), "✗ one_add")
	assert.Contains(t, out.String(), "trace does not match golden file")
}

func TestTestCommandFailingAssertionJSON(t *testing.T) {
	scenariosDir := t.TempDir()
	writeFile(t, scenariosDir, "wrong_count.yaml", `name: wrong_count
description: "Asserts the wrong line count"
steps:
  - action: {type: ADD, payload: {sku: A1, name: Widget, price: "1.00"}}
assertions:
  - type: cart_len
    count: 2
`)

	out, err := runTestCmd(t, "json", scenariosDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.True(t, IsReported(err))

	var result TestResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Scenarios, 1)
	assert.False(t, result.Scenarios[0].Pass)
	assert.NotEmpty(t, result.Scenarios[0].Errors)
}

func TestTestCommandLoadError(t *testing.T) {
	scenariosDir := t.TempDir()
	writeFile(t, scenariosDir, "broken.yaml", "name: broken\nstepz: []\n")

	out, err := runTestCmd(t, "text", scenariosDir)
	require.Error(t, err)
	assert.Contains(t, out.String(), "✗ broken.yaml")
	assert.Contains(t, out.String(), "failed to load scenario")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("g", "widget.golden"), goldenFilePath("g", filepath.Join("s", "widget.yaml")))
}
