package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario under testdata/scenarios and compares
// its trace against the matching golden file.
func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name must match file name")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "scenario failed: %v", result.Errors)
		})
	}
}

func TestMarshalSnapshot_OmitsEmptyFields(t *testing.T) {
	r := NewResult()
	r.AddTrace(TraceEvent{Step: 1, Type: "SUBMIT", Outcome: OutcomeOK, Seq: 1, Fingerprint: "f"})
	r.AddTrace(TraceEvent{Step: 2, Type: "DISCOUNT", Outcome: "UNKNOWN_ACTION_TYPE", Fingerprint: "f"})

	data, err := MarshalSnapshot("snap", r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"final":{"cart":[]},"scenario_name":"snap","trace":[`+
			`{"fingerprint":"f","outcome":"ok","seq":1,"step":1,"type":"SUBMIT"},`+
			`{"fingerprint":"f","outcome":"UNKNOWN_ACTION_TYPE","step":2,"type":"DISCOUNT"}]}`,
		string(data))
}
