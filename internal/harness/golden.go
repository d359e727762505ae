package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/cart/internal/canon"
)

// TraceSnapshot is the golden-file form of a scenario run.
type TraceSnapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Final        canon.Object
}

// Value returns the canonical form of the snapshot. Optional trace fields
// are omitted when empty, as canonical JSON has no null.
func (s *TraceSnapshot) Value() canon.Object {
	trace := make(canon.Array, len(s.Trace))
	for i, ev := range s.Trace {
		obj := canon.Object{
			"step":        canon.Int(int64(ev.Step)),
			"type":        canon.String(ev.Type),
			"outcome":     canon.String(ev.Outcome),
			"fingerprint": canon.String(ev.Fingerprint),
		}
		if ev.Seq != 0 {
			obj["seq"] = canon.Int(ev.Seq)
		}
		if ev.SKU != "" {
			obj["sku"] = canon.Exact(ev.SKU)
		}
		trace[i] = obj
	}

	final := s.Final
	if final == nil {
		final = canon.Object{"cart": canon.Array{}}
	}
	return canon.Object{
		"scenario_name": canon.String(s.ScenarioName),
		"trace":         trace,
		"final":         final,
	}
}

// Snapshot builds the golden-file snapshot for result.
func Snapshot(name string, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: name,
		Trace:        result.Trace,
		Final:        result.Final.Value(),
	}
}

// MarshalSnapshot returns the canonical JSON of result's snapshot.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snap := Snapshot(name, result)
	return canon.Marshal(snap.Value())
}

// RunWithGolden executes scenario and compares its canonical trace against
// testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(name, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
