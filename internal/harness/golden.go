package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/jask/authorpubs/internal/actions"
)

// MarshalResult renders res as indented JSON with a trailing newline.
// HTML escaping is off so query strings stay readable.
func MarshalResult(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden runs sc and compares its snapshots with
// testdata/golden/<sc.Name>.golden. Expectation failures are returned
// before the golden comparison.
func RunWithGolden(t *testing.T, sc *Scenario, backend actions.Backend, opts ...Option) error {
	t.Helper()

	res, err := Run(context.Background(), sc, backend, opts...)
	if err != nil {
		return err
	}
	data, err := MarshalResult(res)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, data)
	return nil
}
