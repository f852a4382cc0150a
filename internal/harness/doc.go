// Package harness replays user scenarios against the author publications
// page and records what the page shows after every step.
//
// A scenario is a YAML file naming the signed-in user, the author route
// to open and a list of steps (select, deselect, assign, navigate, ...).
// Run drives a real store and the view containers with those steps; each
// step may carry an expect block, checked against the snapshot taken once
// every async action the step started has finished. RunWithGolden also
// compares the full snapshot list with testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
