// Package storetest provides a recording dispatcher for tests of code
// that only builds and dispatches actions.
package storetest

import (
	"sync"

	"github.com/jask/authorpubs/internal/store"
)

// Recorder records dispatched actions without reducing or running them.
type Recorder struct {
	mu      sync.Mutex
	State   store.State
	actions []store.Action
}

func NewRecorder(state store.State) *Recorder {
	return &Recorder{State: state}
}

func (r *Recorder) Dispatch(a store.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
}

func (r *Recorder) GetState() store.State { return r.State }

// Actions returns a copy of everything dispatched so far, in order.
func (r *Recorder) Actions() []store.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]store.Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Types returns the Type of every recorded action, in order.
func (r *Recorder) Types() []string {
	acts := r.Actions()
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.Type())
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
}
