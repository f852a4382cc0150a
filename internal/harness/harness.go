package harness

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/route"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/store"
	"github.com/jask/authorpubs/internal/views"
)

// Snapshot is what the page shows after one step.
type Snapshot struct {
	Step           string   `json:"step"`
	Author         int64    `json:"author"`
	AssignView     bool     `json:"assign_view"`
	Selected       []int64  `json:"selected"`
	Trigger        *Trigger `json:"trigger,omitempty"`
	Highlights     []int64  `json:"highlights"`
	Publications   []int64  `json:"publications"`
	Total          int      `json:"total"`
	Query          string   `json:"query"`
	References     []string `json:"references,omitempty"`
	HighlightError string   `json:"highlight_error,omitempty"`
}

// Trigger is the highlight trigger of the assign drawer.
type Trigger struct {
	Disabled bool   `json:"disabled"`
	Tooltip  string `json:"tooltip,omitempty"`
}

// Result is the snapshot after every step, in order.
type Result struct {
	Scenario  string     `json:"scenario"`
	Snapshots []Snapshot `json:"snapshots"`
}

// Option configures Run.
type Option func(*runner)

func WithLogger(l *zap.Logger) Option {
	return func(r *runner) { r.log = l }
}

type runner struct {
	st        *store.Store
	creators  actions.Creators
	page      *views.AuthorPublications
	route     route.Route
	refRecord int64
	view      views.AuthorPublicationsView
	log       *zap.Logger
}

// Run replays sc against backend. The returned error joins every failed
// expectation; the Result is complete even when expectations fail.
func Run(ctx context.Context, sc *Scenario, backend actions.Backend, opts ...Option) (*Result, error) {
	r := &runner{
		creators: actions.Creators{Backend: backend},
		page:     views.NewAuthorPublications(),
		route:    route.Route{AuthorID: sc.Author},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	user := store.UserState{Email: sc.User.Email, Roles: sc.User.Roles}
	r.st = store.New(store.Initial(user, sc.PageSize), store.WithLogger(r.log))
	defer r.st.Close()

	r.st.Dispatch(r.creators.FetchAuthor(r.route.AuthorID))
	r.settle()

	res := &Result{Scenario: sc.Name}
	var failures []error
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := r.apply(step); err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i, step.Do, err)
		}
		r.settle()
		snap := r.snapshot(step.Do)
		res.Snapshots = append(res.Snapshots, snap)
		if step.Expect != nil {
			for _, err := range check(*step.Expect, snap) {
				failures = append(failures, fmt.Errorf("step %d (%s): %w", i, step.Do, err))
			}
		}
	}
	return res, errors.Join(failures...)
}

// settle waits for every thunk, then builds the page twice: the first
// build may start a search for a new author facet.
func (r *runner) settle() {
	r.st.Wait()
	r.view = r.page.Build(r.st.GetState(), r.st, r.creators, r.route, -1)
	r.st.Wait()
	r.view = r.page.Build(r.st.GetState(), r.st, r.creators, r.route, -1)
}

func (r *runner) apply(step Step) error {
	switch step.Do {
	case StepLoad:
	case StepSelect, StepDeselect, StepToggle:
		for _, id := range step.IDs {
			sel := views.PublicationSelectContainer(r.st.GetState(), r.st, id)
			switch step.Do {
			case StepSelect:
				sel.OnChange(true)
			case StepDeselect:
				sel.OnChange(false)
			default:
				sel.Toggle()
			}
		}
	case StepClear:
		if r.view.Drawer == nil {
			return errors.New("no assign view")
		}
		r.view.Drawer.OnClear()
	case StepAssign:
		if r.view.Drawer == nil {
			return errors.New("no assign view")
		}
		r.view.Drawer.Highlights.SelfAssign()
	case StepNavigate:
		r.route = route.Route{AuthorID: step.Author}
		r.st.Dispatch(r.creators.FetchAuthor(step.Author))
	case StepPage:
		return r.query(search.NewQuery(search.KeyPage, strconv.Itoa(step.Page)))
	case StepFilter:
		return r.query(search.NewQuery(search.KeyText, step.Text, search.KeyPage, "1"))
	case StepSort:
		return r.query(search.NewQuery(search.KeySort, step.Sort, search.KeyPage, "1"))
	case StepReferences:
		r.refRecord = step.Record
		props := views.ReferenceListContainer(r.st.GetState(), r.st, r.creators, step.Record)
		props.OnQueryChange(map[string]string{search.KeyText: step.Text, search.KeyPage: "1"})
	default:
		return fmt.Errorf("unknown step %q", step.Do)
	}
	return nil
}

func (r *runner) query(q search.Query) error {
	if r.view.Publications.OnQueryChange == nil {
		return errors.New("publication list not ready")
	}
	r.view.Publications.OnQueryChange(q)
	return nil
}

func (r *runner) snapshot(step string) Snapshot {
	st := r.st.GetState()
	v := r.view
	snap := Snapshot{
		Step:           step,
		AssignView:     v.Props.AssignView,
		Selected:       append([]int64{}, st.Authors.PublicationSelection.IDs()...),
		Highlights:     ids(v.Highlights.Results),
		Publications:   ids(v.Publications.Results),
		Total:          v.Publications.Total,
		Query:          v.Publications.Query.String(),
		HighlightError: st.Literature.ErrorHighlighting,
	}
	if st.Authors.Data != nil {
		snap.Author = st.Authors.Data.ID
	}
	if v.Drawer != nil {
		snap.Trigger = &Trigger{Disabled: v.Drawer.Highlights.Disabled, Tooltip: v.Drawer.Highlights.Tooltip()}
	}
	if r.refRecord != 0 {
		refs := views.ReferenceListContainer(st, r.st, r.creators, r.refRecord)
		snap.References = make([]string, 0, len(refs.References))
		for _, ref := range refs.References {
			title := ref.RawTitle
			if ref.Record != nil {
				title = ref.Record.Title
			}
			snap.References = append(snap.References, fmt.Sprintf("%d. %s", ref.Position+1, title))
		}
	}
	return snap
}
