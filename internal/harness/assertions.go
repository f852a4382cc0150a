package harness

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jask/authorpubs/internal/database/repository"
)

func ids(recs []repository.Record) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

var equateEmpty = cmpopts.EquateEmpty()

// check returns one error per expectation snap does not meet.
func check(e Expect, snap Snapshot) []error {
	var errs []error
	mismatch := func(field string, want, got interface{}) {
		if diff := cmp.Diff(want, got, equateEmpty); diff != "" {
			errs = append(errs, fmt.Errorf("%s mismatch (-want +got):\n%s", field, diff))
		}
	}

	if e.AssignView != nil {
		mismatch("assign_view", *e.AssignView, snap.AssignView)
	}
	if e.Disabled != nil || e.Tooltip != nil {
		if snap.Trigger == nil {
			errs = append(errs, fmt.Errorf("trigger expected, page has no assign drawer"))
		} else {
			if e.Disabled != nil {
				mismatch("disabled", *e.Disabled, snap.Trigger.Disabled)
			}
			if e.Tooltip != nil {
				mismatch("tooltip", *e.Tooltip, snap.Trigger.Tooltip)
			}
		}
	}
	if e.Selected != nil {
		mismatch("selected", e.Selected, snap.Selected)
	}
	if e.Highlights != nil {
		mismatch("highlights", e.Highlights, snap.Highlights)
	}
	if e.Publications != nil {
		mismatch("publications", e.Publications, snap.Publications)
	}
	if e.Total != nil {
		mismatch("total", *e.Total, snap.Total)
	}
	if e.References != nil {
		mismatch("references", e.References, snap.References)
	}
	return errs
}
