package views

import (
	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/store"
)

// PublicationSelect is the checkbox bound to one record's membership in
// the publication selection.
type PublicationSelect struct {
	RecordID int64
	Checked  bool
	OnChange func(checked bool)
}

// Toggle reports the opposite of Checked through OnChange.
func (p PublicationSelect) Toggle() {
	if p.OnChange != nil {
		p.OnChange(!p.Checked)
	}
}

func (p PublicationSelect) Render() string {
	if p.Checked {
		return checkedStyle.Render("[x]")
	}
	return mutedStyle.Render("[ ]")
}

// PublicationSelectContainer projects membership of recordID and
// dispatches SetPublicationSelection([recordID], checked) on change.
func PublicationSelectContainer(st store.State, d store.Dispatcher, recordID int64) PublicationSelect {
	return PublicationSelect{
		RecordID: recordID,
		Checked:  st.Authors.PublicationSelection.Has(recordID),
		OnChange: func(checked bool) {
			d.Dispatch(actions.SetPublicationSelection([]int64{recordID}, checked))
		},
	}
}
