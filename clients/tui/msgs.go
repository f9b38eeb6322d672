package tui

// storeChangedMsg is emitted whenever the session store mutates.
type storeChangedMsg struct{}

// refreshDoneMsg signals completion of the initial or a manual list fetch.
type refreshDoneMsg struct {
	Err error
}

// submitDoneMsg signals completion of a form submission.
type submitDoneMsg struct {
	Err error
}

// opDoneMsg signals completion of a quick status change or a delete.
type opDoneMsg struct {
	Err error
}
