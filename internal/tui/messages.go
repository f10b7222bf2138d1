package tui

// refinementReadyMsg signals that a guided refinement call finished.
type refinementReadyMsg struct {
	err error
}

// debateTurnMsg signals that a debate response call finished.
type debateTurnMsg struct {
	err error
}

// summaryReadyMsg carries a generated summary.
type summaryReadyMsg struct {
	title string
	text  string
	err   error
}
