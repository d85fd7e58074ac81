package dto

// PrintRequest asks for a PDF export of a set of checks for one pay week.
type PrintRequest struct {
	CheckIDs []string `json:"checkIds" binding:"required,min=1"`
	WeekKey  string   `json:"weekKey" binding:"required,weekkey"`
}

// PrintResult carries the rendered document plus the outcome of the
// best-effort paid marking that follows a successful export.
type PrintResult struct {
	PDF         []byte `json:"-"`
	MarkedPaid  int    `json:"markedPaid"`
	AlreadyPaid int    `json:"alreadyPaid"`
	FailedMarks int    `json:"failedMarks"`
}

// PaidMarkResult reports a best-effort paid-marking pass. Failures leave other
// items untouched; nothing is rolled back.
type PaidMarkResult struct {
	Marked      int      `json:"marked"`
	AlreadyPaid int      `json:"alreadyPaid"`
	Failed      []string `json:"failed,omitempty"`
}
