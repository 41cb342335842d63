package dto

// RowError is one failed CSV row: line number (1-based, header = line 1)
// plus the validation message. Successful rows are not rolled back.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult summarizes a CSV import: partial success is reported, not
// rolled back.
type ImportResult struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Errors  []RowError `json:"errors,omitempty"`
}

// AssignmentImportResult summarizes a center-assignment import.
type AssignmentImportResult struct {
	UpdatedCenters int        `json:"updated_centers"`
	UpdatedMembers int        `json:"updated_members"`
	Errors         []RowError `json:"errors,omitempty"`
}
