package models

// Wildcard is the filter value that matches every record.
const Wildcard = "ALL"

// FilterSpec selects records for the report view. Every field other than
// SearchText is either a concrete value or a wildcard (empty or "ALL").
type FilterSpec struct {
	SearchText    string `form:"q" json:"searchText"`
	Status        string `form:"status" json:"status"`
	Category      string `form:"category" json:"category"`
	ReportPurpose string `form:"purpose" json:"reportPurpose"`
	CustomerName  string `form:"customer" json:"customerName"`
}

// IsWildcard reports whether a filter value matches everything. The match is
// exact, so a customer named "All" can still be selected.
func IsWildcard(value string) bool {
	return value == "" || value == Wildcard
}
