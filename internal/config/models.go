// internal/config/models.go
// Package config provides configuration loading, validation, and data models.
package config

// Row is a single parsed CSV record.
type Row struct {
	// Line is the 1-based line number of the record in the uploaded file
	Line      int
	GroupID   int
	StoreID   int
	Country   string
	Frequency string
	// StartDate is already normalized to YYYY-MM-DD
	StartDate string
}

// GroupRequest is the body sent to cns-stores-ms for one check-in code group.
type GroupRequest struct {
	GroupID   int    `json:"group_id"`
	Country   string `json:"country"`
	StoreIDs  []int  `json:"store_ids"`
	Frequency string `json:"frequency"`
	StartDate string `json:"start_date"`
}

// FailedGroup pairs a group that could not be dispatched with the error reason.
type FailedGroup struct {
	// Group is the request that failed
	Group GroupRequest
	// Reason is the error message describing why the call failed
	Reason string
}

// RowError describes a rejected CSV cell.
type RowError struct {
	Line   int    `json:"line"`
	Column string `json:"column"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}
