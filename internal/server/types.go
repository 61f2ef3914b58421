package server

import "github.com/cns-tools/store-creator/internal/config"

// BatchResult is the outcome of dispatching one uploaded file.
type BatchResult struct {
	// BatchID correlates the log lines of one upload
	BatchID string
	// Groups is the number of groups built from the file
	Groups int
	// Failed lists the groups the downstream service did not accept
	Failed []config.FailedGroup
}

// Succeeded reports whether every group was dispatched.
func (r *BatchResult) Succeeded() bool { return len(r.Failed) == 0 }
