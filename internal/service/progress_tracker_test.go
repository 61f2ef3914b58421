package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchProgress_Summary(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		ok      int
		failed  int
		skipped int
		want    string
	}{
		{name: "Empty batch", want: "No groups to process"},
		{name: "All succeeded", total: 3, ok: 3, want: "Successfully processed all 3 groups"},
		{name: "Skipped counts as handled", total: 3, ok: 2, skipped: 1, want: "Successfully processed all 3 groups"},
		{name: "All failed", total: 2, failed: 2, want: "All 2 groups failed"},
		{name: "Partial", total: 4, ok: 3, failed: 1, want: "Processed 3 of 4 groups with 1 errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp := NewBatchProgress("batch", ActionCreate, tt.total)
			for i := 0; i < tt.ok; i++ {
				bp.Succeeded()
			}
			for i := 0; i < tt.failed; i++ {
				bp.Failed()
			}
			for i := 0; i < tt.skipped; i++ {
				bp.Skipped()
			}
			assert.Equal(t, tt.want, bp.Summary())
		})
	}
}

func TestBatchProgress_FinalizeLogsOutcome(t *testing.T) {
	logs := observeLogs(t)

	bp := NewBatchProgress("batch-9", ActionDelete, 2)
	bp.Succeeded()
	bp.Failed()
	bp.Finalize()

	entries := logs.FilterMessage("Batch finalized").All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "batch-9", fields["batch_id"])
	assert.Equal(t, ActionDelete, fields["action"])
	assert.Equal(t, int64(1), fields["failed"])
}
