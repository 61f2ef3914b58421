// internal/service/progress_tracker.go
package service

import (
	"fmt"

	"github.com/cns-tools/store-creator/internal/utils"
	"go.uber.org/zap"
)

// Batch actions.
const (
	ActionCreate = "create"
	ActionDelete = "delete"
)

// BatchProgress tallies the outcome of each group dispatched in one batch.
type BatchProgress struct {
	batchID    string
	action     string
	total      int
	successful int
	failed     int
	skipped    int
}

// NewBatchProgress creates a tracker for a batch of total groups.
func NewBatchProgress(batchID, action string, total int) *BatchProgress {
	return &BatchProgress{
		batchID: batchID,
		action:  action,
		total:   total,
	}
}

// Succeeded counts a group the downstream service accepted.
func (bp *BatchProgress) Succeeded() { bp.successful++ }

// Failed counts a group whose call returned an error.
func (bp *BatchProgress) Failed() { bp.failed++ }

// Skipped counts groups not dispatched because they were already handled.
func (bp *BatchProgress) Skipped() { bp.skipped++ }

// Summary returns a human-readable status message for the batch.
func (bp *BatchProgress) Summary() string {
	switch {
	case bp.total == 0:
		return "No groups to process"
	case bp.failed == 0:
		return fmt.Sprintf("Successfully processed all %d groups", bp.successful+bp.skipped)
	case bp.successful == 0 && bp.skipped == 0:
		return fmt.Sprintf("All %d groups failed", bp.failed)
	default:
		return fmt.Sprintf("Processed %d of %d groups with %d errors", bp.successful+bp.skipped, bp.total, bp.failed)
	}
}

// Finalize logs the batch outcome.
func (bp *BatchProgress) Finalize() {
	log := utils.Logger.Info
	if bp.failed > 0 {
		log = utils.Logger.Warn
	}
	log("Batch finalized",
		zap.String(utils.FieldBatchID, bp.batchID),
		zap.String(utils.FieldAction, bp.action),
		zap.Int("total", bp.total),
		zap.Int("successful", bp.successful),
		zap.Int("failed", bp.failed),
		zap.Int("skipped", bp.skipped),
		zap.String("message", bp.Summary()))
}
