package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cns-tools/store-creator/internal/client"
	"github.com/cns-tools/store-creator/internal/config"
	"github.com/cns-tools/store-creator/internal/utils"
	"go.uber.org/zap"
)

// DeletionManager deletes check-in code groups one at a time.
type DeletionManager struct {
	stores    client.StoresClient
	throttle  *Throttle
	logErrors bool
}

// NewDeletionManager creates a new DeletionManager instance. When logErrors is
// false failed deletions are collected without logging the underlying error.
func NewDeletionManager(stores client.StoresClient, throttle *Throttle, logErrors bool) *DeletionManager {
	return &DeletionManager{stores: stores, throttle: throttle, logErrors: logErrors}
}

// Run DELETEs every group at urlTemplate (country substituted) followed by the
// group id. A group id deleted earlier in the same batch is skipped; grouping
// already makes ids unique, so this only guards callers passing raw lists.
func (dm *DeletionManager) Run(ctx context.Context, batchID string, groups []config.GroupRequest, urlTemplate string) []config.FailedGroup {
	log := utils.WithComponent("deletion_manager").With(zap.String(utils.FieldBatchID, batchID))
	progress := NewBatchProgress(batchID, ActionDelete, len(groups))
	failed := make([]config.FailedGroup, 0)
	deleted := make(map[int]struct{}, len(groups))

	for _, group := range groups {
		if _, done := deleted[group.GroupID]; done {
			log.Debug("Group already deleted in this batch, skipping",
				zap.Int(utils.FieldGroupID, group.GroupID))
			progress.Skipped()
			continue
		}

		url := config.ResolveURL(urlTemplate, group.Country) + strconv.Itoa(group.GroupID)

		err := dm.throttle.Wait(ctx)
		if err == nil {
			err = dm.stores.DeleteCheckInCode(ctx, url)
		} else {
			err = fmt.Errorf("wait for dispatch slot: %w", err)
		}
		if err != nil {
			if dm.logErrors {
				log.Error("Error deleting group",
					zap.Int(utils.FieldGroupID, group.GroupID),
					zap.String(utils.FieldCountry, group.Country),
					zap.String(utils.FieldURL, url),
					zap.Error(err))
			}
			failed = append(failed, config.FailedGroup{Group: group, Reason: err.Error()})
			progress.Failed()
			continue
		}

		deleted[group.GroupID] = struct{}{}
		log.Info("Deleted group",
			zap.Int(utils.FieldGroupID, group.GroupID),
			zap.String(utils.FieldCountry, group.Country))
		progress.Succeeded()
	}

	progress.Finalize()
	return failed
}
