package service

import (
	"context"
	"fmt"

	"github.com/cns-tools/store-creator/internal/client"
	"github.com/cns-tools/store-creator/internal/config"
	"github.com/cns-tools/store-creator/internal/utils"
	"go.uber.org/zap"
)

// CreationManager upserts check-in code groups one at a time.
type CreationManager struct {
	stores   client.StoresClient
	throttle *Throttle
}

// NewCreationManager creates a new CreationManager instance.
func NewCreationManager(stores client.StoresClient, throttle *Throttle) *CreationManager {
	return &CreationManager{stores: stores, throttle: throttle}
}

// Run POSTs every group to urlTemplate with its country substituted. Calls are
// sequential and a failed group never stops the batch; the failed groups are
// returned in dispatch order.
func (cm *CreationManager) Run(ctx context.Context, batchID string, groups []config.GroupRequest, urlTemplate string) []config.FailedGroup {
	log := utils.WithComponent("creation_manager").With(zap.String(utils.FieldBatchID, batchID))
	progress := NewBatchProgress(batchID, ActionCreate, len(groups))
	failed := make([]config.FailedGroup, 0)

	for i := range groups {
		group := &groups[i]
		url := config.ResolveURL(urlTemplate, group.Country)

		err := cm.throttle.Wait(ctx)
		if err == nil {
			err = cm.stores.UpsertCheckInCode(ctx, url, group)
		} else {
			err = fmt.Errorf("wait for dispatch slot: %w", err)
		}
		if err != nil {
			log.Error("Error creating stores",
				zap.Int(utils.FieldGroupID, group.GroupID),
				zap.Ints(utils.FieldStoreIDs, group.StoreIDs),
				zap.String(utils.FieldURL, url),
				zap.Error(err))
			failed = append(failed, config.FailedGroup{Group: *group, Reason: err.Error()})
			progress.Failed()
			continue
		}

		log.Info("Stores successfully created",
			zap.Int(utils.FieldGroupID, group.GroupID),
			zap.Ints(utils.FieldStoreIDs, group.StoreIDs))
		progress.Succeeded()
	}

	progress.Finalize()
	return failed
}
