// internal/server/batch.go
// Package server exposes the upload API and drives each uploaded batch.
package server

import (
	"context"
	"fmt"
	"io"

	"github.com/cns-tools/store-creator/internal/client"
	"github.com/cns-tools/store-creator/internal/config"
	"github.com/cns-tools/store-creator/internal/service"
	"github.com/cns-tools/store-creator/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BatchManager turns an uploaded CSV into grouped requests and dispatches them.
type BatchManager struct {
	cfg        *config.Config
	aggregator *service.CSVAggregator
	creator    *service.CreationManager
	deleter    *service.DeletionManager
}

// NewBatchManager constructs a BatchManager with the required dependencies.
// The stores client and its throttle are shared by every batch.
func NewBatchManager(cfg *config.Config, stores client.StoresClient) *BatchManager {
	throttle := service.NewThrottle(cfg.DispatchRate, cfg.DispatchBurst)
	return &BatchManager{
		cfg:        cfg,
		aggregator: service.NewCSVAggregator(cfg.StrictRows),
		creator:    service.NewCreationManager(stores, throttle),
		deleter:    service.NewDeletionManager(stores, throttle, cfg.LogDeleteErrors),
	}
}

// NewBatchID returns a fresh identifier for an upload.
func NewBatchID() string {
	return uuid.New().String()
}

// Create upserts every group in the file against the environment's hosts.
func (bm *BatchManager) Create(ctx context.Context, batchID string, env config.Environment, file io.Reader) (*BatchResult, error) {
	urlTemplate, err := bm.cfg.CreateURLTemplate(env)
	if err != nil {
		return nil, err
	}
	return bm.run(ctx, batchID, service.ActionCreate, env, file, urlTemplate, bm.creator.Run)
}

// Delete removes every group in the file. Deletions always target production.
func (bm *BatchManager) Delete(ctx context.Context, batchID string, file io.Reader) (*BatchResult, error) {
	env := config.EnvironmentProduction
	urlTemplate, err := bm.cfg.DeleteURLTemplate(env)
	if err != nil {
		return nil, err
	}
	return bm.run(ctx, batchID, service.ActionDelete, env, file, urlTemplate, bm.deleter.Run)
}

type dispatchFunc func(ctx context.Context, batchID string, groups []config.GroupRequest, urlTemplate string) []config.FailedGroup

func (bm *BatchManager) run(ctx context.Context, batchID, action string, env config.Environment, file io.Reader, urlTemplate string, dispatch dispatchFunc) (*BatchResult, error) {
	log := utils.Logger.With(
		zap.String(utils.FieldBatchID, batchID),
		zap.String(utils.FieldAction, action),
		zap.String(utils.FieldEnvironment, string(env)))

	groups, err := bm.aggregator.Build(file, env)
	if err != nil {
		log.Warn("Rejected upload", zap.Error(err))
		return nil, fmt.Errorf("build groups: %w", err)
	}

	log.Debug("Starting batch processing", zap.Int("group_count", len(groups)))
	failed := dispatch(ctx, batchID, groups, urlTemplate)

	return &BatchResult{
		BatchID: batchID,
		Groups:  len(groups),
		Failed:  failed,
	}, nil
}
