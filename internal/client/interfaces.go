package client

import (
	"context"

	"github.com/cns-tools/store-creator/internal/config"
)

// StoresClient defines the calls we make against cns-stores-ms.
// Use NewStoresClient to obtain an implementation; endpoint URLs are resolved by
// the caller per environment and country.
type StoresClient interface {
	UpsertCheckInCode(ctx context.Context, url string, group *config.GroupRequest) error
	DeleteCheckInCode(ctx context.Context, url string) error
}
