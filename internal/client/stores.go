package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cns-tools/store-creator/internal/config"
)

// storesClient is an unexported concrete implementation of StoresClient.
type storesClient struct {
	*HTTPClient
}

// NewStoresClient creates a StoresClient sharing one resty client (and its TLS
// material) across all requests.
func NewStoresClient(opts Options) StoresClient {
	return &storesClient{HTTPClient: NewHTTPClient(opts)}
}

// UpsertCheckInCode creates or replaces the check-in code configuration of a group.
func (c *storesClient) UpsertCheckInCode(ctx context.Context, url string, group *config.GroupRequest) error {
	if _, err := c.DoReq(ctx, http.MethodPost, url, group); err != nil {
		return fmt.Errorf("upsert check-in code for group %d: %w", group.GroupID, err)
	}
	return nil
}

// DeleteCheckInCode deletes the check-in code group addressed by url.
func (c *storesClient) DeleteCheckInCode(ctx context.Context, url string) error {
	if _, err := c.DoReq(ctx, http.MethodDelete, url, nil); err != nil {
		return fmt.Errorf("delete check-in code at '%s': %w", url, err)
	}
	return nil
}
