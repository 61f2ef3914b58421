package server

import (
	"context"

	"github.com/cns-tools/store-creator/internal/config"
	"github.com/stretchr/testify/mock"
)

type MockStoresClient struct {
	mock.Mock
}

func (m *MockStoresClient) UpsertCheckInCode(ctx context.Context, url string, group *config.GroupRequest) error {
	args := m.Called(ctx, url, group)
	return args.Error(0)
}

func (m *MockStoresClient) DeleteCheckInCode(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
