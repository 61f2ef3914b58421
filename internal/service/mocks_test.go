package service

import (
	"context"
	"strconv"

	"github.com/cns-tools/store-creator/internal/config"
	"github.com/stretchr/testify/mock"
)

// MockStoresClient is a mock implementation of client.StoresClient
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

func anyContext() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func deleteURL(country string, groupID int) string {
	return config.ResolveURL(config.DefaultProductionBaseURL+config.CheckInCodeDeletePath, country) + strconv.Itoa(groupID)
}
