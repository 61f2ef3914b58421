package service

import (
	"errors"
	"testing"

	"github.com/cns-tools/store-creator/internal/client"
	"github.com/cns-tools/store-creator/internal/config"
	"github.com/cns-tools/store-creator/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const productionTemplate = config.DefaultProductionBaseURL + config.CheckInCodePath

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	original := utils.Logger
	core, logs := observer.New(zap.DebugLevel)
	utils.Logger = zap.New(core)
	t.Cleanup(func() { utils.Logger = original })
	return logs
}

func matchGroup(groupID int) any {
	return mock.MatchedBy(func(g *config.GroupRequest) bool { return g.GroupID == groupID })
}

func TestCreationManager_AllSucceed(t *testing.T) {
	groups := []config.GroupRequest{
		{GroupID: 5, Country: "", StoreIDs: []int{10, 11}},
		{GroupID: 7, Country: "-mx", StoreIDs: []int{20}},
	}

	mockClient := new(MockStoresClient)
	mockClient.On("UpsertCheckInCode", mock.Anything,
		"https://cns-stores-ms.security.rappi.com:4443/api/cns-stores-ms/auto-check-in-code", matchGroup(5)).Return(nil).Once()
	mockClient.On("UpsertCheckInCode", mock.Anything,
		"https://cns-stores-ms-mx.security.rappi.com:4443/api/cns-stores-ms/auto-check-in-code", matchGroup(7)).Return(nil).Once()

	failed := NewCreationManager(mockClient, NewThrottle(0, 0)).Run(t.Context(), "batch-1", groups, productionTemplate)

	assert.Empty(t, failed)
	mockClient.AssertExpectations(t)
	mockClient.AssertNumberOfCalls(t, "UpsertCheckInCode", 2)
}

func TestCreationManager_FailureDoesNotAbortBatch(t *testing.T) {
	logs := observeLogs(t)
	groups := []config.GroupRequest{
		{GroupID: 1, Country: "-mx", StoreIDs: []int{100}},
		{GroupID: 2, Country: "-mx", StoreIDs: []int{200, 201}},
		{GroupID: 3, Country: "", StoreIDs: []int{300}},
	}

	mockClient := new(MockStoresClient)
	mockClient.On("UpsertCheckInCode", mock.Anything, mock.Anything, matchGroup(1)).Return(nil)
	mockClient.On("UpsertCheckInCode", mock.Anything, mock.Anything, matchGroup(2)).
		Return(&client.HTTPError{StatusCode: 500, Body: "boom"})
	mockClient.On("UpsertCheckInCode", mock.Anything, mock.Anything, matchGroup(3)).Return(nil)

	failed := NewCreationManager(mockClient, nil).Run(t.Context(), "batch-2", groups, productionTemplate)

	assert.Len(t, failed, 1)
	assert.Equal(t, groups[1], failed[0].Group)
	assert.Contains(t, failed[0].Reason, "HTTP 500")
	mockClient.AssertNumberOfCalls(t, "UpsertCheckInCode", 3)

	errorLogs := logs.FilterMessage("Error creating stores").All()
	assert.Len(t, errorLogs, 1)
	assert.Equal(t, "batch-2", errorLogs[0].ContextMap()[utils.FieldBatchID])
	assert.Len(t, logs.FilterMessage("Stores successfully created").All(), 2)
}

func TestCreationManager_NonProductionTemplateIgnoresCountry(t *testing.T) {
	template := config.DefaultDevelopmentBaseURL + config.CheckInCodePath
	groups := []config.GroupRequest{{GroupID: 4, Country: "development", StoreIDs: []int{1}}}

	mockClient := new(MockStoresClient)
	mockClient.On("UpsertCheckInCode", mock.Anything, template, matchGroup(4)).Return(errors.New("dial tcp: refused"))

	failed := NewCreationManager(mockClient, nil).Run(t.Context(), "batch-3", groups, template)

	assert.Len(t, failed, 1)
	mockClient.AssertExpectations(t)
}
