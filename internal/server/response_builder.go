// internal/server/response_builder.go
package server

import "github.com/cns-tools/store-creator/internal/config"

// ResponseBuilder provides utilities for constructing consistent API responses.
type ResponseBuilder struct{}

// newResponseBuilder creates a new response builder instance.
func newResponseBuilder() *ResponseBuilder { return &ResponseBuilder{} }

// ErrorResponse standardizes error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// BuildErrorResponse constructs a standardized error response.
func (rb *ResponseBuilder) BuildErrorResponse(message string, details any) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}

// BuildFailedGroupsResponse returns the failed groups exactly as they were sent
// downstream, so the uploader can fix and resubmit them.
func (rb *ResponseBuilder) BuildFailedGroupsResponse(failed []config.FailedGroup) []config.GroupRequest {
	groups := make([]config.GroupRequest, 0, len(failed))
	for _, f := range failed {
		groups = append(groups, f.Group)
	}
	return groups
}

// BuildHealthResponse constructs the health check payload.
func (rb *ResponseBuilder) BuildHealthResponse() HealthResponse {
	return HealthResponse{Success: true, Status: StatusHealthy}
}
