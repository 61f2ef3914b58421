package server

const (
	HealthEndpoint   = "/health"
	UploadBasePath   = "/api/store-creator/upload"
	DeletePath       = "/delete"
	EnvironmentParam = "environment"
	UploadFormField  = "file"
	BatchIDHeader    = "X-Batch-Id"
)

const (
	StatusHealthy = "healthy"
)

const (
	MessageInvalidEnvironment = "Invalid environment"
	MessageFileRequired       = "CSV file is required"
	MessageInvalidUpload      = "Invalid upload"
	MessageUploadTooLarge     = "CSV file is too large"
	MessageInvalidCSV         = "Invalid CSV"
	MessageInternalError      = "Internal error"
)
