package utils

// Structured log field names shared across packages.
const (
	FieldComponent   = "component"
	FieldSignal      = "signal"
	FieldHost        = "host"
	FieldPort        = "port"
	FieldPath        = "path"
	FieldBatchID     = "batch_id"
	FieldAction      = "action"
	FieldEnvironment = "environment"
	FieldGroupID     = "group_id"
	FieldStoreIDs    = "store_ids"
	FieldCountry     = "country"
	FieldURL         = "url"
	FieldLine        = "line"
	FieldColumn      = "column"
)
