// Path: internal/config/constants.go
package config

import "time"

const (
	// Server configuration defaults
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 5 * time.Minute
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 5 * time.Second

	// Outbound defaults
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxUploadBytes = 32 << 20
)

// Downstream cns-stores-ms defaults.
const (
	DefaultProductionBaseURL  = "https://cns-stores-ms{country}.security.rappi.com:4443"
	DefaultDevelopmentBaseURL = "http://internal-microservices.dev.rappi.com"
	DefaultLocalhostBaseURL   = "http://localhost:8080"

	CheckInCodePath       = "/api/cns-stores-ms/auto-check-in-code"
	CheckInCodeDeletePath = CheckInCodePath + "/group-id/"

	// CountryPlaceholder is replaced with the group's country suffix.
	CountryPlaceholder = "{country}"
)
