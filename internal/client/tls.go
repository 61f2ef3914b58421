package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// LoadTLSConfig builds the TLS configuration for production hosts. The client
// certificate and the CA bundle are independent: either may be configured alone.
// It returns nil when neither is configured.
func LoadTLSConfig(certFile, keyFile, caFile string) (*tls.Config, error) {
	if certFile == "" && keyFile == "" && caFile == "" {
		return nil, nil
	}
	if (certFile == "") != (keyFile == "") {
		return nil, fmt.Errorf("client tls: both TLS_CERT_FILE and TLS_KEY_FILE are required")
	}

	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if certFile != "" {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("client tls: load client cert/key: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	if caFile != "" {
		pem, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("client tls: read CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("client tls: invalid CA pem in '%s'", caFile)
		}
		tlsCfg.RootCAs = pool
	}
	return tlsCfg, nil
}

// HasClientCertificate reports whether cfg presents a certificate for mutual TLS.
func HasClientCertificate(cfg *tls.Config) bool {
	return cfg != nil && len(cfg.Certificates) > 0
}
