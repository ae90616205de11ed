package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/lumen/internal/flagx"
	"github.com/dmitrijs2005/lumen/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "15m" style
// strings or nanoseconds. Absent fields keep their previous values.
type JsonConfig struct {
	EndpointAddrGRPC  string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP  string         `json:"endpoint_addr_http"`
	DatabaseDSN       string         `json:"database_dsn"`
	SecretKey         string         `json:"secret_key"`
	AdminEmails       []string       `json:"admin_emails"`
	AdminKeyHash      string         `json:"admin_key_hash"`
	ConflictRetries   int            `json:"conflict_retries"`
	ConflictBackoff   timex.Duration `json:"conflict_backoff"`
	LogBackend        string         `json:"log_backend"`
	LogLevel          string         `json:"log_level"`
	S3RootUser        string         `json:"s3_root_user"`
	S3RootPassword    string         `json:"s3_root_password"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
	ReportURLValidity timex.Duration `json:"report_url_validity"`
}

// parseJson loads the file named by -c/-config in args, if any, and
// overlays its non-empty values. It panics if the file cannot be read or
// parsed.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.AdminKeyHash, c.AdminKeyHash)
	set(&config.LogBackend, c.LogBackend)
	set(&config.LogLevel, c.LogLevel)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if len(c.AdminEmails) > 0 {
		config.AdminEmails = c.AdminEmails
	}
	if c.ConflictRetries > 0 {
		config.ConflictRetries = c.ConflictRetries
	}
	if c.ConflictBackoff.Duration > 0 {
		config.ConflictBackoff = c.ConflictBackoff.Duration
	}
	if c.ReportURLValidity.Duration > 0 {
		config.ReportURLValidity = c.ReportURLValidity.Duration
	}
}
