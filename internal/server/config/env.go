package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "LUMEN_"

// loadDotEnv copies variables from .env files (default "./.env") into the
// process environment without overriding variables that are already set.
// Missing files are ignored.
func loadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// parseEnv overlays LUMEN_* variables. Malformed numbers and durations are
// ignored and leave the previous value in place.
func parseEnv(c *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	str("GRPC_ADDR", &c.EndpointAddrGRPC)
	str("HTTP_ADDR", &c.EndpointAddrHTTP)
	str("DATABASE_DSN", &c.DatabaseDSN)
	str("SECRET_KEY", &c.SecretKey)
	str("ADMIN_KEY_HASH", &c.AdminKeyHash)
	str("LOG_BACKEND", &c.LogBackend)
	str("LOG_LEVEL", &c.LogLevel)
	str("S3_ROOT_USER", &c.S3RootUser)
	str("S3_ROOT_PASSWORD", &c.S3RootPassword)
	str("S3_BUCKET", &c.S3Bucket)
	str("S3_REGION", &c.S3Region)
	str("S3_BASE_ENDPOINT", &c.S3BaseEndpoint)
	dur("CONFLICT_BACKOFF", &c.ConflictBackoff)
	dur("REPORT_URL_VALIDITY", &c.ReportURLValidity)

	if v, ok := lookup(EnvPrefix + "ADMIN_EMAILS"); ok && v != "" {
		c.AdminEmails = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "CONFLICT_RETRIES"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.ConflictRetries = n
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
