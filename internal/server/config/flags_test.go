package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseFlags(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	parseFlags(cfg, []string{
		"-a", ":7000",
		"-w=:7001",
		"-d", "sqlite:/tmp/lumen.db",
		"-m", "a@x.io, b@x.io,",
		"-retries", "4",
		"-log-level", "debug",
		"-report-ttl", "2m",
		"-test.v", "-unknown", "value",
	})

	assert.Equal(t, ":7000", cfg.EndpointAddrGRPC)
	assert.Equal(t, ":7001", cfg.EndpointAddrHTTP)
	assert.Equal(t, "sqlite:/tmp/lumen.db", cfg.DatabaseDSN)
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, cfg.AdminEmails)
	assert.Equal(t, 4, cfg.ConflictRetries)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Minute, cfg.ReportURLValidity)
	assert.Equal(t, "secretKey", cfg.SecretKey)
}

func Test_parseFlags_KeepsAdminsWhenAbsent(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.AdminEmails = []string{"root@x.io"}

	parseFlags(cfg, nil)

	assert.Equal(t, []string{"root@x.io"}, cfg.AdminEmails)
}

func Test_parseFlags_BadValuePanics(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Panics(t, func() { parseFlags(cfg, []string{"-retries", "many"}) })
}
