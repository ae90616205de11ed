package config

import (
	"flag"
	"strings"

	"github.com/dmitrijs2005/lumen/internal/flagx"
)

// parseFlags overlays command-line flags from args.
//
//	-a string            gRPC bind address (":50051")
//	-w string            HTTP bind address for health and catalog endpoints
//	-d string            database DSN (postgres://... or sqlite:<path>)
//	-s string            identity token HMAC secret
//	-m string            comma-separated admin emails
//	-k string            bcrypt hash of the admin security key
//	-retries int         retries after a conflicting profile write
//	-log-backend string  slog or zap
//	-log-level string    debug, info, warn or error
//	-u, -p, -b, -g, -e   S3 user, password, bucket, region, endpoint
//	-report-ttl duration lifetime of presigned report links
//
// Only these flags are looked at, so other components may own the rest of
// the command line. Malformed values panic.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{
		"-a", "-w", "-d", "-s", "-m", "-k", "-retries", "-log-backend", "-log-level",
		"-u", "-p", "-b", "-g", "-e", "-report-ttl",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token secret key")
	admins := fs.String("m", strings.Join(config.AdminEmails, ","), "admin emails, comma separated")
	fs.StringVar(&config.AdminKeyHash, "k", config.AdminKeyHash, "bcrypt hash of the admin key")
	fs.IntVar(&config.ConflictRetries, "retries", config.ConflictRetries, "retries for conflicting profile writes")
	fs.StringVar(&config.LogBackend, "log-backend", config.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket for reports")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.DurationVar(&config.ReportURLValidity, "report-ttl", config.ReportURLValidity, "report link lifetime")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AdminEmails = splitList(*admins)
}
