package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/langmatch/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string    gRPC bind address (e.g., ":50051")
//	-m string    metrics bind address
//	-k string    storage backend: postgres | memory
//	-d string    PostgreSQL DSN
//	-s string    JWT HMAC secret key
//	-u string    S3 root user
//	-p string    S3 root password
//	-b string    S3 bucket name
//	-g string    S3 region
//	-e string    S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-n string    NATS URL
//	-r int       commit conflict retries
//	-w duration  commit conflict base backoff (e.g., "10ms")
//	-x int       stale partner retries
//	-l           match only within the same proficiency level
//	-q float     per-user requests per second
//	-y int       per-user burst
//	-v string    log level
//	-f string    log format: json | text
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-m", "-k", "-d", "-s", "-u", "-p", "-b", "-g", "-e", "-n", "-r", "-w", "-x", "-l", "-q", "-y", "-v", "-f"},
		"-l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address of the metrics endpoint")
	fs.StringVar(&config.StorageKind, "k", config.StorageKind, "storage backend (postgres|memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.NATSURL, "n", config.NATSURL, "NATS URL")

	fs.IntVar(&config.MatchConflictRetries, "r", config.MatchConflictRetries, "transaction conflict retries")
	fs.DurationVar(&config.MatchConflictBackoff, "w", config.MatchConflictBackoff, "transaction conflict base backoff")
	fs.IntVar(&config.MatchStaleRetries, "x", config.MatchStaleRetries, "stale partner retries")
	fs.BoolVar(&config.MatchByLevel, "l", config.MatchByLevel, "match within the same proficiency level")

	fs.Float64Var(&config.RateLimitRPS, "q", config.RateLimitRPS, "per-user requests per second")
	fs.IntVar(&config.RateLimitBurst, "y", config.RateLimitBurst, "per-user burst")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json|text)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
