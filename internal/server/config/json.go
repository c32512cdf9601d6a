package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/langmatch/internal/flagx"
	"github.com/dmitrijs2005/langmatch/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "10ms" and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC     string         `json:"endpoint_addr_grpc"`
	MetricsAddr          string         `json:"metrics_addr"`
	StorageKind          string         `json:"storage_kind"`
	DatabaseDSN          string         `json:"database_dsn"`
	SecretKey            string         `json:"secret_key"`
	S3RootUser           string         `json:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
	NATSURL              string         `json:"nats_url"`
	MatchConflictRetries int            `json:"match_conflict_retries"`
	MatchConflictBackoff timex.Duration `json:"match_conflict_backoff"`
	MatchStaleRetries    int            `json:"match_stale_retries"`
	MatchByLevel         bool           `json:"match_by_level"`
	RateLimitRPS         float64        `json:"rate_limit_rps"`
	RateLimitBurst       int            `json:"rate_limit_burst"`
	LogLevel             string         `json:"log_level"`
	LogFormat            string         `json:"log_format"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c/-config flags or $LANGMATCH_CONFIG. If
// neither is set, no JSON file is loaded. Keys missing from the file keep the
// values already in config. If the file cannot be read or contains invalid
// JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JSONConfigPath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{
		EndpointAddrGRPC:     config.EndpointAddrGRPC,
		MetricsAddr:          config.MetricsAddr,
		StorageKind:          config.StorageKind,
		DatabaseDSN:          config.DatabaseDSN,
		SecretKey:            config.SecretKey,
		S3RootUser:           config.S3RootUser,
		S3RootPassword:       config.S3RootPassword,
		S3Bucket:             config.S3Bucket,
		S3Region:             config.S3Region,
		S3BaseEndpoint:       config.S3BaseEndpoint,
		NATSURL:              config.NATSURL,
		MatchConflictRetries: config.MatchConflictRetries,
		MatchConflictBackoff: timex.Duration{Duration: config.MatchConflictBackoff},
		MatchStaleRetries:    config.MatchStaleRetries,
		MatchByLevel:         config.MatchByLevel,
		RateLimitRPS:         config.RateLimitRPS,
		RateLimitBurst:       config.RateLimitBurst,
		LogLevel:             config.LogLevel,
		LogFormat:            config.LogFormat,
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.MetricsAddr = c.MetricsAddr
	config.StorageKind = c.StorageKind
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.NATSURL = c.NATSURL
	config.MatchConflictRetries = c.MatchConflictRetries
	config.MatchConflictBackoff = c.MatchConflictBackoff.Duration
	config.MatchStaleRetries = c.MatchStaleRetries
	config.MatchByLevel = c.MatchByLevel
	config.RateLimitRPS = c.RateLimitRPS
	config.RateLimitBurst = c.RateLimitBurst
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
}
