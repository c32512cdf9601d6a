package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-m", ":9100", "-k", "memory", "-d", "db", "-s", "secret",
			"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
			"-n", "nats://localhost:4222", "-r", "7", "-w", "25ms", "-x", "2", "-l",
			"-q", "5.5", "-y", "9", "-v", "debug", "-f", "text",
		}, expected: &Config{
			EndpointAddrGRPC:     "127.0.0.1:9090",
			MetricsAddr:          ":9100",
			StorageKind:          "memory",
			DatabaseDSN:          "db",
			SecretKey:            "secret",
			S3RootUser:           "user",
			S3RootPassword:       "password",
			S3Bucket:             "bucket",
			S3Region:             "us-west-1",
			S3BaseEndpoint:       "http://endpoint",
			NATSURL:              "nats://localhost:4222",
			MatchConflictRetries: 7,
			MatchConflictBackoff: 25 * time.Millisecond,
			MatchStaleRetries:    2,
			MatchByLevel:         true,
			RateLimitRPS:         5.5,
			RateLimitBurst:       9,
			LogLevel:             "debug",
			LogFormat:            "text",
		}},
		{name: "unknown flags are ignored", args: []string{"cmd", "-c", "cfg.json", "-z", "1", "-a", ":1"},
			expected: &Config{EndpointAddrGRPC: ":1"}},
		{name: "bad int panics", args: []string{"cmd", "-r", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
