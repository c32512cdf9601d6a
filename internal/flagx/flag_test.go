package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		allowed  []string
		switches []string
		want     []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end is kept",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "flag followed by another flag",
			args:    []string{"-c", "-a", "x"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:     "switch does not consume value",
			args:     []string{"-l", "positional", "-d", "dsn"},
			allowed:  []string{"-l", "-d"},
			switches: []string{"-l"},
			want:     []string{"-l", "-d", "dsn"},
		},
		{
			name:     "switch with explicit value",
			args:     []string{"-l=false"},
			allowed:  []string{"-l"},
			switches: []string{"-l"},
			want:     []string{"-l=false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed, tt.switches...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONConfigPath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short flag", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		os.Args = []string{"bin", "-a", ":1", "-c", "short.json"}
		assert.Equal(t, "short.json", JSONConfigPath())
	})

	t.Run("long flag with equals", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		os.Args = []string{"bin", "-config=long.json"}
		assert.Equal(t, "long.json", JSONConfigPath())
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "env.json")
		os.Args = []string{"bin"}
		assert.Equal(t, "env.json", JSONConfigPath())
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "env.json")
		os.Args = []string{"bin", "-c", "flag.json"}
		assert.Equal(t, "flag.json", JSONConfigPath())
	})

	t.Run("nothing set", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		os.Args = []string{"bin"}
		assert.Equal(t, "", JSONConfigPath())
	})
}
