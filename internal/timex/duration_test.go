package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var cfg struct {
		Backoff Duration `json:"backoff"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"backoff":"150ms"}`), &cfg))
	assert.Equal(t, 150*time.Millisecond, cfg.Backoff.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"backoff":1000000}`), &cfg))
	assert.Equal(t, time.Millisecond, cfg.Backoff.Duration)

	assert.Error(t, json.Unmarshal([]byte(`{"backoff":"soon"}`), &cfg))
	assert.Error(t, json.Unmarshal([]byte(`{"backoff":true}`), &cfg))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 2 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"2s"`, string(b))
}
