package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/flagx"
	"github.com/dmitrijs2005/langmatch/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	AccessToken         string         `json:"access_token"`
	DevSecretKey        string         `json:"dev_secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. Keys absent from the file keep their current values. Panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigPath()
	if jsonConfigFile == "" {
		return
	}

	jc := JsonConfig{
		ServerEndpointAddr:  cfg.ServerEndpointAddr,
		OnlineCheckInterval: timex.Duration{Duration: cfg.OnlineCheckInterval},
		AccessToken:         cfg.AccessToken,
		DevSecretKey:        cfg.DevSecretKey,
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	cfg.AccessToken = jc.AccessToken
	cfg.DevSecretKey = jc.DevSecretKey
}
