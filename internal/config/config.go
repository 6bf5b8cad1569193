package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the operator settings read from the environment.
// AWS credentials and region are not part of it; they come from the SDK's default chain.
type Config struct {
	IPServices      []string      `envconfig:"DDNS_IP_SERVICES"`
	HTTPTimeout     time.Duration `envconfig:"DDNS_HTTP_TIMEOUT" default:"15s"`
	ProviderTimeout time.Duration `envconfig:"DDNS_PROVIDER_TIMEOUT" default:"30s"`
	MaxAttempts     int           `envconfig:"DDNS_AWS_MAX_ATTEMPTS" default:"3"`
	WaitForSync     bool          `envconfig:"DDNS_WAIT_FOR_SYNC"`
	SyncTimeout     time.Duration `envconfig:"DDNS_SYNC_TIMEOUT" default:"5m"`
	SyncPoll        time.Duration `envconfig:"DDNS_SYNC_POLL_INTERVAL"`
	OpenDNSServer   string        `envconfig:"DDNS_OPENDNS_SERVER"`
}

func LoadConfig() (*Config, error) {
	var result Config
	if err := envconfig.Process("", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
