package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DDNS_IP_SERVICES", "DDNS_HTTP_TIMEOUT", "DDNS_PROVIDER_TIMEOUT", "DDNS_AWS_MAX_ATTEMPTS", "DDNS_WAIT_FOR_SYNC", "DDNS_SYNC_TIMEOUT", "DDNS_SYNC_POLL_INTERVAL", "DDNS_OPENDNS_SERVER"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.IPServices)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.False(t, cfg.WaitForSync)
	assert.Equal(t, 5*time.Minute, cfg.SyncTimeout)
	assert.Empty(t, cfg.OpenDNSServer)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DDNS_IP_SERVICES", "https://a.example/ip,https://b.example/ip")
	t.Setenv("DDNS_HTTP_TIMEOUT", "2s")
	t.Setenv("DDNS_AWS_MAX_ATTEMPTS", "7")
	t.Setenv("DDNS_WAIT_FOR_SYNC", "true")
	t.Setenv("DDNS_OPENDNS_SERVER", "127.0.0.1:5353")
	t.Setenv("DDNS_SYNC_POLL_INTERVAL", "10s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/ip", "https://b.example/ip"}, cfg.IPServices)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.True(t, cfg.WaitForSync)
	assert.Equal(t, "127.0.0.1:5353", cfg.OpenDNSServer)
	assert.Equal(t, 10*time.Second, cfg.SyncPoll)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("DDNS_HTTP_TIMEOUT", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "domains.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDomainsFile(t *testing.T) {
	tests := map[string]string{
		"sequence": "- home.example.com\n- vpn.example.com\n",
		"mapping":  "domains:\n  - home.example.com\n  - vpn.example.com\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			names, err := LoadDomainsFile(writeFile(t, content))
			require.NoError(t, err)
			assert.Equal(t, []string{"home.example.com", "vpn.example.com"}, names)
		})
	}
}

func TestLoadDomainsFileErrors(t *testing.T) {
	_, err := LoadDomainsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading domains file")

	_, err = LoadDomainsFile(writeFile(t, "domains: [unterminated\n"))
	assert.ErrorContains(t, err, "parsing domains file")
}
