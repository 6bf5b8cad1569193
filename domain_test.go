package ddns_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Travis-Britz/ddns/v2"
)

func TestValidateDomainName(t *testing.T) {
	valid := []string{"a.b", "example.com", "api.dev.example.com", "example.com."}
	for _, name := range valid {
		assert.NoError(t, ddns.ValidateDomainName(name), name)
	}

	invalid := []string{"", "localhost", "a.", ".com", "ab", "foo..com"}
	for _, name := range invalid {
		err := ddns.ValidateDomainName(name)
		var ce *ddns.ConfigError
		if assert.Error(t, err, name) {
			assert.True(t, errors.As(err, &ce), name)
			assert.Equal(t, name, ce.Name)
		}
	}
}

func TestParseDomains(t *testing.T) {
	domains, err := ddns.ParseDomains([]string{"API.example.com.", "www.example.com", "api.example.com"})
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, "api.example.com", domains[0].Name)
	assert.Equal(t, "www.example.com", domains[1].Name)
	for _, d := range domains {
		assert.Empty(t, d.ZoneID)
		assert.False(t, d.LastPublished.IsValid())
		assert.False(t, d.Unmatched())
	}
}

func TestParseDomainsReportsEveryInvalidName(t *testing.T) {
	_, err := ddns.ParseDomains([]string{"localhost", "ok.example.com", "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"localhost"`)
	assert.Contains(t, err.Error(), `"x"`)

	var ce *ddns.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestParseDomainsEmpty(t *testing.T) {
	_, err := ddns.ParseDomains(nil)
	var ce *ddns.ConfigError
	assert.True(t, errors.As(err, &ce))
}
