package sfexplorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClientNormalizesConfig(t *testing.T) {
	config := testConfig()
	config.AppURL = "https://example.com/"
	config.APIVersion = ""
	c, err := NewClient(config)
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com", c.Config().AppURL)
	assert.Equal(t, DefaultVersion, c.Config().APIVersion)
	assert.Equal(t, "2020-07", c.Config().APIVersion.String())
}

func TestNewClientStripsOnlyOneSlash(t *testing.T) {
	config := testConfig()
	config.AppURL = "https://example.com/app//"
	c, err := NewClient(config)
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/app/", c.Config().AppURL)
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"missing id":       func(c *Config) { c.ClientID = "" },
		"missing secret":   func(c *Config) { c.ClientSecret = "" },
		"relative app url": func(c *Config) { c.AppURL = "/api" },
		"malformed url":    func(c *Config) { c.AppURL = "http://[::1" },
	} {
		config := testConfig()
		mutate(&config)
		_, err := NewClient(config)
		assert.Error(t, err, name)
	}
}

func TestConfigStringHidesSecret(t *testing.T) {
	assert.NotContains(t, testConfig().String(), testSecret)
}

func TestEndpoint(t *testing.T) {
	c, err := NewClient(testConfig())
	assert.NoError(t, err)
	assert.Equal(t, "https://mytest.myshopify.com/admin/api/2099-00/graphql.json", c.Endpoint(testShop, "graphql.json"))
}
