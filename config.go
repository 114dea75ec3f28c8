package sfexplorer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type Version string

func (v Version) String() string {
	return string(v)
}

const (
	VLatest Version = V202401
	// DefaultVersion is used when Config leaves APIVersion empty.
	DefaultVersion Version = V202007
	V202401 Version = "2024-01"
	V202310 Version = "2023-10"
	V202007 Version = "2020-07"
)

// DefaultScopes are the storefront permissions the explorer asks for.
var DefaultScopes = []string{
	"unauthenticated_read_product_listings",
	"unauthenticated_read_product_tags",
	"unauthenticated_write_checkouts",
	"unauthenticated_write_customers",
	"unauthenticated_read_customer_tags",
	"unauthenticated_read_content",
}

type Config struct {
	ClientID     string
	ClientSecret string
	APIVersion   Version
	// AppURL is the absolute base URL of this app. A single trailing slash is
	// dropped by NewClient.
	AppURL string
	// Scope is the comma joined list of OAuth permissions, see JoinScopes.
	Scope string
}

func JoinScopes(scopes ...string) string {
	return strings.Join(scopes, ",")
}

func (c Config) String() string {
	return fmt.Sprintf("Config{ClientID: %s, APIVersion: %s, AppURL: %s, Scope: %s}",
		c.ClientID, c.APIVersion, c.AppURL, c.Scope)
}

func normalize(c Config) (Config, error) {
	if c.ClientID == "" {
		return c, errors.New("client id must not be empty")
	}
	if c.ClientSecret == "" {
		return c, errors.New("client secret must not be empty")
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultVersion
	}
	c.AppURL = strings.TrimSuffix(c.AppURL, "/")
	u, err := url.Parse(c.AppURL)
	if err != nil {
		return c, fmt.Errorf("malformed app url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return c, fmt.Errorf("app url must be absolute: %q", c.AppURL)
	}
	return c, nil
}
