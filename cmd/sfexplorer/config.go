package main

import (
	"errors"
	"os"
	"strings"

	"github.com/jamslinger/sfexplorer"
	"github.com/joho/godotenv"
)

type config struct {
	HTTPAddr             string
	LogLevel             string
	StorefrontTokenTitle string
	Shopify              sfexplorer.Config
}

func loadConfig() (config, error) {
	// .env is a local convenience, real deployments set the environment.
	_ = godotenv.Load()

	c := config{
		HTTPAddr:             getEnv("HTTP_ADDR", ":3000"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		StorefrontTokenTitle: getEnv("STOREFRONT_TOKEN_TITLE", sfexplorer.DefaultStorefrontTokenTitle),
		Shopify: sfexplorer.Config{
			ClientID:     os.Getenv("SHOPIFY_API_KEY"),
			ClientSecret: os.Getenv("SHOPIFY_API_SECRET"),
			APIVersion:   sfexplorer.Version(getEnv("SHOPIFY_API_VERSION", sfexplorer.DefaultVersion.String())),
			AppURL:       getEnv("APP_URL", "http://localhost:3000"),
			Scope:        sfexplorer.JoinScopes(sfexplorer.DefaultScopes...),
		},
	}
	if scopes := os.Getenv("SHOPIFY_SCOPES"); scopes != "" {
		c.Shopify.Scope = sfexplorer.JoinScopes(strings.Split(scopes, ",")...)
	}
	if c.Shopify.ClientID == "" || c.Shopify.ClientSecret == "" {
		return c, errors.New("SHOPIFY_API_KEY and SHOPIFY_API_SECRET must be set")
	}
	return c, nil
}

func getEnv(key string, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
