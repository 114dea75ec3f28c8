package sfexplorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type AccessToken struct {
	Token string `json:"access_token"`
}

type StorefrontAccessToken struct {
	Token StorefrontToken `json:"storefront_access_token"`
}

type StorefrontToken struct {
	AccessToken string `json:"access_token"`
}

type storefrontTokenRequest struct {
	Token struct {
		Title string `json:"title"`
	} `json:"storefront_access_token"`
}

// ExchangeAccessToken trades the authorization code of a callback for an
// offline access token. The OAuth endpoint is not versioned.
func (c *Client) ExchangeAccessToken(ctx context.Context, code string, shop string) (*AccessToken, error) {
	accessTokenEndPoint := fmt.Sprintf("https://%s/admin/oauth/access_token", shop)
	// Field order is part of the wire format, url.Values would sort it.
	body := strings.Join([]string{
		"code=" + url.QueryEscape(code),
		"client_id=" + url.QueryEscape(c.config.ClientID),
		"client_secret=" + url.QueryEscape(c.config.ClientSecret),
	}, "&")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, accessTokenEndPoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token AccessToken
	if err = c.do(req, shop, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CreateStorefrontAccessToken mints a storefront API token labelled title.
// Shopify may refuse a title that is already taken.
func (c *Client) CreateStorefrontAccessToken(ctx context.Context, accessToken string, shop string, title string) (*StorefrontAccessToken, error) {
	var in storefrontTokenRequest
	in.Token.Title = title
	params, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request object: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Endpoint(shop, "storefront_access_tokens.json"), bytes.NewReader(params))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(XAccessToken, accessToken)

	var token StorefrontAccessToken
	if err = c.do(req, shop, &token); err != nil {
		return nil, err
	}
	return &token, nil
}
