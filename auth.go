package sfexplorer

import (
	"fmt"
	"net/url"
)

const CallbackPath = "/api/done"

// RedirectURI is where Shopify sends the merchant back after consent.
func (c *Client) RedirectURI() string {
	return c.config.AppURL + CallbackPath
}

// AuthorizationURL builds the consent page URL for shop. state is passed
// through untouched; generating and checking it is up to the caller.
func (c *Client) AuthorizationURL(shop string, state string) (string, error) {
	shop, err := sanitizeShop(shop)
	if err != nil {
		return "", err
	}
	query := url.Values{
		"client_id":    {c.config.ClientID},
		"redirect_uri": {c.RedirectURI()},
		"scope":        {c.config.Scope},
		"state":        {state},
	}
	return fmt.Sprintf("https://%s/admin/oauth/authorize?%s", shop, query.Encode()), nil
}
