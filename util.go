package sfexplorer

import (
	"regexp"
)

const myshopifyDomain = "myshopify.com"

var shopRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]\.` + regexp.QuoteMeta(myshopifyDomain) + `$`)

// ValidShop reports whether shop is a plain <name>.myshopify.com host. It is
// the only gate between a request parameter and a redirect target.
func ValidShop(shop string) bool {
	return shopRegexp.MatchString(shop)
}

func sanitizeShop(shop string) (string, error) {
	if !ValidShop(shop) {
		return "", ErrInvalidShopDomain
	}
	return shop, nil
}
