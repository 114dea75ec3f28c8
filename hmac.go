package sfexplorer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// VerifyPayload is a message signed by Shopify: the supplied digest and every
// other field that took part in signing it.
type VerifyPayload struct {
	HMAC   string
	Fields map[string]string
}

func (p VerifyPayload) Get(key string) string {
	return p.Fields[key]
}

// Message is the canonical form Shopify signs: fields sorted byte-wise by key
// and query encoded as key=value pairs joined by '&'.
func (p VerifyPayload) Message() string {
	return canonicalize(p.Fields)
}

func canonicalize(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "hmac" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = queryEscape(k) + "=" + queryEscape(fields[k])
	}
	return strings.Join(pairs, "&")
}

var unescapeMarks = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// queryEscape escapes like Shopify's reference querystring encoder: space is
// %20 and !'()* stay literal. A literal '+' is already %2B at this point.
func queryEscape(s string) string {
	return unescapeMarks.Replace(url.QueryEscape(s))
}

// Sign returns the lowercase hex HMAC-SHA256 of the canonical message of
// fields, keyed with the client secret.
func (c *Client) Sign(fields map[string]string) string {
	hash := hmac.New(sha256.New, []byte(c.config.ClientSecret))
	hash.Write([]byte(canonicalize(fields)))
	return hex.EncodeToString(hash.Sum(nil))
}

// Verify reports whether the payload's digest matches the one computed from
// its fields. The comparison runs in constant time.
func (c *Client) Verify(p VerifyPayload) bool {
	if p.HMAC == "" {
		return false
	}
	return hmac.Equal([]byte(c.Sign(p.Fields)), []byte(p.HMAC))
}
