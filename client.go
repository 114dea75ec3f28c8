package sfexplorer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const XAccessToken = "X-Shopify-Access-Token"

// Client talks to a shop on behalf of one app. It only holds the immutable
// configuration and is safe for concurrent use.
type Client struct {
	config Config
	http   *http.Client
}

type Opt = func(c *Client)

// WithHTTPClient replaces the transport used for outbound calls. Timeouts
// are whatever the given client carries.
func WithHTTPClient(h *http.Client) Opt {
	return func(c *Client) {
		c.http = h
	}
}

func NewClient(c Config, opts ...Opt) (*Client, error) {
	config, err := normalize(c)
	if err != nil {
		return nil, err
	}
	client := &Client{config: config, http: &http.Client{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Config returns a copy of the normalized configuration.
func (c *Client) Config() Config {
	return c.config
}

// Endpoint returns the versioned admin API URL of endpoint on shop.
func (c *Client) Endpoint(shop string, endpoint string) string {
	return fmt.Sprintf("https://%s/%s", shop, path.Join("admin/api", c.config.APIVersion.String(), endpoint))
}

func (c *Client) do(req *http.Request, shop string, out any) error {
	labels := []string{shop, req.URL.Path}
	now := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		responseTime.WithLabelValues(append(labels, "error")...).Observe(time.Since(now).Seconds())
		return fmt.Errorf("client.Do(%v): %w", req.URL, err)
	}
	defer resp.Body.Close()
	responseTime.WithLabelValues(append(labels, strconv.Itoa(resp.StatusCode))...).Observe(time.Since(now).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bs, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response, status: %d: %w", resp.StatusCode, err)
		}
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(bs)}
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

var responseTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "shopify_response_time_seconds",
	Help: "Histogram of response times for requests sent to Shopify",
}, []string{"shop", "endpoint", "status"})
