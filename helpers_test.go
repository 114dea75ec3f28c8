package sfexplorer

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testShop   = "mytest.myshopify.com"
	testCode   = "035fa8d75e6c5628d2406f5918e81529"
	testState  = "4d358df9cfa5826d1ac8cc8b9ffc18ca"
	testSecret = "test_api_secret"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() Config {
	return Config{
		ClientID:     "test_api_key",
		ClientSecret: testSecret,
		APIVersion:   "2099-00",
		AppURL:       "https://example.com",
		Scope:        "administration",
	}
}

// newTestClient returns a client whose every https://{shop} request lands on h.
func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, network, srv.Listener.Addr().String())
		},
	}
	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: tr}))
	require.NoError(t, err)
	return client
}

func newTestRouter(app *App) *gin.Engine {
	r := gin.New()
	app.Register(r)
	return r
}

func callbackFieldsFor(state string) map[string]string {
	return map[string]string{
		"code":      testCode,
		"shop":      testShop,
		"state":     state,
		"timestamp": "1592874758",
	}
}
