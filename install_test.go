package sfexplorer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type InstallTestSuite struct {
	suite.Suite
	upstream *http.ServeMux
	app      *App
}

func TestInstallTestSuite(t *testing.T) {
	suite.Run(t, new(InstallTestSuite))
}

func (s *InstallTestSuite) SetupTest() {
	s.upstream = http.NewServeMux()
	s.app = NewApp(newTestClient(s.T(), s.upstream), WithStorefrontTokenTitle("label-of-token"))
}

func (s *InstallTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	newTestRouter(s.app).ServeHTTP(w, req)
	return w
}

func (s *InstallTestSuite) decodeResult(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *InstallTestSuite) callbackRequest(fields map[string]string, hmac string, cookieState string) *http.Request {
	q := url.Values{"hmac": {hmac}}
	for k, v := range fields {
		q.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodGet, CallbackPath+"?"+q.Encode(), nil)
	if cookieState != "" {
		token, err := s.app.signState(cookieState, time.Now())
		s.Require().NoError(err)
		req.AddCookie(&http.Cookie{Name: StateCookie, Value: token})
	}
	return req
}

func (s *InstallTestSuite) TestIndexBeginsOAuth() {
	w := s.serve(httptest.NewRequest(http.MethodGet, "/?shop="+testShop, nil))
	s.Equal(http.StatusFound, w.Code)

	location := w.Header().Get("Location")
	s.True(strings.HasPrefix(location, "https://mytest.myshopify.com/admin/oauth/authorize?"), location)
	u, err := url.Parse(location)
	s.Require().NoError(err)
	state := u.Query().Get("state")
	s.Len(state, 64)
	s.Equal("https://example.com/api/done", u.Query().Get("redirect_uri"))

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == StateCookie {
			cookie = ck
		}
	}
	s.Require().NotNil(cookie)
	s.True(cookie.HttpOnly)
	s.True(cookie.Secure)
	nonce, err := s.app.parseState(cookie.Value)
	s.NoError(err)
	s.Equal(state, nonce)
}

func (s *InstallTestSuite) TestIndexRejectsInvalidShop() {
	w := s.serve(httptest.NewRequest(http.MethodGet, "/?shop=mytest.bigcommerce.com", nil))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(map[string]any{"ok": false, "err": "invalid shop name"}, s.decodeResult(w))
	s.Empty(w.Result().Cookies())
}

func (s *InstallTestSuite) TestIndexRequiresShop() {
	w := s.serve(httptest.NewRequest(http.MethodGet, "/", nil))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(false, s.decodeResult(w)["ok"])
}

func (s *InstallTestSuite) TestIndexEmbedsInstalledApp() {
	s.upstream.Handle("/admin/api/2099-00/graphql.json", graphQLHandler(s.T(), http.StatusOK, `{"data":{"app":{"handle":"myapp"}}}`))

	w := s.serve(httptest.NewRequest(http.MethodGet, "/?shop="+testShop+"&accessToken=abc&storeFrontAccessToken=def", nil))
	s.Equal(http.StatusFound, w.Code)
	s.Equal("https://mytest.myshopify.com/admin/apps/myapp", w.Header().Get("Location"))

	w = s.serve(httptest.NewRequest(http.MethodGet, "/?shop="+testShop+"&accessToken=abc&storeFrontAccessToken=def&embedded=1", nil))
	s.Equal(http.StatusOK, w.Code)
	s.Equal("App installed.", w.Body.String())
}

func (s *InstallTestSuite) TestIndexIframeFailure() {
	s.upstream.Handle("/admin/api/2099-00/graphql.json", graphQLHandler(s.T(), http.StatusOK, `{"data":{"app":null}}`))

	w := s.serve(httptest.NewRequest(http.MethodGet, "/?shop="+testShop+"&accessToken=abc&storeFrontAccessToken=def", nil))
	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal(false, s.decodeResult(w)["ok"])
}

func (s *InstallTestSuite) TestDone() {
	s.upstream.Handle("/admin/oauth/access_token", accessTokenHandler(s.T(), http.StatusOK, `{"access_token":"abc"}`, new(int)))
	s.upstream.Handle("/admin/api/2099-00/storefront_access_tokens.json", storefrontHandler(s.T(), http.StatusOK, `{"storefront_access_token":{"access_token":"def"}}`))

	fields := callbackFieldsFor(testState)
	w := s.serve(s.callbackRequest(fields, s.app.Sign(fields), testState))
	s.Equal(http.StatusFound, w.Code)
	s.Equal("https://example.com?accessToken=abc&shop=mytest.myshopify.com&storeFrontAccessToken=def", w.Header().Get("Location"))
}

func (s *InstallTestSuite) TestDoneInvalidHmac() {
	fields := callbackFieldsFor(testState)
	w := s.serve(s.callbackRequest(fields, strings.Repeat("a", 64), testState))
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *InstallTestSuite) TestDoneRepeatedField() {
	fields := callbackFieldsFor(testState)
	req := s.callbackRequest(fields, s.app.Sign(fields), testState)
	req.URL.RawQuery += "&code=other"
	w := s.serve(req)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.decodeResult(w)["err"], "code")
}

func (s *InstallTestSuite) TestDoneStateMismatch() {
	fields := callbackFieldsFor(testState)
	w := s.serve(s.callbackRequest(fields, s.app.Sign(fields), "another-state"))
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.serve(s.callbackRequest(fields, s.app.Sign(fields), ""))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *InstallTestSuite) TestDoneAccessTokenFailure() {
	s.upstream.Handle("/admin/oauth/access_token", accessTokenHandler(s.T(), http.StatusInternalServerError, internalServerError, new(int)))

	fields := callbackFieldsFor(testState)
	w := s.serve(s.callbackRequest(fields, s.app.Sign(fields), testState))
	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal(map[string]any{"ok": false, "err": internalServerError}, s.decodeResult(w))
}

func (s *InstallTestSuite) TestDoneStorefrontFailure() {
	s.upstream.Handle("/admin/oauth/access_token", accessTokenHandler(s.T(), http.StatusOK, `{"access_token":"abc"}`, new(int)))
	s.upstream.Handle("/admin/api/2099-00/storefront_access_tokens.json", storefrontHandler(s.T(), http.StatusInternalServerError, internalServerError))

	fields := callbackFieldsFor(testState)
	w := s.serve(s.callbackRequest(fields, s.app.Sign(fields), testState))
	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal(map[string]any{"ok": false, "err": internalServerError}, s.decodeResult(w))
}

func TestStateExpires(t *testing.T) {
	client, err := NewClient(testConfig())
	require.NoError(t, err)
	app := NewApp(client, WithStateTTL(time.Minute))

	token, err := app.signState("nonce", time.Now().Add(-2*time.Minute))
	require.NoError(t, err)
	_, err = app.parseState(token)
	assert.Error(t, err)
}

func TestStateSignedWithClientSecret(t *testing.T) {
	client, err := NewClient(testConfig())
	require.NoError(t, err)
	config := testConfig()
	config.ClientSecret = "another_secret"
	other, err := NewClient(config)
	require.NoError(t, err)

	token, err := NewApp(other).signState("nonce", time.Now())
	require.NoError(t, err)
	_, err = NewApp(client).parseState(token)
	assert.Error(t, err)
}
