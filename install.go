package sfexplorer

import (
	"fmt"
	"github.com/gin-gonic/gin"
	log "log/slog"
	"net/http"
	"net/url"
)

// Index is the landing page. Before installation it starts OAuth, afterwards
// it sends the merchant into the admin iframe.
func (a *App) Index(c *gin.Context) {
	q, err := DecodeIndexQuery(c.Request.URL.Query())
	if err != nil {
		abortWithResult[IndexQuery](c, http.StatusBadRequest, err)
		return
	}
	logger := a.logger(c).With(log.String("shop", q.Shop), log.String("phase", string(q.Phase)))

	if q.Phase == PhasePre {
		nonce, err := newNonce()
		if err != nil {
			abortWithResult[string](c, http.StatusInternalServerError, err)
			return
		}
		redirect, err := a.AuthorizationURL(q.Shop, nonce)
		if err != nil {
			abortWithResult[string](c, http.StatusBadRequest, err)
			return
		}
		if err = a.setStateCookie(c, nonce); err != nil {
			abortWithResult[string](c, http.StatusInternalServerError, err)
			return
		}
		logger.With(log.String("redirect", redirect)).Debug("app not installed, redirecting to consent page")
		c.Redirect(http.StatusFound, redirect)
		c.Abort()
		return
	}

	if _, err = sanitizeShop(q.Shop); err != nil {
		abortWithResult[string](c, http.StatusBadRequest, err)
		return
	}
	iframe, err := a.IframeURL(c.Request.Context(), q.AccessToken, q.Shop)
	if err != nil {
		logger.With("error", err).Debug("failed to resolve iframe url")
		abortWithResult[string](c, http.StatusBadGateway, err)
		return
	}
	if isEmbedded(c) {
		c.String(http.StatusOK, "App installed.")
		return
	}
	logger.With(log.String("redirect", iframe)).Debug("app installed, embedding into admin")
	c.Redirect(http.StatusFound, iframe)
	c.Abort()
}

// Done is the OAuth callback. It authenticates the request, trades the code
// for an access token, mints a storefront token and hands both back to the
// app through the redirect query.
func (a *App) Done(c *gin.Context) {
	payload, err := DecodeCallbackQuery(c.Request.URL.Query())
	if err != nil {
		abortWithResult[VerifyPayload](c, http.StatusBadRequest, err)
		return
	}
	shop := payload.Get("shop")
	logger := a.logger(c).With(log.String("shop", shop))
	logger.Debug("performing install")

	if !a.Verify(payload) {
		verifyFailures.WithLabelValues("callback").Inc()
		logger.With(log.String("hmac", payload.HMAC)).Error("unauthorized callback")
		_ = c.Error(ErrVerificationFailed)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": fmt.Sprintf("invalid hmac, got=[%s]", payload.HMAC),
		})
		return
	}

	err = a.compareStateCookie(c, payload.Get("state"))
	deleteCookies(c.Writer, StateCookie)
	if err != nil {
		abortWithResult[string](c, http.StatusBadRequest, err)
		return
	}
	if _, err = sanitizeShop(shop); err != nil {
		abortWithResult[string](c, http.StatusBadRequest, err)
		return
	}

	token, err := a.ExchangeAccessToken(c.Request.Context(), payload.Get("code"), shop)
	if err != nil {
		logger.With("error", err).Debug("access token exchange failed")
		abortWithResult[*AccessToken](c, http.StatusBadGateway, err)
		return
	}
	storefront, err := a.CreateStorefrontAccessToken(c.Request.Context(), token.Token, shop, a.storefrontTokenTitle)
	if err != nil {
		logger.With("error", err).Debug("storefront token creation failed")
		abortWithResult[*StorefrontAccessToken](c, http.StatusBadGateway, err)
		return
	}

	query := url.Values{
		"accessToken":           {token.Token},
		"storeFrontAccessToken": {storefront.Token.AccessToken},
		"shop":                  {shop},
	}
	logger.Debug("app installed, redirecting to app")
	c.Redirect(http.StatusFound, a.config.AppURL+"?"+query.Encode())
	c.Abort()
}
