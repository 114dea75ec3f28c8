package sfexplorer

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"io"
	log "log/slog"
	"net/http"
)

const (
	WebhookPath   = "/api/gdpr"
	XHmacHeader   = "X-Shopify-Hmac-SHA256"
	XDomainHeader = "X-Shopify-Shop-Domain"
	XTopicHeader  = "X-Shopify-Topic"

	maxWebhookBody = 1 << 20
)

// Webhook acknowledges the mandatory GDPR webhooks. Nothing about customers
// is stored, so a verified request needs no further work.
func (a *App) Webhook(c *gin.Context) {
	logger := a.logger(c).With(
		log.String("shop", c.GetHeader(XDomainHeader)),
		log.String("topic", c.GetHeader(XTopicHeader)))

	bs, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = c.AbortWithError(http.StatusRequestEntityTooLarge, err)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	// Only flat string bodies can be signed with the canonical query scheme.
	// Shopify's nested GDPR payloads (customer, orders_requested) end up as a
	// 400 here and are expected to.
	payload, err := DecodeWebhookPayload(c.GetHeader(XHmacHeader), bs)
	if err != nil {
		abortWithResult[VerifyPayload](c, http.StatusBadRequest, err)
		return
	}
	if !a.Verify(payload) {
		verifyFailures.WithLabelValues("webhook").Inc()
		logger.With(log.String("hmac", payload.HMAC)).Error("unauthorized webhook request")
		_ = c.Error(ErrVerificationFailed)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{})
		return
	}
	logger.Debug("webhook verified")
	c.JSON(http.StatusOK, gin.H{})
}

var verifyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shopify_hmac_verification_failures_total",
	Help: "Number of requests rejected because their hmac did not match",
}, []string{"source"})
