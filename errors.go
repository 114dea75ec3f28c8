package sfexplorer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidShopDomain   = errors.New("invalid shop name")
	ErrInvalidPayloadShape = errors.New("invalid property")
	ErrVerificationFailed  = errors.New("hmac verification failed")
	ErrDecode              = errors.New("failed to decode response")
	ErrInvalidState        = errors.New("invalid oauth state")
)

// UpstreamError is returned for any non-2xx answer from Shopify. Body is kept
// verbatim so callers can show Shopify's own message.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return e.Body
}

func IsUpstream(err error) bool {
	var e *UpstreamError
	return errors.As(err, &e)
}

// MissingFieldError reports a 2xx response lacking a field we depend on.
type MissingFieldError struct {
	Field string
	Got   any
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("expected value %s is missing, got: %+v", e.Field, e.Got)
}

func invalidProperty(key string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayloadShape, key)
}
