package sfexplorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

var callbackFields = []string{"hmac", "code", "shop", "state", "timestamp"}

// DecodeCallbackQuery decodes the query of an OAuth callback. Every key must
// carry exactly one value; a repeated key is rejected.
func DecodeCallbackQuery(q url.Values) (VerifyPayload, error) {
	for _, k := range callbackFields {
		if len(q[k]) != 1 {
			return VerifyPayload{}, invalidProperty(k)
		}
	}
	fields := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) != 1 {
			return VerifyPayload{}, invalidProperty(k)
		}
		fields[k] = vs[0]
	}
	p := VerifyPayload{HMAC: fields["hmac"], Fields: fields}
	delete(p.Fields, "hmac")
	return p, nil
}

// DecodeWebhookPayload decodes a flat JSON webhook body. Any value that is not
// a string invalidates the whole payload. A missing header is left to Verify.
func DecodeWebhookPayload(hmacHeader string, body []byte) (VerifyPayload, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return VerifyPayload{}, fmt.Errorf("%w: body is not a json object: %w", ErrInvalidPayloadShape, err)
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return VerifyPayload{}, invalidProperty(k)
		}
		fields[k] = s
	}
	delete(fields, "hmac")
	return VerifyPayload{HMAC: hmacHeader, Fields: fields}, nil
}

type Phase string

const (
	PhasePre  Phase = "pre"
	PhasePost Phase = "post"
)

// IndexQuery describes a landing request. Before installation only Shop is
// known; afterwards both tokens are present as well.
type IndexQuery struct {
	Phase                 Phase
	Shop                  string
	AccessToken           string
	StoreFrontAccessToken string
}

func DecodeIndexQuery(q url.Values) (IndexQuery, error) {
	if len(q["shop"]) != 1 {
		return IndexQuery{}, fmt.Errorf("invalid access. shop=%v: %w", q["shop"], invalidProperty("shop"))
	}
	iq := IndexQuery{Phase: PhasePre, Shop: q.Get("shop")}
	if len(q["accessToken"]) == 1 && len(q["storeFrontAccessToken"]) == 1 {
		iq.Phase = PhasePost
		iq.AccessToken = q.Get("accessToken")
		iq.StoreFrontAccessToken = q.Get("storeFrontAccessToken")
	}
	return iq, nil
}

func IsInvalidPayload(err error) bool {
	return errors.Is(err, ErrInvalidPayloadShape)
}
