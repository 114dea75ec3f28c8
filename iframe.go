package sfexplorer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hasura/go-graphql-client"
)

// appHandleQuery renders as `query appHandle{app{handle}}`.
type appHandleQuery struct {
	App *struct {
		Handle *string `graphql:"handle"`
	} `graphql:"app"`
}

func (c *Client) graphQLClient(shop string, accessToken string) *graphql.Client {
	return graphql.NewClient(c.Endpoint(shop, "graphql.json"), c.http).
		WithRequestModifier(func(r *http.Request) {
			r.Header.Set(XAccessToken, accessToken)
		})
}

// IframeURL resolves the admin URL under which the installed app is embedded.
func (c *Client) IframeURL(ctx context.Context, accessToken string, shop string) (string, error) {
	labels := []string{shop, "graphql/appHandle"}
	now := time.Now()

	var q appHandleQuery
	err := c.graphQLClient(shop, accessToken).Query(ctx, &q, nil, graphql.OperationName("appHandle"))
	if err != nil {
		responseTime.WithLabelValues(append(labels, "error")...).Observe(time.Since(now).Seconds())
		return "", fmt.Errorf("appHandle query failed: %w", err)
	}
	responseTime.WithLabelValues(append(labels, "200")...).Observe(time.Since(now).Seconds())

	if q.App == nil || q.App.Handle == nil || *q.App.Handle == "" {
		return "", &MissingFieldError{Field: "app.handle", Got: q.App}
	}
	return fmt.Sprintf("https://%s/admin/apps/%s", shop, *q.App.Handle), nil
}
