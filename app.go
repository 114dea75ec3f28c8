package sfexplorer

import (
	"github.com/gin-gonic/gin"
	log "log/slog"
	"time"
)

const DefaultStorefrontTokenTitle = "shopify-storefront-api-explorer"

// App serves the install flow on top of a Client.
type App struct {
	*Client
	*AppConfig
}

type AppConfig struct {
	storefrontTokenTitle string
	stateTTL             time.Duration
	withTraceID          bool
}

type AppOpt = func(a *App)

func NewApp(client *Client, opts ...AppOpt) *App {
	app := &App{Client: client, AppConfig: &AppConfig{}}
	applyDefaults(app)
	for _, opt := range opts {
		opt(app)
	}
	return app
}

func applyDefaults(a *App) {
	a.storefrontTokenTitle = DefaultStorefrontTokenTitle
	a.stateTTL = time.Hour
}

func (a *App) logger(c *gin.Context) *log.Logger {
	if a.withTraceID {
		if id, ok := c.Get(TraceIDKey); ok {
			return log.With("trace", id)
		}
	}
	return log.Default()
}

// WithStorefrontTokenTitle sets the label of storefront tokens minted on
// install.
func WithStorefrontTokenTitle(title string) AppOpt {
	return func(a *App) {
		if title != "" {
			a.storefrontTokenTitle = title
		}
	}
}

func WithStateTTL(d time.Duration) AppOpt {
	return func(a *App) {
		if d > 0 {
			a.stateTTL = d
		}
	}
}

func WithTraceID() AppOpt {
	return func(a *App) {
		a.withTraceID = true
	}
}

// Register mounts the install flow on r.
func (a *App) Register(r gin.IRouter) {
	if a.withTraceID {
		r.Use(TraceID)
	}
	r.GET("/", a.Index)
	r.GET(CallbackPath, a.Done)
	r.POST(WebhookPath, a.Webhook)
}
