package main

import (
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/jamslinger/sfexplorer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	c, err := loadConfig()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(c.LogLevel)

	client, err := sfexplorer.NewClient(c.Shopify, sfexplorer.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}))
	if err != nil {
		log.Error("failed to create shopify client", "error", err)
		os.Exit(1)
	}
	app := sfexplorer.NewApp(client,
		sfexplorer.WithStorefrontTokenTitle(c.StorefrontTokenTitle),
		sfexplorer.WithTraceID())

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	app.Register(r)

	srv := &http.Server{Addr: c.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("listening", "addr", c.HTTPAddr, "config", c.Shopify.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func setupLogger(level string) {
	var l log.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = log.LevelInfo
	}
	log.SetDefault(log.New(log.NewTextHandler(os.Stdout, &log.HandlerOptions{Level: l})))
	if l > log.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
}
