package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	Handlers *Handlers
	Port     int
	Out      io.Writer
}

// NewRouter builds the gin router with all routes registered. Routes are
// registered for any method: each handler performs its own method check so
// a mismatched method yields the documented 405 body rather than gin's
// default.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Any("/messages", h.PostMessage)
	router.Any("/messages/user/:username", h.GetMessagesFromUser)
	// Matches requests that omit the username segment entirely, so the
	// handler can answer 422 instead of gin answering 404.
	router.Any("/messages/user", h.GetMessagesFromUser)

	return router
}

// Start launches the API HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Handlers == nil {
		return fmt.Errorf("api: handlers are required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(opts.Handlers)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Postbox listening at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}
