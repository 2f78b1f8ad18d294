// Package httpserver exposes the account actions over HTTP using gin.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gameauth/internal/logging"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	handler *Handler
	logger  logging.Logger
	router  *gin.Engine
}

func NewHTTPServer(address, allowOrigin string, l logging.Logger, h *Handler) *HTTPServer {
	logger := l.With("module", "http_server")
	return &HTTPServer{
		address: address,
		handler: h,
		logger:  logger,
		router:  NewRouter(h, allowOrigin, logger),
	}
}

// NewRouter builds the gin engine: POST / for actions, GET /health, CORS on
// everything and JSON 405/404 for the rest.
func NewRouter(h *Handler, allowOrigin string, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), RequestLogger(logger), CORS(allowOrigin))

	r.POST("/", h.Action)
	r.GET("/health", h.Health)

	r.NoMethod(h.MethodNotAllowed)
	r.NoRoute(h.NotFound)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
