// Package server exposes the peerfunds workflows as a small upload and download web
// page.
package server

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/etnz/peerfunds"
	"github.com/etnz/peerfunds/date"
	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML []byte

// maxUploadMemory bounds the multipart form kept in memory, larger uploads spill to
// temporary files.
const maxUploadMemory = 32 << 20

// Server serves the web page and the workflow endpoints. Uploads are processed in
// memory, nothing is persisted.
type Server struct {
	cfg    *peerfunds.Config
	logger *slog.Logger
	today  func() date.Date
	engine *gin.Engine
}

// New returns a Server using cfg. A nil logger discards the request logs.
func New(cfg *peerfunds.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{cfg: cfg, logger: logger, today: date.Today}

	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.index)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.POST("/compare", s.compare)
	r.POST("/generate", s.generate)
	r.POST("/missing", s.missing)
	s.engine = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.engine.ServeHTTP(w, r) }

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs every request once served.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}
		s.logger.Log(c.Request.Context(), level, "request", attrs...)
	}
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// health answers the liveness probe.
func health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
