package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/schooltech/scheduler-core/pkg/logger"
	"github.com/schooltech/scheduler-core/pkg/middleware/requestid"
	"github.com/schooltech/scheduler-core/pkg/storage"
)

// Server is the opt-in observability HTTP surface: metrics, health, and
// signed report downloads.
type Server struct {
	engine    *gin.Engine
	storage   *storage.Dir
	signer    *storage.Signer
	collector *Collector
}

// NewServer wires the metrics/health/report-download routes onto a Gin
// engine in release mode. log may be nil, in which case request logging
// is skipped.
func NewServer(collector *Collector, store *storage.Dir, signer *storage.Signer, log *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(requestid.Middleware(), gin.Recovery())
	if log != nil {
		engine.Use(logger.GinMiddleware(log))
	}

	s := &Server{engine: engine, storage: store, signer: signer, collector: collector}

	engine.GET("/metrics", s.prometheus)
	engine.GET("/healthz", s.health)
	engine.GET("/reports/:token", s.downloadReport)

	return s
}

// Handler returns the underlying HTTP handler for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) prometheus(c *gin.Context) {
	if s.collector == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	s.collector.Handler().ServeHTTP(c.Writer, c.Request)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) downloadReport(c *gin.Context) {
	token := c.Param("token")
	if s.signer == nil || s.storage == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	name, err := s.signer.Verify(token)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	file, err := s.storage.Open(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report unreadable"})
		return
	}

	c.Header("Content-Disposition", "attachment")
	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), file)
}
