// Package server exposes the store and the ingestion pipeline over HTTP.
// It is thin routing glue: every endpoint delegates straight to the store
// or the pipeline and performs no validation or deduplication of its own.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gnomegl/ulpdb/pkg/store"
	"github.com/gnomegl/ulpdb/pkg/ulp"
)

// searchLimit caps HTTP search responses; the store API itself is
// unlimited.
const searchLimit = 200

type Server struct {
	store    *store.Store
	pipeline *ulp.Pipeline
	log      zerolog.Logger
	router   *gin.Engine
}

func New(st *store.Store, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:    st,
		pipeline: ulp.NewPipeline(),
		log:      log,
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.Group("/api")

	api.GET("/ulp", s.handleGetEntries)
	api.GET("/ulp/search", s.handleSearchEntries)
	api.GET("/ulp/stats", s.handleStats)
	api.GET("/ulp/export", s.handleExportEntries)
	api.POST("/ulp", s.handleAddEntries)
	api.POST("/ulp/ingest", s.handleIngest)
	api.DELETE("/ulp", s.handleDeleteEntries)

	api.GET("/websites", s.handleGetWebsites)
	api.GET("/websites/search", s.handleSearchWebsites)
	api.POST("/websites", s.handleAddWebsites)
	api.DELETE("/websites", s.handleDeleteWebsites)

	api.GET("/technologies", s.handleGetTechnologies)
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("listening")
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
