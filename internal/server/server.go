package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/pdf"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
	Logger       zerolog.Logger
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	log    zerolog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(config.Logger))

	s := &Server{
		config: config,
		router: router,
		log:    config.Logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/parse", s.handleParse)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/extract", s.handleExtract)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.Info().Str("address", s.config.Address).Msg("listening")
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleParse(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	inv, err := cii.Parse(body)
	if err != nil {
		s.invoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ParseResponse{
		Profile: inv.Profile().String(),
		Invoice: inv,
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	inv, err := cii.Parse(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:  false,
			Kind:   errorKind(err),
			Errors: []string{err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{
		Valid:   true,
		Profile: inv.Profile().String(),
	})
}

func (s *Server) handleExtract(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	dir, err := os.MkdirTemp("", "facturx-server")
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "cannot stage upload"})
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "upload.pdf")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "cannot stage upload"})
		return
	}

	xml, err := pdf.ExtractXML(path)
	if err != nil {
		var noAttachment *pdf.NoAttachmentError
		if errors.As(err, &noAttachment) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error: "no invoice attachment found",
				Kind:  "no-attachment",
			})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "not a readable PDF",
			Kind:  "pdf",
		})
		return
	}

	if c.Query("format") == "xml" {
		c.Data(http.StatusOK, "application/xml", xml)
		return
	}

	inv, err := cii.Parse(xml)
	if err != nil {
		s.invoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ParseResponse{
		Profile: inv.Profile().String(),
		Invoice: inv,
	})
}

func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) invoiceError(c *gin.Context, err error) {
	s.log.Debug().Err(err).Msg("document rejected")
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error: err.Error(),
		Kind:  errorKind(err),
	})
}

// errorKind names the error family for API clients.
func errorKind(err error) string {
	var (
		parseErr    *cii.ParseError
		notInvoice  *cii.NotInvoiceError
		invalid     *cii.InvalidDocumentError
		unsupported *cii.UnsupportedProfileError
		profileErr  *cii.ProfileError
		modelErr    *model.ModelError
	)
	switch {
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &notInvoice):
		return "not-invoice"
	case errors.As(err, &invalid):
		return "invalid-document"
	case errors.As(err, &unsupported):
		return "unsupported-profile"
	case errors.As(err, &profileErr):
		return "profile"
	case errors.As(err, &modelErr):
		return "business-rule"
	default:
		return ""
	}
}
