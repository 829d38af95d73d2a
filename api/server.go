package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/iulianpascalau/metrics-registry/registry"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("api")

const defaultActor = "api"

type server struct {
	router         *gin.Engine
	httpServer     *http.Server
	registry       RegistryHandler
	serviceKey     string
	listenAddr     string
	generalHandler func(http.Handler) http.Handler
	wg             sync.WaitGroup
}

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ServiceKeyApi  string
	ListenAddress  string
	Registry       RegistryHandler
	GeneralHandler func(http.Handler) http.Handler
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.Registry) {
		return nil, errors.New("registry handler is required")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())

	s := &server{
		router:         router,
		registry:       args.Registry,
		serviceKey:     args.ServiceKeyApi,
		listenAddr:     args.ListenAddress,
		generalHandler: args.GeneralHandler,
	}

	s.setupRoutes()
	return s, nil
}

func (s *server) setupRoutes() {
	api := s.router.Group("/api")
	api.Use(s.authAPIKey())

	api.GET("/registry", s.handleGetRegistry)
	api.GET("/export", s.handleExport)
	api.PUT("/registry/:qualifiedName/enable", s.handleEnable)
	api.PUT("/registry/:qualifiedName/disable", s.handleDisable)
	api.PUT("/registry/:qualifiedName/config", s.handleUpdateConfig)
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: handler,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return nil
}

// --- Middlewares ---

func (s *server) authAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Api-Key")
		if key != s.serviceKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// --- Handlers ---

func (s *server) handleGetRegistry(c *gin.Context) {
	enabled, ok := parseEnabledFilter(c.Query("enabled"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enabled filter"})
		return
	}

	states, err := s.registry.Registry(c.Request.Context(), enabled, parseTags(c.Query("tags")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": states})
}

func (s *server) handleExport(c *gin.Context) {
	text, err := s.registry.Export(c.Request.Context(), parseTags(c.Query("tags")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.String(http.StatusOK, text)
}

func (s *server) handleEnable(c *gin.Context) {
	s.setEnabled(c, true)
}

func (s *server) handleDisable(c *gin.Context) {
	s.setEnabled(c, false)
}

func (s *server) setEnabled(c *gin.Context, enabled bool) {
	qualifiedName := c.Param("qualifiedName")
	err := s.registry.SetEnabled(c.Request.Context(), qualifiedName, enabled, actorOf(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *server) handleUpdateConfig(c *gin.Context) {
	var cfg metrics.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	qualifiedName := c.Param("qualifiedName")
	err := s.registry.UpdateConfig(c.Request.Context(), qualifiedName, cfg, actorOf(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, registry.ErrMetricNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func actorOf(c *gin.Context) string {
	actor := c.GetHeader("X-Actor")
	if len(actor) == 0 {
		return defaultActor
	}

	return actor
}

func parseEnabledFilter(value string) (*bool, bool) {
	switch value {
	case "":
		return nil, true
	case "true":
		enabled := true
		return &enabled, true
	case "false":
		enabled := false
		return &enabled, true
	}

	return nil, false
}

func parseTags(value string) []string {
	if len(value) == 0 {
		return nil
	}

	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if len(trimmed) > 0 {
			tags = append(tags, trimmed)
		}
	}

	return tags
}
