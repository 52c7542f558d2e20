// Package web provides the HTTP server and web interface for go-welcome
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-welcome/internal/config"
)

// WebServer represents the web server
type WebServer struct {
	Router     *gin.Engine
	Config     *config.WebConfig
	StartTime  time.Time // Track server start time for uptime logging
	homePage   *Page
	healthPage *Page
	trusted    []*net.IPNet

	mux        sync.Mutex // guards httpServer
	httpServer *http.Server
}

// NewServer creates a new web server instance
func NewServer(webconfig *config.WebConfig) (*WebServer, error) {
	if webconfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// unknown method on a known path answers 405 instead of 404
	router.HandleMethodNotAllowed = true

	// Configure Gin to trust reverse proxy headers
	if err := router.SetTrustedProxies(webconfig.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies %v: %w", webconfig.TrustedProxies, err)
	}
	trusted, err := parseTrustedProxies(webconfig.TrustedProxies)
	if err != nil {
		return nil, err
	}

	home, err := LoadPage(homePageFile)
	if err != nil {
		return nil, err
	}
	health, err := LoadPage(healthPageFile)
	if err != nil {
		return nil, err
	}

	server := &WebServer{
		Router:     router,
		Config:     webconfig,
		homePage:   home,
		healthPage: health,
		trusted:    trusted,
	}

	router.Use(server.ApacheLogFormat(), gin.Recovery())

	// X-Forwarded-Proto/Host from trusted proxies must be applied before
	// secure decides on the SSL redirect
	router.Use(server.ReverseProxyMiddleware())

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	router.Use(secure.New(secureConfig))

	if webconfig.Debug {
		server.logPages()
	}

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	s.Router.GET("/", s.homePageHandler)
	s.Router.HEAD("/", s.homePageHandler)
	s.Router.GET("/health", s.healthPageHandler)
	s.Router.HEAD("/health", s.healthPageHandler)
}

// ServeHTTP lets the server be mounted directly (httptest, other muxes)
func (s *WebServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// Start starts the web server with SSL support if configured.
// It blocks until the listener fails or Shutdown is called;
// after Shutdown it returns http.ErrServerClosed.
func (s *WebServer) Start() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	addr := s.Config.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.mux.Lock()
	s.StartTime = time.Now()
	s.httpServer = srv
	s.mux.Unlock()

	if s.Config.SSL {
		log.Printf("[WEB]: Starting HTTPS server on %s", addr)
		return srv.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	}
	log.Printf("[WEB]: Starting HTTP server on %s", addr)
	return srv.ListenAndServe()
}

// Shutdown gracefully stops the listener, waiting for in-flight requests until ctx expires
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mux.Lock()
	srv, started := s.httpServer, s.StartTime
	s.mux.Unlock()
	if srv == nil {
		return nil
	}
	err := srv.Shutdown(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	log.Printf("[WEB]: Server stopped after %s", time.Since(started).Round(time.Second))
	return nil
}

// ReverseProxyMiddleware handles X-Forwarded headers when running behind a reverse proxy
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// only honour forwarding headers from peers gin trusts
		if !s.isTrustedPeer(c.RemoteIP()) {
			c.Next()
			return
		}

		// Handle X-Forwarded-Proto to detect if the original request was HTTPS
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}

		// Handle X-Forwarded-Host to get the original host
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = strings.TrimSpace(strings.Split(host, ",")[0])
		}

		c.Next()
	}
}

// logPages lists the embedded pages and the ones bound to routes
func (s *WebServer) logPages() {
	files, err := ListEmbeddedPages()
	if err != nil {
		log.Printf("[WEB]: Failed to list embedded pages: %v", err)
		return
	}
	log.Printf("[WEB]: Embedded pages: %v", files)
	for route, page := range map[string]*Page{"/": s.homePage, "/health": s.healthPage} {
		log.Printf("[WEB]: Route %s serves %s (%d bytes, %s)", route, page.Name, len(page.Body), page.ContentType)
	}
}

func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
