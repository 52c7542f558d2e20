// Package web provides the HTTP server and web interface for go-welcome
package web

import (
	"github.com/gin-gonic/gin"
)

// homePageHandler serves "/": the greeting page linking to /health
func (s *WebServer) homePageHandler(c *gin.Context) {
	s.renderPage(c, s.homePage)
}
