package web

import (
	"github.com/gin-gonic/gin"
)

// healthPageHandler serves "/health" with the fixed OK status page
func (s *WebServer) healthPageHandler(c *gin.Context) {
	s.renderPage(c, s.healthPage)
}
