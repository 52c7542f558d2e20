package web

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// renderPage writes a fixed page with status 200
func (s *WebServer) renderPage(c *gin.Context, page *Page) {
	c.Data(http.StatusOK, page.ContentType, page.Body)
}

// parseTrustedProxies turns plain IPs and CIDRs into networks, the way gin does internally.
// gin keeps its parsed list private and exports no is-trusted check for the peer.
func parseTrustedProxies(proxies []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(proxies))
	for _, p := range proxies {
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", p)
			}
			if ip.To4() != nil {
				p += "/32"
			} else {
				p += "/128"
			}
		}
		_, cidr, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		nets = append(nets, cidr)
	}
	return nets, nil
}

// isTrustedPeer checks the direct peer address against the trusted proxies
func (s *WebServer) isTrustedPeer(remoteIP string) bool {
	ip := net.ParseIP(remoteIP)
	if ip == nil {
		return false
	}
	for _, cidr := range s.trusted {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
