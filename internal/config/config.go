// Package config provides configuration management for go-welcome.
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Default web listener settings
	DefaultListenHost      = "0.0.0.0"
	DefaultListenPort      = 5001
	DefaultShutdownTimeout = 15 * time.Second
)

// MainConfig holds the main configuration for go-welcome
type MainConfig struct {
	// Web interface settings
	Web WebConfig `json:"web" yaml:"web"`

	AppVersion string `json:"app_version" yaml:"-"` // Application version, set at build time
}

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenHost      string        `json:"listen_host" yaml:"listen_host"`
	ListenPort      int           `json:"listen_port" yaml:"listen_port"`
	SSL             bool          `json:"ssl" yaml:"ssl"`
	CertFile        string        `json:"cert_file,omitempty" yaml:"cert_file,omitempty"`
	KeyFile         string        `json:"key_file,omitempty" yaml:"key_file,omitempty"`
	Debug           bool          `json:"debug" yaml:"debug"` // gin debug mode
	TrustedProxies  []string      `json:"trusted_proxies" yaml:"trusted_proxies"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DefaultTrustedProxies covers loopback and private ranges (nginx etc. on the same host or LAN)
var DefaultTrustedProxies = []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	proxies := make([]string, len(DefaultTrustedProxies))
	copy(proxies, DefaultTrustedProxies)
	return &MainConfig{
		AppVersion: AppVersion,
		Web: WebConfig{
			ListenHost:      DefaultListenHost,
			ListenPort:      DefaultListenPort,
			SSL:             false,
			TrustedProxies:  proxies,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
	}
}

// Load builds the configuration with this precedence:
// 1. Defaults
// 2. YAML file (skipped when path is empty)
// 3. Environment variables (.env files included)
// Command-line flags are applied by the caller afterwards.
func Load(path string) (*MainConfig, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := loadEnv(&cfg.Web); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a YAML file over the current values
func (c *MainConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	log.Printf("[CONFIG]: Loaded configuration from %s", path)
	return nil
}

// Addr returns the host:port the web server listens on
func (w *WebConfig) Addr() string {
	return net.JoinHostPort(w.ListenHost, strconv.Itoa(w.ListenPort))
}

// Validate checks the web configuration before the listener is opened
func (w *WebConfig) Validate() error {
	if w.ListenPort < 1 || w.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", w.ListenPort)
	}
	if w.SSL {
		if w.CertFile == "" || w.KeyFile == "" {
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
	}
	if w.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %s", w.ShutdownTimeout)
	}
	return nil
}
