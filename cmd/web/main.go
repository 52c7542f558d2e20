// Web server for go-welcome: serves the home page and the health page
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-while/go-welcome/internal/config"
	"github.com/go-while/go-welcome/internal/web"
)

var (
	// command-line flags
	configPath  string
	webhost     string
	webport     int
	webssl      bool
	webcertFile string
	webkeyFile  string
	webdebug    bool
	pprofAddr   string
	updateFile  string
	updateCheck time.Duration
	showVersion bool
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	registerFlags(flag.CommandLine)
	flag.Parse()

	if showVersion {
		fmt.Println(appVersion)
		os.Exit(0)
	}

	mainConfig, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[WEB]: Failed to load configuration: %v", err)
	}
	log.Printf("Starting go-welcome: Web Server (version: %s)", mainConfig.AppVersion)
	webConfig := &mainConfig.Web
	applyFlags(webConfig)

	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}
	log.Printf("[WEB]: Using WEB configuration: %#v", webConfig)

	if pprofAddr != "" {
		startProfiler(pprofAddr)
	}

	server, err := web.NewServer(webConfig)
	if err != nil {
		log.Fatalf("[WEB]: Failed to create web server: %v", err)
	}

	protocol := "http"
	if webConfig.SSL {
		protocol = "https"
	}
	log.Printf("[WEB]: Starting go-welcome web server on %s://%s", protocol, webConfig.Addr())

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Server started successfully. Press Ctrl+C to gracefully shutdown...")

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	updateFileChan := make(chan bool, 1)
	if updateFile != "" && updateCheck > 0 {
		go monitorUpdateFile(monitorCtx, updateFile, updateCheck, updateFileChan)
	}

	// Wait for either shutdown signal, server error, or update file
	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	case <-updateFileChan:
		log.Printf("[WEB]: Update file detected, initiating graceful shutdown for update...")
	}
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), webConfig.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Error during shutdown: %v", err)
	}

	log.Printf("[WEB]: Graceful shutdown completed")
} // end main

// registerFlags binds the command-line flags to fs
func registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&configPath, "config", "", "optional YAML config file (web: listen_host, listen_port, ssl, ...)")
	fs.StringVar(&webhost, "webhost", "", "Web server listen address (default: 0.0.0.0)")
	fs.IntVar(&webport, "webport", 0, "Web server port (default: 5001)")
	fs.BoolVar(&webssl, "webssl", false, "Enable SSL")
	fs.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	fs.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	fs.BoolVar(&webdebug, "webdebug", false, "Run gin in debug mode")
	fs.StringVar(&pprofAddr, "pprofweb", "", "Start pprof web listener on this address (e.g. 127.0.0.1:51111)")
	fs.StringVar(&updateFile, "updatefile", "", "Shut down gracefully when this file appears, e.g. .update (default: disabled)")
	fs.DurationVar(&updateCheck, "updatecheck", 60*time.Second, "Interval for checking -updatefile")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
}

// applyFlags overrides configuration with command-line flags if provided
func applyFlags(webConfig *config.WebConfig) {
	if webhost != "" {
		webConfig.ListenHost = webhost
		log.Printf("[WEB]: Overriding listen host with command-line flag: %s", webConfig.ListenHost)
	}
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	} else {
		log.Printf("[WEB]: No port flag provided, using: %d", webConfig.ListenPort)
	}
	if webssl {
		webConfig.SSL = true
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
		log.Printf("[WEB]: SSL cert file set: %s", webConfig.CertFile)
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
		log.Printf("[WEB]: SSL key file set: %s", webConfig.KeyFile)
	}
	if webdebug {
		webConfig.Debug = true
	}
}
