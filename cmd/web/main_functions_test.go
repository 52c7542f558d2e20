package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-while/go-welcome/internal/config"
)

func TestMonitorUpdateFile(t *testing.T) {
	t.Run("signals and renames when file appears", func(t *testing.T) {
		updateFile := filepath.Join(t.TempDir(), ".update")
		shutdownChan := make(chan bool, 1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan struct{})
		go func() {
			monitorUpdateFile(ctx, updateFile, 10*time.Millisecond, shutdownChan)
			close(done)
		}()

		if err := os.WriteFile(updateFile, []byte("v2"), 0644); err != nil {
			t.Fatalf("Failed to create update file: %v", err)
		}

		select {
		case <-shutdownChan:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for shutdown signal")
		}
		<-done

		if _, err := os.Stat(updateFile); !os.IsNotExist(err) {
			t.Errorf("update file still present after signal: %v", err)
		}
		if _, err := os.Stat(updateFile + ".todo"); err != nil {
			t.Errorf("renamed update file missing: %v", err)
		}
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		updateFile := filepath.Join(t.TempDir(), ".update")
		shutdownChan := make(chan bool, 1)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			monitorUpdateFile(ctx, updateFile, 10*time.Millisecond, shutdownChan)
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("monitor did not stop after cancel")
		}
		select {
		case <-shutdownChan:
			t.Error("unexpected shutdown signal without update file")
		default:
		}
	})
}

func TestApplyFlags(t *testing.T) {
	defer func(h string, p int, ssl bool, cert, key string) {
		webhost, webport, webssl, webcertFile, webkeyFile = h, p, ssl, cert, key
	}(webhost, webport, webssl, webcertFile, webkeyFile)

	t.Run("no flags keep config", func(t *testing.T) {
		webhost, webport, webssl, webcertFile, webkeyFile = "", 0, false, "", ""
		cfg := config.NewDefaultConfig()
		cfg.Web.ListenPort = 8080
		applyFlags(&cfg.Web)
		if cfg.Web.Addr() != "0.0.0.0:8080" {
			t.Errorf("Addr() = %q, want %q", cfg.Web.Addr(), "0.0.0.0:8080")
		}
		if cfg.Web.SSL {
			t.Errorf("SSL = true, want false")
		}
	})

	t.Run("flags win", func(t *testing.T) {
		webhost, webport, webssl, webcertFile, webkeyFile = "127.0.0.1", 9443, true, "cert.pem", "key.pem"
		cfg := config.NewDefaultConfig()
		applyFlags(&cfg.Web)
		if cfg.Web.Addr() != "127.0.0.1:9443" {
			t.Errorf("Addr() = %q, want %q", cfg.Web.Addr(), "127.0.0.1:9443")
		}
		if !cfg.Web.SSL || cfg.Web.CertFile != "cert.pem" || cfg.Web.KeyFile != "key.pem" {
			t.Errorf("SSL settings not applied: %#v", cfg.Web)
		}
		if err := cfg.Web.Validate(); err != nil {
			t.Errorf("Validate() unexpected error: %v", err)
		}
	})
}

func TestRegisterFlagsDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	registerFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// no flags must mean the plain 0.0.0.0:5001 server without extras
	if updateFile != "" {
		t.Errorf("updatefile default = %q, want empty (monitor disabled)", updateFile)
	}
	if pprofAddr != "" {
		t.Errorf("pprofweb default = %q, want empty", pprofAddr)
	}
	cfg := config.NewDefaultConfig()
	applyFlags(&cfg.Web)
	if cfg.Web.Addr() != "0.0.0.0:5001" {
		t.Errorf("Addr() = %q, want %q", cfg.Web.Addr(), "0.0.0.0:5001")
	}

	if err := fs.Parse([]string{"-updatefile", ".update", "-updatecheck", "5s"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if updateFile != ".update" || updateCheck != 5*time.Second {
		t.Errorf("updatefile/updatecheck = %q/%s, want .update/5s", updateFile, updateCheck)
	}
	updateFile = ""
}
