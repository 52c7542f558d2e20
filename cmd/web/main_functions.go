package main

import (
	"context"
	"log"
	"os"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
)

var Prof *prof.Profiler

// startProfiler serves pprof on addr in the background
func startProfiler(addr string) {
	Prof = prof.NewProf()
	go Prof.PprofWeb(addr)
	log.Printf("[WEB]: pprof web listener started on %s", addr)
}

// monitorUpdateFile checks for the existence of an update file every interval
// and signals for shutdown when found, after renaming the file to <path>.todo
func monitorUpdateFile(ctx context.Context, updateFilePath string, interval time.Duration, shutdownChan chan<- bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[WEB]: Update file monitor started, checking for '%s' every %s", updateFilePath, interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if _, err := os.Stat(updateFilePath); err != nil {
			continue
		}
		log.Printf("[WEB]: Update file '%s' detected, triggering graceful shutdown", updateFilePath)

		if err := os.Rename(updateFilePath, updateFilePath+".todo"); err != nil {
			log.Printf("[WEB]: Warning: Failed to rename update file '%s': %v", updateFilePath, err)
			continue
		}

		select {
		case shutdownChan <- true:
			log.Printf("[WEB]: Shutdown signal sent via update file monitor")
		default:
			log.Printf("[WEB]: Shutdown channel already signaled")
		}
		return
	}
}
