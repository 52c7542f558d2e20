package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvWebHost     = "WELCOME_WEB_HOST"
	EnvWebPort     = "WELCOME_WEB_PORT"
	EnvWebSSL      = "WELCOME_WEB_SSL"
	EnvWebCert     = "WELCOME_WEB_CERT"
	EnvWebKey      = "WELCOME_WEB_KEY"
	EnvWebDebug    = "WELCOME_WEB_DEBUG"
	EnvEnvironment = "ENV"
)

const DefaultEnvironment = "dev"

// loadEnv overrides web settings from environment variables.
// .env.{ENV} and .env are read first; variables already set in the
// process environment win over both.
func loadEnv(w *WebConfig) error {
	loadEnvFile()

	stringMappings := map[string]*string{
		EnvWebHost: &w.ListenHost,
		EnvWebCert: &w.CertFile,
		EnvWebKey:  &w.KeyFile,
	}
	for envVar, field := range stringMappings {
		if val := os.Getenv(envVar); val != "" {
			*field = val
		}
	}

	if val := os.Getenv(EnvWebPort); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q: %w", EnvWebPort, val, err)
		}
		w.ListenPort = port
	}

	boolMappings := map[string]*bool{
		EnvWebSSL:   &w.SSL,
		EnvWebDebug: &w.Debug,
	}
	for envVar, field := range boolMappings {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q: %w", envVar, val, err)
		}
		*field = b
	}
	return nil
}

// loadEnvFile loads the appropriate .env file based on the ENV variable
// Precedence: .env.{ENV} > .env
func loadEnvFile() {
	env := os.Getenv(EnvEnvironment)
	if env == "" {
		env = DefaultEnvironment
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("[CONFIG]: No %s or .env file found, using system environment variables only", envFile)
		}
	} else {
		log.Printf("[CONFIG]: Loaded environment from %s", envFile)
	}
}
