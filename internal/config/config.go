// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"addr"`

	// ConfigDir is the directory holding per-client profile and catalog files.
	ConfigDir string `json:"configDir"`

	// DatabaseDSN is the Postgres connection string for the shared token
	// revocation store. Empty means the in-memory store is used.
	DatabaseDSN string `json:"databaseDSN"`

	// JWTSecret is the HMAC signing secret for session tokens.
	JWTSecret string `json:"jwtSecret"`

	// ClientCodes maps opaque login codes to client identifiers.
	ClientCodes map[string]string `json:"clientCodes"`

	// CORSOrigin is the allowed origin for cross-origin requests.
	CORSOrigin string `json:"corsOrigin"`

	// TokenTTLMinutes is the session token lifetime in minutes.
	TokenTTLMinutes int `json:"tokenTTLMinutes"`

	// ShutdownTimeoutSeconds bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeoutSeconds int `json:"shutdownTimeoutSeconds"`

	// LogLevel sets the zap logging level.
	LogLevel string `json:"logLevel"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// clientCodesFlag holds the raw -codes flag value until Parse merges it.
var clientCodesFlag string

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.ConfigDir, "dir", "config", "directory with client profiles and catalogs")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address for the shared revocation store")
	flag.StringVar(&clientCodesFlag, "codes", "", "login codes as code=clientId,code=clientId")
	flag.StringVar(&options.CORSOrigin, "cors-origin", "*", "allowed CORS origin")
	flag.IntVar(&options.TokenTTLMinutes, "token-ttl", 120, "session token lifetime in minutes")
	flag.IntVar(&options.ShutdownTimeoutSeconds, "shutdown-timeout", 15, "graceful shutdown timeout in seconds")
	flag.StringVar(&options.LogLevel, "log-level", "info", "logging level")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. A .env file in the working directory is loaded
// first, if present. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	// Load .env if present; missing file is not an error.
	_ = godotenv.Load()

	flag.Parse()

	if options.ClientCodes == nil {
		options.ClientCodes = make(map[string]string)
	}

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		options.ConfigDir = dir
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if origin := os.Getenv("CORS_ALLOW_ORIGIN"); origin != "" {
		options.CORSOrigin = origin
	}
	if ttl := os.Getenv("TOKEN_TTL_MINUTES"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			options.TokenTTLMinutes = n
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	mergeCodes(options.ClientCodes, clientCodesFlag)
	mergePerClientCodes(options.ClientCodes, os.Environ())
	mergeCodes(options.ClientCodes, os.Getenv("CLIENT_CODES"))

	return options
}

// mergePerClientCodes scans the environment for CLIENT_<ID>_CODE
// variables and merges them into dst. CLIENT_A_CODE=1234 maps login
// code "1234" to client id "clientA". The aggregate CLIENT_CODES list
// is merged after this and wins on conflicts.
func mergePerClientCodes(dst map[string]string, environ []string) {
	for _, kv := range environ {
		key, code, ok := strings.Cut(kv, "=")
		if !ok || code == "" {
			continue
		}
		id, ok := clientIDFromEnvKey(key)
		if !ok {
			continue
		}
		dst[code] = id
	}
}

// clientIDFromEnvKey derives a client id from a CLIENT_<ID>_CODE
// variable name: the middle segments are camel-cased onto the "client"
// prefix, so CLIENT_A_CODE yields "clientA" and CLIENT_ACME_NORTH_CODE
// yields "clientAcmeNorth".
func clientIDFromEnvKey(key string) (string, bool) {
	middle, ok := strings.CutPrefix(key, "CLIENT_")
	if !ok {
		return "", false
	}
	middle, ok = strings.CutSuffix(middle, "_CODE")
	if !ok || middle == "" {
		return "", false
	}
	var b strings.Builder
	b.WriteString("client")
	for _, part := range strings.Split(middle, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String(), true
}

// mergeCodes parses a "code=clientId,code=clientId" list into dst,
// later entries winning. Malformed pairs are skipped.
func mergeCodes(dst map[string]string, raw string) {
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, clientID, ok := strings.Cut(pair, "=")
		if !ok || code == "" || clientID == "" {
			continue
		}
		dst[strings.TrimSpace(code)] = strings.TrimSpace(clientID)
	}
}
