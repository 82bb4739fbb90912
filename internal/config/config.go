// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the Postgres connection string. When empty, the
	// service keeps credentials in memory.
	DatabaseDSN string

	// StaticDir is the directory served for non-API paths.
	StaticDir string

	// SessionTTLHours is the fixed session lifetime in hours.
	SessionTTLHours int

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:5500", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address (empty for in-memory)")
	flag.StringVar(&options.StaticDir, "s", "public", "static assets directory")
	flag.IntVar(&options.SessionTTLHours, "ttl", 24, "session lifetime in hours")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

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
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if staticDir := os.Getenv("STATIC_DIR"); staticDir != "" {
		options.StaticDir = staticDir
	}
	if ttl := os.Getenv("SESSION_TTL_HOURS"); ttl != "" {
		if v, err := strconv.Atoi(ttl); err == nil {
			options.SessionTTLHours = v
		}
	}

	return options
}
