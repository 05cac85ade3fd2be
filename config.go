package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	listenAddress          = "localhost:4221"
	readBufferSize         = 4096
	defaultShutdownTimeout = 5 * time.Second
)

// Config is built once at startup and passed by value to every handler.
type Config struct {
	documentRoot    string // empty disables the /files routes
	maxConnections  int    // 0 means no bound
	shutdownTimeout time.Duration
	logLevel        zerolog.Level
}

func defaultConfig() Config {
	return Config{
		shutdownTimeout: defaultShutdownTimeout,
		logLevel:        zerolog.InfoLevel,
	}
}

// loadConfig reads a Key=Value file on top of the defaults. An empty path
// yields the defaults.
func loadConfig(configPath string) (Config, error) {
	c := defaultConfig()
	if configPath == "" {
		return c, nil
	}

	fileContent, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := c.parse(string(fileContent)); err != nil {
		return Config{}, fmt.Errorf("%s: %w", configPath, err)
	}
	return c, nil
}

func (c *Config) parse(content string) error {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("line %d: invalid config line: %s", i+1, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "DocumentRoot":
			c.documentRoot = value
		case "MaxConnections":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("line %d: invalid max connections: %s", i+1, value)
			}
			c.maxConnections = n
		case "ShutdownTimeout":
			seconds, err := strconv.Atoi(value)
			if err != nil || seconds < 0 {
				return fmt.Errorf("line %d: invalid shutdown timeout: %s", i+1, value)
			}
			c.shutdownTimeout = time.Duration(seconds) * time.Second
		case "LogLevel":
			level, err := zerolog.ParseLevel(value)
			if err != nil {
				return fmt.Errorf("line %d: invalid log level: %w", i+1, err)
			}
			c.logLevel = level
		default:
			return fmt.Errorf("line %d: invalid config key: %s", i+1, key)
		}
	}
	return nil
}

// withDocumentRoot overrides the document root; an empty root keeps the
// current one. The resulting root must be an existing directory.
func (c Config) withDocumentRoot(root string) (Config, error) {
	if root != "" {
		c.documentRoot = root
	}
	if c.documentRoot == "" {
		return c, nil
	}

	fileInfo, err := os.Stat(c.documentRoot)
	if err != nil {
		return Config{}, fmt.Errorf("document root: %w", err)
	}
	if !fileInfo.IsDir() {
		return Config{}, fmt.Errorf("document root %s is not a directory", c.documentRoot)
	}
	return c, nil
}
