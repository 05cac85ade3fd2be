/*
	A small HTTP/1.1 server written directly on top of TCP sockets.
	One request per connection: read, parse, route, respond, close.

	Routes: "/", "/echo/<text>", "/user-agent" and, when a directory is
	configured, GET and POST on "/files/<name>".
*/

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	directory := flag.String("directory", "", "directory to serve /files from")
	configPath := flag.String("config", "", "optional Key=Value config file")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	config, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	config, err = config.withDocumentRoot(*directory)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid document root")
	}
	logger = logger.Level(config.logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	server := NewServer(config)
	if err := server.ListenAndServe(ctx, listenAddress); err != nil {
		logger.Error().Err(err).Msg("Server failed")
		stop()
		os.Exit(1)
	}
	logger.Info().Msg("Server stopped")
}

// handleConnection serves exactly one request on conn and always closes it.
func handleConnection(ctx context.Context, conn net.Conn, config Config) {
	// Close the connection when the function finishes
	defer conn.Close()

	logger := zerolog.Ctx(ctx).With().Stringer("remote", conn.RemoteAddr()).Logger()
	ctx = logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Handler panicked")
		}
	}()

	// A single read: anything past the buffer is dropped
	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Warn().Err(err).Msg("Error reading from connection")
		} else {
			logger.Debug().Msg("Connection closed before sending a request")
		}
		return
	}

	// 1) Parse the incoming request
	request, err := parseRequest(buf[:n])
	if err != nil {
		logger.Warn().Err(err).Msg("Error parsing request")
		writeResponse(logger, conn, responseBadRequest)
		return
	}

	// 2) Route it
	response := dispatch(ctx, request, config)

	// Access log
	userAgent, _ := request.Header("User-Agent")
	logger.Info().
		Int("status", response.Status()).
		Str("method", request.Method).
		Str("path", request.Path).
		Str("user_agent", userAgent).
		Msg("Served request")

	// 3) Write the response in one go
	writeResponse(logger, conn, response)
}

func writeResponse(logger zerolog.Logger, conn net.Conn, response Response) {
	if _, err := conn.Write(response.Bytes()); err != nil {
		logger.Warn().Err(err).Msg("Error writing response")
	}
}
