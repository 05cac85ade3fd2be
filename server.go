package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

const maxAcceptDelay = 1 * time.Second

// Server accepts connections and runs one handler goroutine per connection.
type Server struct {
	config Config

	// slots bounds the number of live handlers; nil means unbounded.
	slots *semaphore.Weighted

	handlers sync.WaitGroup

	mu          sync.Mutex
	activeConns map[net.Conn]struct{}
}

func NewServer(config Config) *Server {
	s := &Server{
		config:      config,
		activeConns: make(map[net.Conn]struct{}),
	}
	if config.maxConnections > 0 {
		s.slots = semaphore.NewWeighted(int64(config.maxConnections))
	}
	return s
}

// ListenAndServe binds address and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("address", ln.Addr().String()).
		Str("root", s.config.documentRoot).
		Int("max_connections", s.config.maxConnections).
		Msg("Server is up")

	return s.Serve(ctx, ln)
}

// Serve accepts on ln until ctx is cancelled, then closes ln and drains the
// handlers still running. It returns nil after a cancellation and the
// accept error if ln fails on its own.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := zerolog.Ctx(ctx)

	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()
	defer ln.Close()

	// Handlers outlive the accept loop while draining
	handlerCtx := context.WithoutCancel(ctx)

	var acceptErr error
	var tempDelay time.Duration
	for {
		if !s.acquire(ctx) {
			break
		}

		conn, err := ln.Accept()
		if err != nil {
			s.release()
			if ctx.Err() != nil {
				break
			}
			if errors.Is(err, net.ErrClosed) {
				acceptErr = err
				break
			}

			// Back off on consecutive accept errors, 5ms doubling up to 1s
			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else {
				tempDelay *= 2
			}
			if tempDelay > maxAcceptDelay {
				tempDelay = maxAcceptDelay
			}
			logger.Warn().Err(err).Dur("retry_in", tempDelay).Msg("Error accepting connection")
			select {
			case <-ctx.Done():
			case <-time.After(tempDelay):
			}
			continue
		}
		tempDelay = 0

		s.trackConn(conn, true)
		s.handlers.Add(1)
		go func() {
			defer s.handlers.Done()
			defer s.release()
			defer s.trackConn(conn, false)
			handleConnection(handlerCtx, conn, s.config)
		}()
	}

	logger.Info().Msg("Server is shutting down")
	s.drain(logger)
	return acceptErr
}

func (s *Server) acquire(ctx context.Context) bool {
	if s.slots == nil {
		return ctx.Err() == nil
	}
	return s.slots.Acquire(ctx, 1) == nil
}

func (s *Server) release() {
	if s.slots != nil {
		s.slots.Release(1)
	}
}

func (s *Server) trackConn(conn net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.activeConns[conn] = struct{}{}
	} else {
		delete(s.activeConns, conn)
	}
}

// drain waits for in-flight handlers up to the shutdown timeout and then
// closes whatever connections remain.
func (s *Server) drain(logger *zerolog.Logger) {
	done := make(chan struct{})
	go func() {
		s.handlers.Wait()
		close(done)
	}()

	timer := time.NewTimer(s.config.shutdownTimeout)
	defer timer.Stop()

	select {
	case <-done:
		logger.Info().Msg("All connections closed")
		return
	case <-timer.C:
	}

	s.mu.Lock()
	logger.Warn().Int("connections", len(s.activeConns)).Msg("Shutdown timeout, forcing close")
	for conn := range s.activeConns {
		conn.Close()
	}
	s.mu.Unlock()

	<-done
}
