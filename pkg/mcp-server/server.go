// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

// Package mcpserver wires the Cosmic tool catalog into an MCP server and runs
// it over stdio or streamable HTTP.
package mcpserver

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
	"github.com/cosmicjs/mcp-server/pkg/mcp-server/middleware"
	"github.com/cosmicjs/mcp-server/pkg/mcp-server/tools"
)

// Error is a class of mcp-server errors.
var Error = errs.Class("mcp-server")

// Name identifies the server in the MCP initialize handshake.
const Name = "cosmic-mcp-server"

// Version is set at build time via ldflags.
var Version = "dev"

const instructions = `Tools for working with a Cosmic CMS bucket: list, get,
create, update and delete content objects, media assets and content type
schemas, and generate text, images and videos with the bucket's AI service.
Write tools need the server to be configured with a write key.`

// Peer represents an MCP server in front of a Cosmic bucket.
type Peer struct {
	log       *zap.Logger
	config    Config
	mcpServer *server.MCPServer
	listener  net.Listener

	inShutdown int32
}

// New returns a new instance of an MCP server. The Cosmic client is
// constructed by the caller once at process start and shared by all tools.
// For the http transport the listener is bound here so that Address reports
// the effective port before Run is called.
func New(log *zap.Logger, client *cosmic.Client, config Config) (*Peer, error) {
	mcpServer := server.NewMCPServer(Name, Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	tools.New(client).Add(mcpServer)

	peer := &Peer{
		log:       log,
		config:    config,
		mcpServer: mcpServer,
	}

	if config.Transport == TransportHTTP {
		listener, err := net.Listen("tcp", config.Address)
		if err != nil {
			return nil, Error.Wrap(err)
		}
		peer.listener = listener
	}

	return peer, nil
}

// Address returns the address the peer is listening on, http transport only.
func (s *Peer) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run starts the MCP server on the configured transport and blocks until the
// context is canceled or the transport fails.
func (s *Peer) Run(ctx context.Context) error {
	switch s.config.Transport {
	case TransportHTTP:
		return s.runHTTP(ctx)
	default:
		return s.runStdio(ctx)
	}
}

func (s *Peer) runStdio(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcpServer)
	stdioServer.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	err := stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return Error.Wrap(err)
}

func (s *Peer) runHTTP(ctx context.Context) error {
	r := mux.NewRouter()

	streamable := server.NewStreamableHTTPServer(s.mcpServer)

	mcpRouter := r.PathPrefix("/mcp").Subrouter()
	mcpRouter.Use(middleware.NewLogRequests(s.log))
	mcpRouter.Use(middleware.NewLogResponses(s.log))
	mcpRouter.PathPrefix("").Handler(streamable)

	r.HandleFunc("/health", s.healthCheck)

	httpServer := &http.Server{
		Handler:     cors.Default().Handler(r),
		IdleTimeout: s.config.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(s.listener)
	}()

	s.log.Info("MCP server listening", zap.String("address", s.Address()))

	select {
	case err := <-serveErr:
		return Error.Wrap(err)
	case <-ctx.Done():
		atomic.StoreInt32(&s.inShutdown, 1)
		if s.config.ShutdownDelay > 0 {
			s.log.Info("Waiting before server shutdown", zap.Duration("Delay", s.config.ShutdownDelay))
			time.Sleep(s.config.ShutdownDelay)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return Error.Wrap(httpServer.Shutdown(shutdownCtx))
	}
}

func (s *Peer) healthCheck(w http.ResponseWriter, r *http.Request) {
	if atomic.LoadInt32(&s.inShutdown) != 0 {
		http.Error(w, "down", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
