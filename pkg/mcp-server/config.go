// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package mcpserver

import (
	"time"

	"github.com/zeebo/errs"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
)

// TransportStdio serves MCP over the process's standard input and output.
const TransportStdio = "stdio"

// TransportHTTP serves MCP over streamable HTTP.
const TransportHTTP = "http"

// Config configures the MCP server.
type Config struct {
	// Transport selects how MCP requests are delivered: stdio or http.
	Transport string

	// Address to serve HTTP requests on, http transport only.
	Address string

	// IdleTimeout is the maximum time to wait for the next request, http
	// transport only.
	IdleTimeout time.Duration

	// ShutdownDelay is the time to delay server shutdown while returning
	// 503s on the health endpoint, http transport only.
	ShutdownDelay time.Duration

	Cosmic cosmic.Config
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return Error.New("unknown transport %q", c.Transport)
	}
	if c.Transport == TransportHTTP && c.Address == "" {
		return Error.New("address is required for the http transport")
	}
	return errs.Wrap(c.Cosmic.Validate())
}
