// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

// Package tools declares the MCP tool catalog in front of a Cosmic bucket:
// content objects, media assets, content type schemas and AI generation.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spacemonkeygo/monkit/v3"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
)

var mon = monkit.Package()

const (
	defaultListLimit = 10
	maxListLimit     = 100
	maxDepth         = 3
	maxAITokens      = 100000
)

// Tools is the collection of MCP server tools in front of a Cosmic bucket.
type Tools struct {
	cosmic *cosmic.Client
}

// New creates a new Tools backed by the given client. The client is
// constructed once at process start and shared by every handler.
func New(client *cosmic.Client) *Tools {
	return &Tools{cosmic: client}
}

// Add adds the tools to an MCP server. Registration order is stable so that
// tool listings are reproducible: objects, media, types, AI.
func (t *Tools) Add(mcpServer *server.MCPServer) {
	t.addObjectTools(mcpServer)
	t.addMediaTools(mcpServer)
	t.addObjectTypeTools(mcpServer)
	t.addAITools(mcpServer)
}

// writeAccessError is returned by every write-class tool invoked without a
// write credential, before any backend call is made.
const writeAccessError = "Error: write operations require a write credential (set COSMIC_WRITE_KEY)"

// requireWriteAccess returns a non-nil error result when the client has no
// write key. Mutating handlers call it before touching the network.
func (t *Tools) requireWriteAccess() *mcp.CallToolResult {
	if t.cosmic.CanWrite() {
		return nil
	}
	return mcp.NewToolResultError(writeAccessError)
}

// mcpToolError is a helper function that wraps MCP tool errors.
// This helps bypass nilerr linting checks when returning MCP errors with nil Go errors.
func mcpToolError(message string) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(message), nil
}

// toolErrorf formats the uniform "Error <doing X>: <message>" envelope.
func toolErrorf(action string, err error) (*mcp.CallToolResult, error) {
	return mcpToolError(fmt.Sprintf("Error %s: %s", action, err.Error()))
}

// jsonResult marshals a response payload into a single JSON text block.
func jsonResult(resp any) (*mcp.CallToolResult, error) {
	resultJSON, err := json.Marshal(resp)
	if err != nil {
		return mcpToolError("Error marshaling result: " + err.Error())
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

// parseLimit validates the pagination limit, rejecting out-of-range values
// instead of clamping them.
func parseLimit(request mcp.CallToolRequest) (int, error) {
	limit := mcp.ParseInt(request, "limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d, got %d", maxListLimit, limit)
	}
	return limit, nil
}

// parseSkip validates the pagination offset.
func parseSkip(request mcp.CallToolRequest) (int, error) {
	skip := mcp.ParseInt(request, "skip", 0)
	if skip < 0 {
		return 0, fmt.Errorf("skip must not be negative, got %d", skip)
	}
	return skip, nil
}

// parseProps reads an optional property projection list.
func parseProps(request mcp.CallToolRequest) []string {
	arg := mcp.ParseArgument(request, "props", nil)
	list, ok := arg.([]any)
	if !ok {
		return nil
	}
	var props []string
	for _, v := range list {
		if s, ok := v.(string); ok && s != "" {
			props = append(props, s)
		}
	}
	return props
}

// parseMetadata reads an optional metadata object.
func parseMetadata(request mcp.CallToolRequest, key string) map[string]any {
	if arg := mcp.ParseArgument(request, key, nil); arg != nil {
		if m, ok := arg.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// stringArg distinguishes an explicitly supplied string argument from an
// omitted one, which ParseString alone cannot do. Update handlers use it to
// build sparse patches.
func stringArg(request mcp.CallToolRequest, key string) (string, bool) {
	v, ok := request.GetArguments()[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
