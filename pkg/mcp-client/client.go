// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

// Package mcpclient is a typed Go client for the Cosmic MCP server's tools,
// speaking MCP over streamable HTTP.
package mcpclient

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zeebo/errs"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
	"github.com/cosmicjs/mcp-server/pkg/mcp-server/tools"
)

// Error is a class of mcp-client errors.
var Error = errs.Class("mcp-client")

// Client is used to interact with the Cosmic MCP tools.
type Client struct {
	c *client.Client
}

// New creates a new Client connected to an MCP server at serverURL.
func New(serverURL string) (*Client, error) {
	transport, err := transport.NewStreamableHTTP(serverURL)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	c := client.NewClient(transport)

	_, err = c.Initialize(context.Background(), mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
		},
	})
	if err != nil {
		return nil, Error.Wrap(err)
	}

	return &Client{c: c}, nil
}

// ListTools returns the server's tool catalog.
func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	result, err := c.c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return result.Tools, nil
}

// ObjectsListRequest is a type of request to list content objects.
type ObjectsListRequest struct {
	Type   string         `json:"type,omitempty"`
	Limit  int            `json:"limit,omitempty"`
	Skip   int            `json:"skip,omitempty"`
	Props  []string       `json:"props,omitempty"`
	Sort   string         `json:"sort,omitempty"`
	Status string         `json:"status,omitempty"`
	Depth  *int           `json:"depth,omitempty"`
	Query  map[string]any `json:"query,omitempty"`
}

// ObjectsList calls the cosmic_objects_list tool.
func (c *Client) ObjectsList(ctx context.Context, req ObjectsListRequest) (*tools.ObjectsListResponse, error) {
	message, err := c.callTool(ctx, tools.ToolObjectsList, req)
	if err != nil {
		return nil, err
	}
	var resp tools.ObjectsListResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// ObjectsGetRequest is a type of request to get a content object.
type ObjectsGetRequest struct {
	ID   string `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
	Type string `json:"type,omitempty"`
}

// ObjectsGet calls the cosmic_objects_get tool.
func (c *Client) ObjectsGet(ctx context.Context, req ObjectsGetRequest) (*tools.ObjectResponse, error) {
	message, err := c.callTool(ctx, tools.ToolObjectsGet, req)
	if err != nil {
		return nil, err
	}
	var resp tools.ObjectResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// ObjectsCreateRequest is a type of request to create a content object.
type ObjectsCreateRequest struct {
	Title    string         `json:"title"`
	Type     string         `json:"type"`
	Slug     string         `json:"slug,omitempty"`
	Status   string         `json:"status,omitempty"`
	Content  string         `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Locale   string         `json:"locale,omitempty"`
}

// ObjectsCreate calls the cosmic_objects_create tool.
func (c *Client) ObjectsCreate(ctx context.Context, req ObjectsCreateRequest) (*tools.ObjectResponse, error) {
	message, err := c.callTool(ctx, tools.ToolObjectsCreate, req)
	if err != nil {
		return nil, err
	}
	var resp tools.ObjectResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// ObjectsUpdateRequest is a type of request to update a content object. Nil
// pointer fields are omitted from the call so the server's sparse patch
// leaves them untouched.
type ObjectsUpdateRequest struct {
	ID       string         `json:"id"`
	Title    *string        `json:"title,omitempty"`
	Slug     *string        `json:"slug,omitempty"`
	Status   *string        `json:"status,omitempty"`
	Content  *string        `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Locale   *string        `json:"locale,omitempty"`
}

// ObjectsUpdate calls the cosmic_objects_update tool.
func (c *Client) ObjectsUpdate(ctx context.Context, req ObjectsUpdateRequest) (*tools.ObjectResponse, error) {
	message, err := c.callTool(ctx, tools.ToolObjectsUpdate, req)
	if err != nil {
		return nil, err
	}
	var resp tools.ObjectResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// ObjectsDeleteRequest is a type of request to delete a content object.
type ObjectsDeleteRequest struct {
	ID             string `json:"id"`
	TriggerWebhook *bool  `json:"trigger_webhook,omitempty"`
}

// ObjectsDelete calls the cosmic_objects_delete tool.
func (c *Client) ObjectsDelete(ctx context.Context, req ObjectsDeleteRequest) (*tools.DeleteResponse, error) {
	message, err := c.callTool(ctx, tools.ToolObjectsDelete, req)
	if err != nil {
		return nil, err
	}
	var resp tools.DeleteResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// MediaListRequest is a type of request to list media assets.
type MediaListRequest struct {
	Folder string         `json:"folder,omitempty"`
	Limit  int            `json:"limit,omitempty"`
	Skip   int            `json:"skip,omitempty"`
	Props  []string       `json:"props,omitempty"`
	Query  map[string]any `json:"query,omitempty"`
}

// MediaList calls the cosmic_media_list tool.
func (c *Client) MediaList(ctx context.Context, req MediaListRequest) (*tools.MediaListResponse, error) {
	message, err := c.callTool(ctx, tools.ToolMediaList, req)
	if err != nil {
		return nil, err
	}
	var resp tools.MediaListResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// MediaGetRequest is a type of request to get a media asset.
type MediaGetRequest struct {
	ID string `json:"id"`
}

// MediaGet calls the cosmic_media_get tool.
func (c *Client) MediaGet(ctx context.Context, req MediaGetRequest) (*tools.MediaResponse, error) {
	message, err := c.callTool(ctx, tools.ToolMediaGet, req)
	if err != nil {
		return nil, err
	}
	var resp tools.MediaResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// MediaUploadRequest is a type of request to upload a media asset.
type MediaUploadRequest struct {
	Media    string         `json:"media"`
	Filename string         `json:"filename,omitempty"`
	Folder   string         `json:"folder,omitempty"`
	AltText  string         `json:"alt_text,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MediaUpload calls the cosmic_media_upload tool.
func (c *Client) MediaUpload(ctx context.Context, req MediaUploadRequest) (*tools.MediaResponse, error) {
	message, err := c.callTool(ctx, tools.ToolMediaUpload, req)
	if err != nil {
		return nil, err
	}
	var resp tools.MediaResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// MediaDeleteRequest is a type of request to delete a media asset.
type MediaDeleteRequest struct {
	ID             string `json:"id"`
	TriggerWebhook *bool  `json:"trigger_webhook,omitempty"`
}

// MediaDelete calls the cosmic_media_delete tool.
func (c *Client) MediaDelete(ctx context.Context, req MediaDeleteRequest) (*tools.DeleteResponse, error) {
	message, err := c.callTool(ctx, tools.ToolMediaDelete, req)
	if err != nil {
		return nil, err
	}
	var resp tools.DeleteResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// TypesList calls the cosmic_types_list tool.
func (c *Client) TypesList(ctx context.Context) (*tools.TypesListResponse, error) {
	message, err := c.callTool(ctx, tools.ToolTypesList, struct{}{})
	if err != nil {
		return nil, err
	}
	var resp tools.TypesListResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// TypesGetRequest is a type of request to get a content type.
type TypesGetRequest struct {
	Slug string `json:"slug"`
}

// TypesGet calls the cosmic_types_get tool.
func (c *Client) TypesGet(ctx context.Context, req TypesGetRequest) (*tools.TypeResponse, error) {
	message, err := c.callTool(ctx, tools.ToolTypesGet, req)
	if err != nil {
		return nil, err
	}
	var resp tools.TypeResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// TypesCreateRequest is a type of request to create a content type.
type TypesCreateRequest struct {
	Title      string             `json:"title"`
	Slug       string             `json:"slug,omitempty"`
	Singular   string             `json:"singular,omitempty"`
	Emoji      string             `json:"emoji,omitempty"`
	Metafields []cosmic.Metafield `json:"metafields,omitempty"`
	Options    map[string]any     `json:"options,omitempty"`
}

// TypesCreate calls the cosmic_types_create tool.
func (c *Client) TypesCreate(ctx context.Context, req TypesCreateRequest) (*tools.TypeResponse, error) {
	message, err := c.callTool(ctx, tools.ToolTypesCreate, req)
	if err != nil {
		return nil, err
	}
	var resp tools.TypeResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// TypesUpdateRequest is a type of request to update a content type.
type TypesUpdateRequest struct {
	Slug       string             `json:"slug"`
	Title      *string            `json:"title,omitempty"`
	Singular   *string            `json:"singular,omitempty"`
	Emoji      *string            `json:"emoji,omitempty"`
	Metafields []cosmic.Metafield `json:"metafields,omitempty"`
	Options    map[string]any     `json:"options,omitempty"`
}

// TypesUpdate calls the cosmic_types_update tool.
func (c *Client) TypesUpdate(ctx context.Context, req TypesUpdateRequest) (*tools.TypeResponse, error) {
	message, err := c.callTool(ctx, tools.ToolTypesUpdate, req)
	if err != nil {
		return nil, err
	}
	var resp tools.TypeResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// TypesDeleteRequest is a type of request to delete a content type.
type TypesDeleteRequest struct {
	Slug string `json:"slug"`
}

// TypesDelete calls the cosmic_types_delete tool.
func (c *Client) TypesDelete(ctx context.Context, req TypesDeleteRequest) (*tools.DeleteResponse, error) {
	message, err := c.callTool(ctx, tools.ToolTypesDelete, req)
	if err != nil {
		return nil, err
	}
	var resp tools.DeleteResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// GenerateTextRequest is a type of request to generate text.
type GenerateTextRequest struct {
	Prompt    string `json:"prompt"`
	Model     string `json:"model,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// GenerateText calls the cosmic_ai_generate_text tool.
func (c *Client) GenerateText(ctx context.Context, req GenerateTextRequest) (*tools.GenerateTextResponse, error) {
	message, err := c.callTool(ctx, tools.ToolAIGenerateText, req)
	if err != nil {
		return nil, err
	}
	var resp tools.GenerateTextResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// GenerateImageRequest is a type of request to generate an image.
type GenerateImageRequest struct {
	Prompt   string         `json:"prompt"`
	Model    string         `json:"model,omitempty"`
	Folder   string         `json:"folder,omitempty"`
	AltText  bool           `json:"alt_text,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GenerateImage calls the cosmic_ai_generate_image tool.
func (c *Client) GenerateImage(ctx context.Context, req GenerateImageRequest) (*tools.GenerateImageResponse, error) {
	message, err := c.callTool(ctx, tools.ToolAIGenerateImage, req)
	if err != nil {
		return nil, err
	}
	var resp tools.GenerateImageResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// GenerateVideoRequest is a type of request to generate a video.
type GenerateVideoRequest struct {
	Prompt     string         `json:"prompt"`
	Model      string         `json:"model,omitempty"`
	Duration   string         `json:"duration,omitempty"`
	Resolution string         `json:"resolution,omitempty"`
	Folder     string         `json:"folder,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// GenerateVideo calls the cosmic_ai_generate_video tool.
func (c *Client) GenerateVideo(ctx context.Context, req GenerateVideoRequest) (*tools.GenerateVideoResponse, error) {
	message, err := c.callTool(ctx, tools.ToolAIGenerateVideo, req)
	if err != nil {
		return nil, err
	}
	var resp tools.GenerateVideoResponse
	if err := json.Unmarshal([]byte(message), &resp); err != nil {
		return nil, Error.New("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

func (c *Client) callTool(ctx context.Context, name string, req any) (string, error) {
	args := make(map[string]any)
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", Error.Wrap(err)
	}
	if err := json.Unmarshal(jsonData, &args); err != nil {
		return "", Error.Wrap(err)
	}

	r, err := c.c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	if err != nil {
		return "", Error.Wrap(err)
	}

	var message string
	if len(r.Content) > 0 {
		if text, ok := r.Content[0].(mcp.TextContent); ok {
			message = text.Text
		}
	}

	if r.IsError {
		return "", Error.New("tool call failed: %s", message)
	}

	return message, nil
}
