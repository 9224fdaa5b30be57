// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
)

const (
	// ToolMediaList is the name of a tool for listing media assets.
	ToolMediaList = "cosmic_media_list"

	// ToolMediaGet is the name of a tool for getting a media asset by id.
	ToolMediaGet = "cosmic_media_get"

	// ToolMediaUpload is the name of a tool for uploading a media asset.
	ToolMediaUpload = "cosmic_media_upload"

	// ToolMediaDelete is the name of a tool for deleting a media asset.
	ToolMediaDelete = "cosmic_media_delete"
)

// dataURIRe matches the inline media form data:<mime>;base64,<data>.
var dataURIRe = regexp.MustCompile(`^data:([^;,]+);base64,(.+)$`)

func (t *Tools) addMediaTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool(ToolMediaList,
		mcp.WithDescription("List media assets in the bucket with pagination, optional folder filtering and property projection."),
		mcp.WithString("folder", mcp.Description("Filter assets by folder")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of assets to return"), mcp.Min(1), mcp.Max(maxListLimit), mcp.DefaultNumber(defaultListLimit)),
		mcp.WithNumber("skip", mcp.Description("Number of assets to skip"), mcp.Min(0), mcp.DefaultNumber(0)),
		mcp.WithArray("props", mcp.Description("Media properties to include in the response")),
		mcp.WithObject("query", mcp.Description("Free-form query object merged with the folder filter")),
	), t.MediaList)

	mcpServer.AddTool(mcp.NewTool(ToolMediaGet,
		mcp.WithDescription("Get a single media asset by id."),
		mcp.WithString("id", mcp.Description("Media id"), mcp.Required()),
	), t.MediaGet)

	mcpServer.AddTool(mcp.NewTool(ToolMediaUpload,
		mcp.WithDescription("Upload a media asset, either from a remote URL or as an inline data URI (data:<mime>;base64,<data>). Requires a write key."),
		mcp.WithString("media", mcp.Description("Remote URL or data URI of the asset"), mcp.Required()),
		mcp.WithString("filename", mcp.Description("Filename for inline uploads")),
		mcp.WithString("folder", mcp.Description("Folder to place the asset in")),
		mcp.WithString("alt_text", mcp.Description("Alt text for the asset")),
		mcp.WithObject("metadata", mcp.Description("Metadata as key-value pairs")),
	), t.MediaUpload)

	mcpServer.AddTool(mcp.NewTool(ToolMediaDelete,
		mcp.WithDescription("Delete a media asset by id. Requires a write key."),
		mcp.WithString("id", mcp.Description("Media id"), mcp.Required()),
		mcp.WithBoolean("trigger_webhook", mcp.Description("Fire configured webhooks for this delete"), mcp.DefaultBool(true)),
	), t.MediaDelete)
}

// MediaList implements the cosmic_media_list MCP tool.
func (t *Tools) MediaList(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	limit, err := parseLimit(request)
	if err != nil {
		return toolErrorf("listing media", err)
	}
	skip, err := parseSkip(request)
	if err != nil {
		return toolErrorf("listing media", err)
	}

	filter := parseMetadata(request, "query")
	if folder := mcp.ParseString(request, "folder", ""); folder != "" {
		if filter == nil {
			filter = make(map[string]any)
		}
		filter["folder"] = folder
	}

	query := t.cosmic.Media().Find(filter).Limit(limit).Skip(skip)
	if props := parseProps(request); len(props) > 0 {
		query = query.Props(props...)
	}

	page, err := query.Do(ctx)
	if err != nil {
		return toolErrorf("listing media", err)
	}

	return jsonResult(&MediaListResponse{
		Media: page.Media,
		Count: len(page.Media),
		Total: page.Total,
		Limit: limit,
		Skip:  skip,
	})
}

// MediaGet implements the cosmic_media_get MCP tool.
func (t *Tools) MediaGet(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	id := mcp.ParseString(request, "id", "")
	if id == "" {
		return mcpToolError("Error getting media: id is required")
	}

	media, err := t.cosmic.Media().FindOne(ctx, id)
	if err != nil {
		return toolErrorf("getting media", err)
	}

	return jsonResult(&MediaResponse{Media: media})
}

// MediaUpload implements the cosmic_media_upload MCP tool. The media argument
// is either a remote URL, passed through to the API as-is, or an inline data
// URI whose payload is decoded to raw bytes before transmission.
func (t *Tools) MediaUpload(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	mediaArg := mcp.ParseString(request, "media", "")
	if mediaArg == "" {
		return mcpToolError("Error uploading media: media is required")
	}

	upload := cosmic.MediaUpload{
		Filename: mcp.ParseString(request, "filename", ""),
		Folder:   mcp.ParseString(request, "folder", ""),
		AltText:  mcp.ParseString(request, "alt_text", ""),
		Metadata: parseMetadata(request, "metadata"),
	}

	if strings.HasPrefix(mediaArg, "data:") {
		match := dataURIRe.FindStringSubmatch(mediaArg)
		if match == nil {
			return mcpToolError("Error uploading media: invalid data URI format, expected data:<mime>;base64,<data>")
		}
		data, err := base64.StdEncoding.DecodeString(match[2])
		if err != nil {
			return toolErrorf("uploading media", fmt.Errorf("invalid base64 payload: %w", err))
		}
		upload.ContentType = match[1]
		upload.Data = data
	} else {
		// Anything not carrying the data: prefix is treated as a remote URL;
		// URL well-formedness is left to the API.
		upload.URL = mediaArg
	}

	media, err := t.cosmic.Media().InsertOne(ctx, upload)
	if err != nil {
		return toolErrorf("uploading media", err)
	}

	return jsonResult(&MediaResponse{
		Summary: fmt.Sprintf("Uploaded media '%s' (%d bytes)", media.Name, media.Size),
		Media:   media,
	})
}

// MediaDelete implements the cosmic_media_delete MCP tool.
func (t *Tools) MediaDelete(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	id := mcp.ParseString(request, "id", "")
	if id == "" {
		return mcpToolError("Error deleting media: id is required")
	}
	triggerWebhook := mcp.ParseBoolean(request, "trigger_webhook", true)

	if err := t.cosmic.Media().DeleteOne(ctx, id, triggerWebhook); err != nil {
		return toolErrorf("deleting media", err)
	}

	return jsonResult(&DeleteResponse{
		ID:     id,
		Status: "deleted",
	})
}
