// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
)

const (
	// ToolTypesList is the name of a tool for listing content types.
	ToolTypesList = "cosmic_types_list"

	// ToolTypesGet is the name of a tool for getting a content type by slug.
	ToolTypesGet = "cosmic_types_get"

	// ToolTypesCreate is the name of a tool for creating a content type.
	ToolTypesCreate = "cosmic_types_create"

	// ToolTypesUpdate is the name of a tool for updating a content type.
	ToolTypesUpdate = "cosmic_types_update"

	// ToolTypesDelete is the name of a tool for deleting a content type.
	ToolTypesDelete = "cosmic_types_delete"
)

func (t *Tools) addObjectTypeTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool(ToolTypesList,
		mcp.WithDescription("List all content type schemas in the bucket."),
	), t.TypesList)

	mcpServer.AddTool(mcp.NewTool(ToolTypesGet,
		mcp.WithDescription("Get a single content type schema by slug."),
		mcp.WithString("slug", mcp.Description("Content type slug"), mcp.Required()),
	), t.TypesGet)

	mcpServer.AddTool(mcp.NewTool(ToolTypesCreate,
		mcp.WithDescription("Create a new content type schema. Metafields may nest arbitrarily through parent and repeater fields. Requires a write key."),
		mcp.WithString("title", mcp.Description("Content type title"), mcp.Required()),
		mcp.WithString("slug", mcp.Description("Content type slug (generated from the title when omitted)")),
		mcp.WithString("singular", mcp.Description("Singular form of the title")),
		mcp.WithString("emoji", mcp.Description("Emoji shown next to the type in the dashboard")),
		mcp.WithArray("metafields", mcp.Description("Metafield definitions: {type, key, title, required?, value?, options?, children?}")),
		mcp.WithObject("options", mcp.Description("Editor option flags: {slug_field, content_editor}")),
	), t.TypesCreate)

	mcpServer.AddTool(mcp.NewTool(ToolTypesUpdate,
		mcp.WithDescription("Update a content type schema. Only supplied fields are changed. Requires a write key."),
		mcp.WithString("slug", mcp.Description("Content type slug"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("singular", mcp.Description("New singular form")),
		mcp.WithString("emoji", mcp.Description("New emoji")),
		mcp.WithArray("metafields", mcp.Description("Replacement metafield definitions")),
		mcp.WithObject("options", mcp.Description("Editor option flags to set")),
	), t.TypesUpdate)

	mcpServer.AddTool(mcp.NewTool(ToolTypesDelete,
		mcp.WithDescription("Delete a content type schema by slug. The API cascades the delete to all objects of that type. Requires a write key."),
		mcp.WithString("slug", mcp.Description("Content type slug"), mcp.Required()),
	), t.TypesDelete)
}

// TypesList implements the cosmic_types_list MCP tool.
func (t *Tools) TypesList(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	objectTypes, err := t.cosmic.ObjectTypes().Find(ctx)
	if err != nil {
		return toolErrorf("listing types", err)
	}

	return jsonResult(&TypesListResponse{
		ObjectTypes: objectTypes,
		Count:       len(objectTypes),
	})
}

// TypesGet implements the cosmic_types_get MCP tool.
func (t *Tools) TypesGet(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	slug := mcp.ParseString(request, "slug", "")
	if slug == "" {
		return mcpToolError("Error getting type: slug is required")
	}

	objectType, err := t.cosmic.ObjectTypes().FindOne(ctx, slug)
	if err != nil {
		return toolErrorf("getting type", err)
	}

	return jsonResult(&TypeResponse{ObjectType: objectType})
}

// TypesCreate implements the cosmic_types_create MCP tool.
func (t *Tools) TypesCreate(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	title := mcp.ParseString(request, "title", "")
	if title == "" {
		return mcpToolError("Error creating type: title is required")
	}

	metafields, err := parseMetafields(request)
	if err != nil {
		return toolErrorf("creating type", err)
	}

	objectType := cosmic.ObjectType{
		Title:      title,
		Slug:       mcp.ParseString(request, "slug", ""),
		Singular:   mcp.ParseString(request, "singular", ""),
		Emoji:      mcp.ParseString(request, "emoji", ""),
		Metafields: metafields,
		Options:    parseTypeOptions(request),
	}

	created, err := t.cosmic.ObjectTypes().InsertOne(ctx, objectType)
	if err != nil {
		return toolErrorf("creating type", err)
	}

	return jsonResult(&TypeResponse{
		Summary:    fmt.Sprintf("Created content type '%s'", created.Title),
		ObjectType: created,
	})
}

// TypesUpdate implements the cosmic_types_update MCP tool. Like object
// updates, the patch carries only explicitly supplied fields.
func (t *Tools) TypesUpdate(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	slug := mcp.ParseString(request, "slug", "")
	if slug == "" {
		return mcpToolError("Error updating type: slug is required")
	}

	patch := make(map[string]any)
	for _, key := range []string{"title", "singular", "emoji"} {
		if v, ok := stringArg(request, key); ok {
			patch[key] = v
		}
	}
	if arg := mcp.ParseArgument(request, "metafields", nil); arg != nil {
		metafields, err := parseMetafields(request)
		if err != nil {
			return toolErrorf("updating type", err)
		}
		patch["metafields"] = metafields
	}
	// Option flags get the same sparse treatment: only flags present in the
	// argument enter the patch, so an update never resets the other flag to
	// its default.
	if arg := parseMetadata(request, "options"); arg != nil {
		options := make(map[string]any)
		for _, key := range []string{"slug_field", "content_editor"} {
			if v, ok := arg[key].(bool); ok {
				options[key] = v
			}
		}
		if len(options) > 0 {
			patch["options"] = options
		}
	}
	if len(patch) == 0 {
		return mcpToolError("Error updating type: no fields to update")
	}

	updated, err := t.cosmic.ObjectTypes().UpdateOne(ctx, slug, patch)
	if err != nil {
		return toolErrorf("updating type", err)
	}

	return jsonResult(&TypeResponse{
		Summary:    fmt.Sprintf("Updated content type '%s'", updated.Title),
		ObjectType: updated,
	})
}

// TypesDelete implements the cosmic_types_delete MCP tool.
func (t *Tools) TypesDelete(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	slug := mcp.ParseString(request, "slug", "")
	if slug == "" {
		return mcpToolError("Error deleting type: slug is required")
	}

	if err := t.cosmic.ObjectTypes().DeleteOne(ctx, slug); err != nil {
		return toolErrorf("deleting type", err)
	}

	return jsonResult(&DeleteResponse{
		ID:     slug,
		Status: "deleted",
	})
}

// parseMetafields decodes and validates the metafields argument. The tree is
// validated locally so schema mistakes surface before any backend call.
func parseMetafields(request mcp.CallToolRequest) ([]cosmic.Metafield, error) {
	arg := mcp.ParseArgument(request, "metafields", nil)
	if arg == nil {
		return nil, nil
	}

	raw, err := json.Marshal(arg)
	if err != nil {
		return nil, err
	}
	var metafields []cosmic.Metafield
	if err := json.Unmarshal(raw, &metafields); err != nil {
		return nil, fmt.Errorf("invalid metafields: %w", err)
	}
	if err := cosmic.ValidateMetafields(metafields); err != nil {
		return nil, err
	}
	return metafields, nil
}

func parseTypeOptions(request mcp.CallToolRequest) cosmic.TypeOptions {
	options := cosmic.TypeOptions{SlugField: true, ContentEditor: true}
	arg := parseMetadata(request, "options")
	if arg == nil {
		return options
	}
	if v, ok := arg["slug_field"].(bool); ok {
		options.SlugField = v
	}
	if v, ok := arg["content_editor"].(bool); ok {
		options.ContentEditor = v
	}
	return options
}
