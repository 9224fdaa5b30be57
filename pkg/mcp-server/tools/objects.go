// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
)

const (
	// ToolObjectsList is the name of a tool for listing content objects.
	ToolObjectsList = "cosmic_objects_list"

	// ToolObjectsGet is the name of a tool for getting a content object by id or slug.
	ToolObjectsGet = "cosmic_objects_get"

	// ToolObjectsCreate is the name of a tool for creating a content object.
	ToolObjectsCreate = "cosmic_objects_create"

	// ToolObjectsUpdate is the name of a tool for updating a content object.
	ToolObjectsUpdate = "cosmic_objects_update"

	// ToolObjectsDelete is the name of a tool for deleting a content object.
	ToolObjectsDelete = "cosmic_objects_delete"
)

func (t *Tools) addObjectTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool(ToolObjectsList,
		mcp.WithDescription("List content objects in the bucket with pagination, optional filtering by type, property projection, sorting and relationship expansion."),
		mcp.WithString("type", mcp.Description("Filter objects by content type slug")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of objects to return"), mcp.Min(1), mcp.Max(maxListLimit), mcp.DefaultNumber(defaultListLimit)),
		mcp.WithNumber("skip", mcp.Description("Number of objects to skip"), mcp.Min(0), mcp.DefaultNumber(0)),
		mcp.WithArray("props", mcp.Description("Object properties to include in the response (e.g. ['id','slug','title'])")),
		mcp.WithString("sort", mcp.Description("Sort key (e.g. 'created_at', '-created_at', 'title')")),
		mcp.WithString("status", mcp.Description("Publication status filter"), mcp.Enum("published", "draft", "any"), mcp.DefaultString("published")),
		mcp.WithNumber("depth", mcp.Description("Relationship expansion depth"), mcp.Min(0), mcp.Max(maxDepth)),
		mcp.WithObject("query", mcp.Description("Free-form query object merged with the type filter")),
	), t.ObjectsList)

	mcpServer.AddTool(mcp.NewTool(ToolObjectsGet,
		mcp.WithDescription("Get a single content object by id, or by slug and type. Slug lookups require the type since slugs are only unique within a type."),
		mcp.WithString("id", mcp.Description("Object id")),
		mcp.WithString("slug", mcp.Description("Object slug (requires type)")),
		mcp.WithString("type", mcp.Description("Content type slug, mandatory when looking up by slug")),
	), t.ObjectsGet)

	mcpServer.AddTool(mcp.NewTool(ToolObjectsCreate,
		mcp.WithDescription("Create a new content object. Requires a write key."),
		mcp.WithString("title", mcp.Description("Object title"), mcp.Required()),
		mcp.WithString("type", mcp.Description("Content type slug"), mcp.Required()),
		mcp.WithString("slug", mcp.Description("Object slug (generated from the title when omitted)")),
		mcp.WithString("status", mcp.Description("Publication status"), mcp.Enum("published", "draft"), mcp.DefaultString("published")),
		mcp.WithString("content", mcp.Description("Body content (HTML or Markdown)")),
		mcp.WithObject("metadata", mcp.Description("Metafield values as key-value pairs")),
		mcp.WithString("locale", mcp.Description("Locale code for localized buckets")),
	), t.ObjectsCreate)

	mcpServer.AddTool(mcp.NewTool(ToolObjectsUpdate,
		mcp.WithDescription("Update a content object. Only supplied fields are changed; omitted fields are left untouched. Requires a write key."),
		mcp.WithString("id", mcp.Description("Object id"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("slug", mcp.Description("New slug")),
		mcp.WithString("status", mcp.Description("New publication status"), mcp.Enum("published", "draft")),
		mcp.WithString("content", mcp.Description("New body content")),
		mcp.WithObject("metadata", mcp.Description("Metafield values to set")),
		mcp.WithString("locale", mcp.Description("New locale code")),
	), t.ObjectsUpdate)

	mcpServer.AddTool(mcp.NewTool(ToolObjectsDelete,
		mcp.WithDescription("Delete a content object by id. Requires a write key."),
		mcp.WithString("id", mcp.Description("Object id"), mcp.Required()),
		mcp.WithBoolean("trigger_webhook", mcp.Description("Fire configured webhooks for this delete"), mcp.DefaultBool(true)),
	), t.ObjectsDelete)
}

// ObjectsList implements the cosmic_objects_list MCP tool.
func (t *Tools) ObjectsList(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	limit, err := parseLimit(request)
	if err != nil {
		return toolErrorf("listing objects", err)
	}
	skip, err := parseSkip(request)
	if err != nil {
		return toolErrorf("listing objects", err)
	}

	status := mcp.ParseString(request, "status", "")
	if status != "" && status != "published" && status != "draft" && status != "any" {
		return toolErrorf("listing objects", fmt.Errorf("status must be published, draft or any, got %q", status))
	}

	filter := parseMetadata(request, "query")
	if typeSlug := mcp.ParseString(request, "type", ""); typeSlug != "" {
		if filter == nil {
			filter = make(map[string]any)
		}
		filter["type"] = typeSlug
	}

	query := t.cosmic.Objects().Find(filter).Limit(limit).Skip(skip)
	if props := parseProps(request); len(props) > 0 {
		query = query.Props(props...)
	}
	if sort := mcp.ParseString(request, "sort", ""); sort != "" {
		query = query.Sort(sort)
	}
	if status != "" {
		query = query.Status(status)
	}
	if depthArg := mcp.ParseArgument(request, "depth", nil); depthArg != nil {
		depth := mcp.ParseInt(request, "depth", 0)
		if depth < 0 || depth > maxDepth {
			return toolErrorf("listing objects", fmt.Errorf("depth must be between 0 and %d, got %d", maxDepth, depth))
		}
		query = query.Depth(depth)
	}

	page, err := query.Do(ctx)
	if err != nil {
		return toolErrorf("listing objects", err)
	}

	return jsonResult(&ObjectsListResponse{
		Objects: page.Objects,
		Count:   len(page.Objects),
		Total:   page.Total,
		Limit:   limit,
		Skip:    skip,
	})
}

// ObjectsGet implements the cosmic_objects_get MCP tool.
func (t *Tools) ObjectsGet(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	id := mcp.ParseString(request, "id", "")
	slug := mcp.ParseString(request, "slug", "")
	typeSlug := mcp.ParseString(request, "type", "")

	if id == "" && slug == "" {
		return mcpToolError("Error getting object: either id or slug is required")
	}
	if id != "" && slug != "" {
		return mcpToolError("Error getting object: id and slug are mutually exclusive")
	}
	if slug != "" && typeSlug == "" {
		return mcpToolError("Error getting object: type is required when looking up by slug")
	}

	var object cosmic.Object
	if id != "" {
		object, err = t.cosmic.Objects().FindOne(ctx, id)
	} else {
		object, err = t.cosmic.Objects().FindOneBySlug(ctx, typeSlug, slug)
	}
	if err != nil {
		return toolErrorf("getting object", err)
	}

	return jsonResult(&ObjectResponse{Object: object})
}

// ObjectsCreate implements the cosmic_objects_create MCP tool.
func (t *Tools) ObjectsCreate(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	title := mcp.ParseString(request, "title", "")
	typeSlug := mcp.ParseString(request, "type", "")
	if title == "" || typeSlug == "" {
		return mcpToolError("Error creating object: title and type are required")
	}
	status := mcp.ParseString(request, "status", "published")
	if status != "published" && status != "draft" {
		return toolErrorf("creating object", fmt.Errorf("status must be published or draft, got %q", status))
	}

	upsert := cosmic.ObjectUpsert{
		Title:    title,
		Type:     typeSlug,
		Slug:     mcp.ParseString(request, "slug", ""),
		Status:   status,
		Content:  mcp.ParseString(request, "content", ""),
		Metadata: parseMetadata(request, "metadata"),
		Locale:   mcp.ParseString(request, "locale", ""),
	}

	object, err := t.cosmic.Objects().InsertOne(ctx, upsert)
	if err != nil {
		return toolErrorf("creating object", err)
	}

	return jsonResult(&ObjectResponse{
		Summary: fmt.Sprintf("Created object '%s' of type '%s'", object.Title, object.Type),
		Object:  object,
	})
}

// ObjectsUpdate implements the cosmic_objects_update MCP tool. The forwarded
// patch contains exactly the fields the caller supplied: an omitted field is
// absent from the patch rather than present as null, so partial updates never
// clear server-side values.
func (t *Tools) ObjectsUpdate(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	id := mcp.ParseString(request, "id", "")
	if id == "" {
		return mcpToolError("Error updating object: id is required")
	}

	patch := make(map[string]any)
	for _, key := range []string{"title", "slug", "status", "content", "locale"} {
		if v, ok := stringArg(request, key); ok {
			patch[key] = v
		}
	}
	if status, ok := patch["status"]; ok && status != "published" && status != "draft" {
		return toolErrorf("updating object", fmt.Errorf("status must be published or draft, got %q", status))
	}
	if metadata := parseMetadata(request, "metadata"); metadata != nil {
		patch["metadata"] = metadata
	}
	if len(patch) == 0 {
		return mcpToolError("Error updating object: no fields to update")
	}

	object, err := t.cosmic.Objects().UpdateOne(ctx, id, patch)
	if err != nil {
		return toolErrorf("updating object", err)
	}

	return jsonResult(&ObjectResponse{
		Summary: fmt.Sprintf("Updated object '%s'", object.Title),
		Object:  object,
	})
}

// ObjectsDelete implements the cosmic_objects_delete MCP tool.
func (t *Tools) ObjectsDelete(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	id := mcp.ParseString(request, "id", "")
	if id == "" {
		return mcpToolError("Error deleting object: id is required")
	}
	triggerWebhook := mcp.ParseBoolean(request, "trigger_webhook", true)

	if err := t.cosmic.Objects().DeleteOne(ctx, id, triggerWebhook); err != nil {
		return toolErrorf("deleting object", err)
	}

	return jsonResult(&DeleteResponse{
		ID:     id,
		Status: "deleted",
	})
}
