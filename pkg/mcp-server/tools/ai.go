// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
)

const (
	// ToolAIGenerateText is the name of a tool for generating text.
	ToolAIGenerateText = "cosmic_ai_generate_text"

	// ToolAIGenerateImage is the name of a tool for generating an image into the media library.
	ToolAIGenerateImage = "cosmic_ai_generate_image"

	// ToolAIGenerateVideo is the name of a tool for generating a video into the media library.
	ToolAIGenerateVideo = "cosmic_ai_generate_video"
)

func (t *Tools) addAITools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool(ToolAIGenerateText,
		mcp.WithDescription("Generate text from a prompt using the bucket's AI service."),
		mcp.WithString("prompt", mcp.Description("Prompt to generate text from"), mcp.Required()),
		mcp.WithString("model", mcp.Description("Model identifier (service default when omitted)")),
		mcp.WithNumber("max_tokens", mcp.Description("Maximum number of tokens to generate"), mcp.Min(1), mcp.Max(maxAITokens)),
	), t.AIGenerateText)

	mcpServer.AddTool(mcp.NewTool(ToolAIGenerateImage,
		mcp.WithDescription("Generate an image from a prompt and upload it to the bucket's media library. Requires a write key."),
		mcp.WithString("prompt", mcp.Description("Prompt to generate the image from"), mcp.Required()),
		mcp.WithString("model", mcp.Description("Model identifier (service default when omitted)")),
		mcp.WithString("folder", mcp.Description("Folder to place the generated asset in")),
		mcp.WithBoolean("alt_text", mcp.Description("Generate alt text for the asset"), mcp.DefaultBool(false)),
		mcp.WithObject("metadata", mcp.Description("Metadata for the generated asset")),
	), t.AIGenerateImage)

	mcpServer.AddTool(mcp.NewTool(ToolAIGenerateVideo,
		mcp.WithDescription("Generate a video from a prompt and upload it to the bucket's media library. Requires a write key."),
		mcp.WithString("prompt", mcp.Description("Prompt to generate the video from"), mcp.Required()),
		mcp.WithString("model", mcp.Description("Model identifier (service default when omitted)")),
		mcp.WithString("duration", mcp.Description("Video duration in seconds"), mcp.Enum("4", "6", "8"), mcp.DefaultString("4")),
		mcp.WithString("resolution", mcp.Description("Video resolution"), mcp.Enum("720p", "1080p"), mcp.DefaultString("720p")),
		mcp.WithString("folder", mcp.Description("Folder to place the generated asset in")),
		mcp.WithObject("metadata", mcp.Description("Metadata for the generated asset")),
	), t.AIGenerateVideo)
}

// AIGenerateText implements the cosmic_ai_generate_text MCP tool.
func (t *Tools) AIGenerateText(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	prompt := mcp.ParseString(request, "prompt", "")
	if prompt == "" {
		return mcpToolError("Error generating text: prompt is required")
	}

	var maxTokens int
	if arg := mcp.ParseArgument(request, "max_tokens", nil); arg != nil {
		maxTokens = mcp.ParseInt(request, "max_tokens", 0)
		if maxTokens < 1 || maxTokens > maxAITokens {
			return toolErrorf("generating text", fmt.Errorf("max_tokens must be between 1 and %d, got %d", maxAITokens, maxTokens))
		}
	}

	result, err := t.cosmic.AI().GenerateText(ctx, cosmic.GenerateTextRequest{
		Prompt:    prompt,
		Model:     mcp.ParseString(request, "model", ""),
		MaxTokens: maxTokens,
	})
	if err != nil {
		return toolErrorf("generating text", err)
	}

	return jsonResult(&GenerateTextResponse{
		Text:  result.Text,
		Model: result.Model,
		Usage: result.Usage,
	})
}

// AIGenerateImage implements the cosmic_ai_generate_image MCP tool. The API
// both generates and uploads the asset.
func (t *Tools) AIGenerateImage(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	prompt := mcp.ParseString(request, "prompt", "")
	if prompt == "" {
		return mcpToolError("Error generating image: prompt is required")
	}

	result, err := t.cosmic.AI().GenerateImage(ctx, cosmic.GenerateImageRequest{
		Prompt:   prompt,
		Model:    mcp.ParseString(request, "model", ""),
		Folder:   mcp.ParseString(request, "folder", ""),
		AltText:  mcp.ParseBoolean(request, "alt_text", false),
		Metadata: parseMetadata(request, "metadata"),
	})
	if err != nil {
		return toolErrorf("generating image", err)
	}

	return jsonResult(&GenerateImageResponse{
		Summary:       fmt.Sprintf("Generated image '%s' into the media library", result.Media.Name),
		Media:         result.Media,
		RevisedPrompt: result.RevisedPrompt,
	})
}

// AIGenerateVideo implements the cosmic_ai_generate_video MCP tool. Duration
// arrives as a closed string enumeration and is converted to its numeric form
// before being forwarded.
func (t *Tools) AIGenerateVideo(ctx context.Context, request mcp.CallToolRequest) (_ *mcp.CallToolResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if errResult := t.requireWriteAccess(); errResult != nil {
		return errResult, nil
	}

	prompt := mcp.ParseString(request, "prompt", "")
	if prompt == "" {
		return mcpToolError("Error generating video: prompt is required")
	}

	durationArg := mcp.ParseString(request, "duration", "4")
	duration, err := strconv.Atoi(durationArg)
	if err != nil || (duration != 4 && duration != 6 && duration != 8) {
		return mcpToolError(fmt.Sprintf("Error generating video: duration must be one of 4, 6 or 8 seconds, got %q", durationArg))
	}

	resolution := mcp.ParseString(request, "resolution", "720p")
	if resolution != "720p" && resolution != "1080p" {
		return mcpToolError(fmt.Sprintf("Error generating video: resolution must be 720p or 1080p, got %q", resolution))
	}

	result, err := t.cosmic.AI().GenerateVideo(ctx, cosmic.GenerateVideoRequest{
		Prompt:     prompt,
		Model:      mcp.ParseString(request, "model", ""),
		Duration:   duration,
		Resolution: resolution,
		Folder:     mcp.ParseString(request, "folder", ""),
		Metadata:   parseMetadata(request, "metadata"),
	})
	if err != nil {
		return toolErrorf("generating video", err)
	}

	return jsonResult(&GenerateVideoResponse{
		Summary: fmt.Sprintf("Generated %ds %s video '%s' into the media library", duration, resolution, result.Media.Name),
		Media:   result.Media,
		Usage:   result.Usage,
	})
}
