// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package cosmic

import (
	"context"
	"net/http"
)

// AIUsage is the token accounting the API reports for a generation.
type AIUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens,omitempty"`
}

// AICollection accesses the bucket's AI generation endpoints.
type AICollection struct {
	client *Client
}

// GenerateTextRequest is the payload for a text generation.
type GenerateTextRequest struct {
	Prompt    string `json:"prompt"`
	Model     string `json:"model,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// GenerateTextResult is the result of a text generation.
type GenerateTextResult struct {
	Text  string  `json:"text"`
	Model string  `json:"model"`
	Usage AIUsage `json:"usage"`
}

// GenerateText generates text from a prompt. Text generation is a read-class
// operation; it needs no write key.
func (c *AICollection) GenerateText(ctx context.Context, req GenerateTextRequest) (_ GenerateTextResult, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("ai", "text")
	if err != nil {
		return GenerateTextResult{}, err
	}

	var result GenerateTextResult
	if err := c.client.post(ctx, reqURL, req, &result); err != nil {
		return GenerateTextResult{}, err
	}
	return result, nil
}

// GenerateImageRequest is the payload for an image generation. The API both
// generates and uploads the asset.
type GenerateImageRequest struct {
	Prompt   string         `json:"prompt"`
	Model    string         `json:"model,omitempty"`
	Folder   string         `json:"folder,omitempty"`
	AltText  bool           `json:"generate_alt_text,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GenerateImageResult is the result of an image generation.
type GenerateImageResult struct {
	Media         Media  `json:"media"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// GenerateImage generates an image from a prompt and uploads it to the
// bucket's media library.
func (c *AICollection) GenerateImage(ctx context.Context, req GenerateImageRequest) (_ GenerateImageResult, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("ai", "image")
	if err != nil {
		return GenerateImageResult{}, err
	}

	var result GenerateImageResult
	if err := c.client.write(ctx, http.MethodPost, reqURL, nil, req, &result); err != nil {
		return GenerateImageResult{}, err
	}
	return result, nil
}

// GenerateVideoRequest is the payload for a video generation. Duration is in
// seconds and limited by the API to 4, 6 or 8; resolution to 720p or 1080p.
type GenerateVideoRequest struct {
	Prompt     string         `json:"prompt"`
	Model      string         `json:"model,omitempty"`
	Duration   int            `json:"duration,omitempty"`
	Resolution string         `json:"resolution,omitempty"`
	Folder     string         `json:"folder,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// GenerateVideoResult is the result of a video generation.
type GenerateVideoResult struct {
	Media Media   `json:"media"`
	Usage AIUsage `json:"usage"`
}

// GenerateVideo generates a video from a prompt and uploads it to the
// bucket's media library.
func (c *AICollection) GenerateVideo(ctx context.Context, req GenerateVideoRequest) (_ GenerateVideoResult, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("ai", "video")
	if err != nil {
		return GenerateVideoResult{}, err
	}

	var result GenerateVideoResult
	if err := c.client.write(ctx, http.MethodPost, reqURL, nil, req, &result); err != nil {
		return GenerateVideoResult{}, err
	}
	return result, nil
}
