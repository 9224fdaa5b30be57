// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAIGenerateTextRequiresPrompt(t *testing.T) {
	tools, calls := newTestTools(t, "", nil)

	result, err := tools.AIGenerateText(context.Background(), newRequest(ToolAIGenerateText, nil))
	requireErrorResult(t, result, err, "prompt is required")
	require.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestAIGenerateTextValidatesMaxTokens(t *testing.T) {
	tools, calls := newTestTools(t, "", nil)
	ctx := context.Background()

	result, err := tools.AIGenerateText(ctx, newRequest(ToolAIGenerateText, map[string]any{
		"prompt":     "write a haiku",
		"max_tokens": 200000,
	}))
	requireErrorResult(t, result, err, "max_tokens must be between 1 and 100000")

	result, err = tools.AIGenerateText(ctx, newRequest(ToolAIGenerateText, map[string]any{
		"prompt":     "write a haiku",
		"max_tokens": 0,
	}))
	requireErrorResult(t, result, err, "max_tokens must be between")

	require.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestAIGenerateTextOmitsUnsetMaxTokens(t *testing.T) {
	tools, _ := newTestTools(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "write a haiku", body["prompt"])
		require.NotContains(t, body, "max_tokens")

		_, err := w.Write([]byte(`{"text":"ok","model":"gpt-4o","usage":{"input_tokens":4,"output_tokens":12}}`))
		require.NoError(t, err)
	}))

	result, err := tools.AIGenerateText(context.Background(), newRequest(ToolAIGenerateText, map[string]any{
		"prompt": "write a haiku",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var resp GenerateTextResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	require.Equal(t, "ok", resp.Text)
	require.Equal(t, 12, resp.Usage.OutputTokens)
}

func TestAIGenerateVideoConvertsDuration(t *testing.T) {
	tools, _ := newTestTools(t, "write-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/buckets/test-bucket/ai/video", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// The string enumeration arrives at the API in numeric form.
		require.Equal(t, float64(8), body["duration"])
		require.Equal(t, "1080p", body["resolution"])

		_, err := w.Write([]byte(`{"media":{"id":"m-3","name":"clip.mp4","size":100,"type":"video/mp4","url":"https://cdn.example/clip.mp4"},"usage":{"input_tokens":10,"output_tokens":0}}`))
		require.NoError(t, err)
	}))

	result, err := tools.AIGenerateVideo(context.Background(), newRequest(ToolAIGenerateVideo, map[string]any{
		"prompt":     "a cat",
		"duration":   "8",
		"resolution": "1080p",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
}

func TestAIGenerateVideoRejectsInvalidArguments(t *testing.T) {
	tools, calls := newTestTools(t, "write-key", nil)
	ctx := context.Background()

	result, err := tools.AIGenerateVideo(ctx, newRequest(ToolAIGenerateVideo, map[string]any{
		"prompt":   "a cat",
		"duration": "5",
	}))
	requireErrorResult(t, result, err, "duration must be one of 4, 6 or 8")

	result, err = tools.AIGenerateVideo(ctx, newRequest(ToolAIGenerateVideo, map[string]any{
		"prompt":     "a cat",
		"resolution": "480p",
	}))
	requireErrorResult(t, result, err, "resolution must be 720p or 1080p")

	require.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestAIGenerateImage(t *testing.T) {
	tools, _ := newTestTools(t, "write-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/buckets/test-bucket/ai/image", r.URL.Path)
		require.Equal(t, "Bearer write-key", r.Header.Get("Authorization"))

		_, err := w.Write([]byte(`{"media":{"id":"m-4","name":"art.png","size":50,"type":"image/png","url":"https://cdn.example/art.png"},"revised_prompt":"a fluffy cat"}`))
		require.NoError(t, err)
	}))

	result, err := tools.AIGenerateImage(context.Background(), newRequest(ToolAIGenerateImage, map[string]any{
		"prompt": "a cat",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var resp GenerateImageResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	require.Equal(t, "m-4", resp.Media.ID)
	require.Equal(t, "a fluffy cat", resp.RevisedPrompt)
}
