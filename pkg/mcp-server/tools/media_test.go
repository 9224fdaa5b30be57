// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMediaListForwardsFolderFilter(t *testing.T) {
	tools, _ := newTestTools(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/buckets/test-bucket/media", r.URL.Path)
		require.JSONEq(t, `{"folder":"uploads"}`, r.URL.Query().Get("query"))

		_, err := w.Write([]byte(`{"media":[{"id":"m-1","name":"cat.jpg","size":9,"type":"image/jpeg","url":"https://cdn.example/cat.jpg"}],"total":1}`))
		require.NoError(t, err)
	}))

	result, err := tools.MediaList(context.Background(), newRequest(ToolMediaList, map[string]any{"folder": "uploads"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var resp MediaListResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "m-1", resp.Media[0].ID)
}

func TestMediaGetRequiresID(t *testing.T) {
	tools, calls := newTestTools(t, "", nil)

	result, err := tools.MediaGet(context.Background(), newRequest(ToolMediaGet, nil))
	requireErrorResult(t, result, err, "id is required")
	require.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestMediaUploadDecodesDataURI(t *testing.T) {
	tools, _ := newTestTools(t, "write-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("media")
		require.NoError(t, err)
		defer func() { require.NoError(t, file.Close()) }()

		// The backend must receive the decoded payload, not the data URI text.
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte("foo"), data)
		require.Equal(t, "foo.png", header.Filename)
		require.Equal(t, "image/png", r.FormValue("content_type"))

		_, err = w.Write([]byte(`{"media":{"id":"m-1","name":"foo.png","size":3,"type":"image/png","url":"https://cdn.example/foo.png"}}`))
		require.NoError(t, err)
	}))

	result, err := tools.MediaUpload(context.Background(), newRequest(ToolMediaUpload, map[string]any{
		"media":    "data:image/png;base64,Zm9v",
		"filename": "foo.png",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
}

func TestMediaUploadRejectsMalformedDataURI(t *testing.T) {
	tools, calls := newTestTools(t, "write-key", nil)
	ctx := context.Background()

	result, err := tools.MediaUpload(ctx, newRequest(ToolMediaUpload, map[string]any{"media": "data:bad-format"}))
	requireErrorResult(t, result, err, "invalid data URI format")

	result, err = tools.MediaUpload(ctx, newRequest(ToolMediaUpload, map[string]any{"media": "data:image/png;base64,!!!"}))
	requireErrorResult(t, result, err, "invalid base64 payload")

	require.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestMediaUploadPassesRemoteURLThrough(t *testing.T) {
	tools, _ := newTestTools(t, "write-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "https://example.com/cat.jpg", r.FormValue("url"))

		_, err := w.Write([]byte(`{"media":{"id":"m-2","name":"cat.jpg","size":9,"type":"image/jpeg","url":"https://cdn.example/cat.jpg"}}`))
		require.NoError(t, err)
	}))

	result, err := tools.MediaUpload(context.Background(), newRequest(ToolMediaUpload, map[string]any{
		"media": "https://example.com/cat.jpg",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
}

func TestMediaDeleteSurfacesBackendOutcome(t *testing.T) {
	deleted := false
	tools, _ := newTestTools(t, "write-key", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if deleted {
			w.WriteHeader(http.StatusNotFound)
			_, err := w.Write([]byte(`{"message":"Media not found"}`))
			require.NoError(t, err)
			return
		}
		deleted = true
		_, err := w.Write([]byte(`{"message":"deleted"}`))
		require.NoError(t, err)
	}))
	ctx := context.Background()

	result, err := tools.MediaDelete(ctx, newRequest(ToolMediaDelete, map[string]any{"id": "m-1"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	// A repeated delete is forwarded again and reports the backend's outcome.
	result, err = tools.MediaDelete(ctx, newRequest(ToolMediaDelete, map[string]any{"id": "m-1"}))
	requireErrorResult(t, result, err, "Media not found")
}
