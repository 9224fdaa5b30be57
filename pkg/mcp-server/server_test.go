// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package mcpserver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
	mcpclient "github.com/cosmicjs/mcp-server/pkg/mcp-client"
	mcpserver "github.com/cosmicjs/mcp-server/pkg/mcp-server"
)

// fakeBucket is an in-memory stand-in for the object endpoints of the Cosmic
// API, just enough to exercise the server end to end.
type fakeBucket struct {
	mu      sync.Mutex
	nextID  int
	objects map[string]cosmic.Object
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	const prefix = "/v3/buckets/test-bucket/objects"
	rest := strings.TrimPrefix(r.URL.Path, prefix)

	switch {
	case rest == "" && r.Method == http.MethodGet:
		objects := make([]cosmic.Object, 0, len(f.objects))
		for _, object := range f.objects {
			objects = append(objects, object)
		}
		writeJSON(w, map[string]any{"objects": objects, "total": len(objects)})

	case rest == "" && r.Method == http.MethodPost:
		var upsert cosmic.ObjectUpsert
		if err := json.NewDecoder(r.Body).Decode(&upsert); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.nextID++
		object := cosmic.Object{
			ID:      fmt.Sprintf("obj-%d", f.nextID),
			Slug:    upsert.Slug,
			Title:   upsert.Title,
			Type:    upsert.Type,
			Status:  upsert.Status,
			Content: upsert.Content,
		}
		if object.Slug == "" {
			object.Slug = strings.ToLower(strings.ReplaceAll(upsert.Title, " ", "-"))
		}
		f.objects[object.ID] = object
		writeJSON(w, map[string]any{"object": object})

	case rest != "" && r.Method == http.MethodGet:
		object, ok := f.objects[strings.TrimPrefix(rest, "/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"message": "Object not found"})
			return
		}
		writeJSON(w, map[string]any{"object": object})

	case rest != "" && r.Method == http.MethodPatch:
		id := strings.TrimPrefix(rest, "/")
		object, ok := f.objects[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"message": "Object not found"})
			return
		}
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if title, ok := patch["title"].(string); ok {
			object.Title = title
		}
		if content, ok := patch["content"].(string); ok {
			object.Content = content
		}
		f.objects[id] = object
		writeJSON(w, map[string]any{"object": object})

	case rest != "" && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(rest, "/")
		if _, ok := f.objects[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"message": "Object not found"})
			return
		}
		delete(f.objects, id)
		writeJSON(w, map[string]any{"message": "deleted"})

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func runServer(t *testing.T, writeKey string, test func(ctx context.Context, client *mcpclient.Client, address string)) {
	backend := httptest.NewServer(&fakeBucket{objects: make(map[string]cosmic.Object)})
	t.Cleanup(backend.Close)

	client := cosmic.New(cosmic.Config{
		BaseURL:    backend.URL,
		BucketSlug: "test-bucket",
		ReadKey:    "read-key",
		WriteKey:   writeKey,
		Timeout:    5 * time.Second,
	})

	peer, err := mcpserver.New(zaptest.NewLogger(t), client, mcpserver.Config{
		Transport: mcpserver.TransportHTTP,
		Address:   "127.0.0.1:0",
		Cosmic:    cosmic.Config{BucketSlug: "test-bucket", ReadKey: "read-key"},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var group errgroup.Group
	group.Go(func() error {
		return peer.Run(ctx)
	})

	mcp, err := mcpclient.New("http://" + peer.Address() + "/mcp")
	require.NoError(t, err)

	test(ctx, mcp, peer.Address())

	cancel()
	require.NoError(t, group.Wait())
}

func TestToolCatalogOverHTTP(t *testing.T) {
	runServer(t, "write-key", func(ctx context.Context, client *mcpclient.Client, _ string) {
		listed, err := client.ListTools(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 17)
	})
}

func TestObjectLifecycleOverHTTP(t *testing.T) {
	runServer(t, "write-key", func(ctx context.Context, client *mcpclient.Client, _ string) {
		listResp, err := client.ObjectsList(ctx, mcpclient.ObjectsListRequest{})
		require.NoError(t, err)
		require.Empty(t, listResp.Objects)

		createResp, err := client.ObjectsCreate(ctx, mcpclient.ObjectsCreateRequest{
			Title: "Hello World",
			Type:  "posts",
		})
		require.NoError(t, err)
		require.Equal(t, "hello-world", createResp.Object.Slug)
		require.Equal(t, "published", createResp.Object.Status)
		id := createResp.Object.ID

		depth := 1
		anyResp, err := client.ObjectsList(ctx, mcpclient.ObjectsListRequest{Status: "any", Depth: &depth})
		require.NoError(t, err)
		require.Len(t, anyResp.Objects, 1)

		_, err = client.ObjectsList(ctx, mcpclient.ObjectsListRequest{Status: "bogus"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "status must be published, draft or any")

		getResp, err := client.ObjectsGet(ctx, mcpclient.ObjectsGetRequest{ID: id})
		require.NoError(t, err)
		require.Equal(t, "Hello World", getResp.Object.Title)

		newTitle := "Hello Again"
		updateResp, err := client.ObjectsUpdate(ctx, mcpclient.ObjectsUpdateRequest{
			ID:    id,
			Title: &newTitle,
		})
		require.NoError(t, err)
		require.Equal(t, "Hello Again", updateResp.Object.Title)
		require.Equal(t, "hello-world", updateResp.Object.Slug)

		deleteResp, err := client.ObjectsDelete(ctx, mcpclient.ObjectsDeleteRequest{ID: id})
		require.NoError(t, err)
		require.Equal(t, "deleted", deleteResp.Status)

		_, err = client.ObjectsGet(ctx, mcpclient.ObjectsGetRequest{ID: id})
		require.Error(t, err)
		require.Contains(t, err.Error(), "Object not found")
	})
}

func TestWriteGateOverHTTP(t *testing.T) {
	runServer(t, "", func(ctx context.Context, client *mcpclient.Client, _ string) {
		_, err := client.ObjectsCreate(ctx, mcpclient.ObjectsCreateRequest{
			Title: "Hello",
			Type:  "posts",
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "write operations require a write credential")

		listResp, err := client.ObjectsList(ctx, mcpclient.ObjectsListRequest{})
		require.NoError(t, err)
		require.Empty(t, listResp.Objects)
	})
}

func TestHealthEndpoint(t *testing.T) {
	runServer(t, "", func(ctx context.Context, client *mcpclient.Client, address string) {
		resp, err := http.Get("http://" + address + "/health")
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := mcpserver.Config{
		Transport: mcpserver.TransportStdio,
		Cosmic:    cosmic.Config{BucketSlug: "bucket", ReadKey: "rk"},
	}
	require.NoError(t, valid.Validate())

	unknownTransport := valid
	unknownTransport.Transport = "carrier-pigeon"
	require.Error(t, unknownTransport.Validate())

	missingAddress := valid
	missingAddress.Transport = mcpserver.TransportHTTP
	require.Error(t, missingAddress.Validate())

	badCosmic := valid
	badCosmic.Cosmic.ReadKey = ""
	require.Error(t, badCosmic.Validate())
}
