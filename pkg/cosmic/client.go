// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

// Package cosmic is a client for the Cosmic content API. It exposes the
// bucket's object, media, object-type and AI collections with the same
// find/findOne/insertOne/updateOne/deleteOne surface the REST API documents.
package cosmic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/spacemonkeygo/monkit/v3"

	"github.com/cosmicjs/mcp-server/pkg/errdata"
)

var mon = monkit.Package()

// Client communicates with the Cosmic API. It is stateless across calls
// except for immutable configuration captured at construction and is safe
// for concurrent use.
type Client struct {
	config Config
	http   *http.Client
}

// New returns a new Cosmic API client.
func New(config Config) *Client {
	return &Client{
		config: config,
		http: &http.Client{
			Timeout:   config.timeout(),
			Transport: &http.Transport{ResponseHeaderTimeout: config.timeout()},
		},
	}
}

// Objects returns the bucket's content object collection.
func (c *Client) Objects() *ObjectsCollection { return &ObjectsCollection{client: c} }

// Media returns the bucket's media asset collection.
func (c *Client) Media() *MediaCollection { return &MediaCollection{client: c} }

// ObjectTypes returns the bucket's content type collection.
func (c *Client) ObjectTypes() *ObjectTypesCollection { return &ObjectTypesCollection{client: c} }

// AI returns the bucket's AI generation collection.
func (c *Client) AI() *AICollection { return &AICollection{client: c} }

// CanWrite reports whether the client was configured with a write key.
func (c *Client) CanWrite() bool { return c.config.WriteKey != "" }

// BucketSlug returns the bucket the client is scoped to.
func (c *Client) BucketSlug() string { return c.config.BucketSlug }

// apiError is the error shape the Cosmic API returns for failed requests.
type apiError struct {
	Message string `json:"message"`
}

// endpoint builds a bucket-scoped request URL.
func (c *Client) endpoint(parts ...string) (*url.URL, error) {
	reqURL, err := url.Parse(c.config.baseURL())
	if err != nil {
		return nil, errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
	}
	reqURL.Path = path.Join(append([]string{reqURL.Path, "v3", "buckets", c.config.BucketSlug}, parts...)...)
	return reqURL, nil
}

// get issues a read-authorized GET and decodes the response into out.
func (c *Client) get(ctx context.Context, reqURL *url.URL, query url.Values, out any) (err error) {
	defer mon.Task()(&ctx)(&err)

	if query == nil {
		query = url.Values{}
	}
	query.Set("read_key", c.config.ReadKey)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
	}

	return c.do(ctx, req, nil, out)
}

// post issues a read-authorized POST with a JSON body and decodes the
// response into out. Used by read-class endpoints that take a request body,
// like text generation.
func (c *Client) post(ctx context.Context, reqURL *url.URL, body, out any) (err error) {
	defer mon.Task()(&ctx)(&err)

	query := url.Values{}
	query.Set("read_key", c.config.ReadKey)
	reqURL.RawQuery = query.Encode()

	payload, err := json.Marshal(body)
	if err != nil {
		return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(payload))
	if err != nil {
		return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(ctx, req, payload, out)
}

// write issues a write-authorized request with a JSON body and decodes the
// response into out. It fails without a network call if no write key is
// configured.
func (c *Client) write(ctx context.Context, method string, reqURL *url.URL, query url.Values, body, out any) (err error) {
	defer mon.Task()(&ctx)(&err)

	if c.config.WriteKey == "" {
		return ErrWriteKeyMissing
	}

	if query != nil {
		reqURL.RawQuery = query.Encode()
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(payload))
	if err != nil {
		return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.WriteKey)

	return c.do(ctx, req, payload, out)
}

// writeMultipart issues a write-authorized multipart/form-data POST. The form
// is built by the supplied function, which is re-invoked on retries since the
// body reader cannot be rewound.
func (c *Client) writeMultipart(ctx context.Context, reqURL *url.URL, buildForm func(*multipart.Writer) error, out any) (err error) {
	defer mon.Task()(&ctx)(&err)

	if c.config.WriteKey == "" {
		return ErrWriteKeyMissing
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := buildForm(form); err != nil {
		return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
	}
	if err := form.Close(); err != nil {
		return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.config.WriteKey)

	return c.do(ctx, req, buf.Bytes(), out)
}

// do runs a request with exponential-backoff retries on transport errors and
// server-side failures, decoding a successful response into out. payload, if
// non-nil, is used to rebuild the request body for each retry.
func (c *Client) do(ctx context.Context, req *http.Request, payload []byte, out any) (err error) {
	defer mon.Task()(&ctx)(&err)

	delay := c.config.BackOff
	for {
		if payload != nil {
			req.Body = io.NopCloser(bytes.NewReader(payload))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if !delay.Maxed() {
				if err := delay.Wait(ctx); err != nil {
					return errdata.WithStatus(Error.Wrap(err), errdata.HTTPStatusClientClosedRequest)
				}
				continue
			}
			return errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
		}

		// Use an anonymous function for deferring the response close before
		// the next retry and not piling it up when the method returns.
		retry, err := func() (retry bool, _ error) {
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode >= http.StatusInternalServerError {
				if !delay.Maxed() {
					return true, nil
				}
				return false, errdata.WithStatus(Error.New("unexpected status code: %d", resp.StatusCode), resp.StatusCode)
			}

			if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
				var apiErr apiError
				if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
					return false, errdata.WithStatus(Error.New("%s", apiErr.Message), resp.StatusCode)
				}
				return false, errdata.WithStatus(Error.New("unexpected status code: %d", resp.StatusCode), resp.StatusCode)
			}

			if out == nil {
				return false, nil
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return false, errdata.WithStatus(Error.Wrap(err), http.StatusInternalServerError)
			}
			return false, nil
		}()

		if retry {
			if err := delay.Wait(ctx); err != nil {
				return errdata.WithStatus(Error.Wrap(err), errdata.HTTPStatusClientClosedRequest)
			}
			continue
		}

		return err
	}
}

// errNotFound reports a missing resource with a 404 annotation, matching the
// shape of API-side not-found errors.
func errNotFound(kind, id string) error {
	return errdata.WithStatus(Error.New("%s %q not found", kind, id), http.StatusNotFound)
}

// queryJSON encodes a query filter object as the API's query parameter.
func queryJSON(filter map[string]any) (string, error) {
	if len(filter) == 0 {
		return "", nil
	}
	data, err := json.Marshal(filter)
	if err != nil {
		return "", Error.Wrap(err)
	}
	return string(data), nil
}

// joinProps encodes a property projection list.
func joinProps(props []string) string {
	return strings.Join(props, ",")
}
