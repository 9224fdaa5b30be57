// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package cosmic

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Media is a media asset stored in a bucket.
type Media struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	OriginalName string         `json:"original_name,omitempty"`
	Size         int64          `json:"size"`
	Type         string         `json:"type"`
	URL          string         `json:"url"`
	ImgixURL     string         `json:"imgix_url,omitempty"`
	Folder       string         `json:"folder,omitempty"`
	AltText      string         `json:"alt_text,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
}

// MediaPage is one page of a media listing.
type MediaPage struct {
	Media []Media `json:"media"`
	Total int     `json:"total"`
}

// MediaCollection accesses the bucket's media assets.
type MediaCollection struct {
	client *Client
}

// Find starts a listing query over the collection. nil means no filter.
func (c *MediaCollection) Find(filter map[string]any) *MediaQuery {
	return &MediaQuery{client: c.client, filter: filter}
}

// MediaQuery is a chainable listing query over media assets.
type MediaQuery struct {
	client *Client
	filter map[string]any
	props  []string
	limit  int
	skip   int
}

// Props restricts the returned media fields to the given projection.
func (q *MediaQuery) Props(props ...string) *MediaQuery { q.props = props; return q }

// Limit caps the number of returned assets.
func (q *MediaQuery) Limit(limit int) *MediaQuery { q.limit = limit; return q }

// Skip offsets into the result set.
func (q *MediaQuery) Skip(skip int) *MediaQuery { q.skip = skip; return q }

// Do runs the query.
func (q *MediaQuery) Do(ctx context.Context) (_ MediaPage, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := q.client.endpoint("media")
	if err != nil {
		return MediaPage{}, err
	}

	values := url.Values{}
	if filter, err := queryJSON(q.filter); err != nil {
		return MediaPage{}, err
	} else if filter != "" {
		values.Set("query", filter)
	}
	if len(q.props) > 0 {
		values.Set("props", joinProps(q.props))
	}
	if q.limit > 0 {
		values.Set("limit", strconv.Itoa(q.limit))
	}
	if q.skip > 0 {
		values.Set("skip", strconv.Itoa(q.skip))
	}

	var page MediaPage
	if err := q.client.get(ctx, reqURL, values, &page); err != nil {
		return MediaPage{}, err
	}
	return page, nil
}

// FindOne retrieves a single media asset by id.
func (c *MediaCollection) FindOne(ctx context.Context, id string) (_ Media, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("media", id)
	if err != nil {
		return Media{}, err
	}

	var resp struct {
		Media Media `json:"media"`
	}
	if err := c.client.get(ctx, reqURL, nil, &resp); err != nil {
		return Media{}, err
	}
	return resp.Media, nil
}

// MediaUpload is the payload for uploading a media asset. Exactly one of URL
// or Data must be set: URL uploads by reference, Data uploads raw bytes with
// the given content type.
type MediaUpload struct {
	URL         string
	Data        []byte
	ContentType string
	Filename    string
	Folder      string
	AltText     string
	Metadata    map[string]any
}

// InsertOne uploads a media asset.
func (c *MediaCollection) InsertOne(ctx context.Context, upload MediaUpload) (_ Media, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("media")
	if err != nil {
		return Media{}, err
	}

	var resp struct {
		Media Media `json:"media"`
	}
	err = c.client.writeMultipart(ctx, reqURL, func(form *multipart.Writer) error {
		if upload.URL != "" {
			if err := form.WriteField("url", upload.URL); err != nil {
				return err
			}
		} else {
			filename := upload.Filename
			if filename == "" {
				filename = "upload"
			}
			part, err := form.CreateFormFile("media", filename)
			if err != nil {
				return err
			}
			if _, err := part.Write(upload.Data); err != nil {
				return err
			}
			if upload.ContentType != "" {
				if err := form.WriteField("content_type", upload.ContentType); err != nil {
					return err
				}
			}
		}
		if upload.Folder != "" {
			if err := form.WriteField("folder", upload.Folder); err != nil {
				return err
			}
		}
		if upload.AltText != "" {
			if err := form.WriteField("alt_text", upload.AltText); err != nil {
				return err
			}
		}
		if len(upload.Metadata) > 0 {
			metadata, err := json.Marshal(upload.Metadata)
			if err != nil {
				return err
			}
			if err := form.WriteField("metadata", string(metadata)); err != nil {
				return err
			}
		}
		return nil
	}, &resp)
	if err != nil {
		return Media{}, err
	}
	return resp.Media, nil
}

// DeleteOne deletes a media asset by id.
func (c *MediaCollection) DeleteOne(ctx context.Context, id string, triggerWebhook bool) (err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("media", id)
	if err != nil {
		return err
	}

	values := url.Values{}
	values.Set("trigger_webhook", strconv.FormatBool(triggerWebhook))

	return c.client.write(ctx, http.MethodDelete, reqURL, values, nil, nil)
}
