// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package cosmic

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Object is a content object stored in a bucket.
type Object struct {
	ID         string         `json:"id"`
	Slug       string         `json:"slug"`
	Title      string         `json:"title"`
	Type       string         `json:"type"`
	Status     string         `json:"status,omitempty"`
	Content    string         `json:"content,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Locale     string         `json:"locale,omitempty"`
	CreatedAt  string         `json:"created_at,omitempty"`
	ModifiedAt string         `json:"modified_at,omitempty"`
	PublishAt  string         `json:"publish_at,omitempty"`
}

// ObjectsPage is one page of a content object listing.
type ObjectsPage struct {
	Objects []Object `json:"objects"`
	Total   int      `json:"total"`
}

// ObjectsCollection accesses the bucket's content objects.
type ObjectsCollection struct {
	client *Client
}

// Find starts a listing query over the collection. The filter is a free-form
// query object in the API's query syntax; nil means no filter. Refiners are
// chainable and the query runs when Do is called.
func (c *ObjectsCollection) Find(filter map[string]any) *ObjectsQuery {
	return &ObjectsQuery{client: c.client, filter: filter}
}

// ObjectsQuery is a chainable listing query over content objects.
type ObjectsQuery struct {
	client *Client
	filter map[string]any
	props  []string
	limit  int
	skip   int
	sort   string
	status string
	depth  *int
}

// Props restricts the returned object fields to the given projection.
func (q *ObjectsQuery) Props(props ...string) *ObjectsQuery { q.props = props; return q }

// Limit caps the number of returned objects.
func (q *ObjectsQuery) Limit(limit int) *ObjectsQuery { q.limit = limit; return q }

// Skip offsets into the result set.
func (q *ObjectsQuery) Skip(skip int) *ObjectsQuery { q.skip = skip; return q }

// Sort orders the result set by the given key.
func (q *ObjectsQuery) Sort(key string) *ObjectsQuery { q.sort = key; return q }

// Status filters by publication status (published, draft or any).
func (q *ObjectsQuery) Status(status string) *ObjectsQuery { q.status = status; return q }

// Depth expands object relationships to the given nesting depth.
func (q *ObjectsQuery) Depth(depth int) *ObjectsQuery { q.depth = &depth; return q }

// Do runs the query.
func (q *ObjectsQuery) Do(ctx context.Context) (_ ObjectsPage, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := q.client.endpoint("objects")
	if err != nil {
		return ObjectsPage{}, err
	}

	values := url.Values{}
	if filter, err := queryJSON(q.filter); err != nil {
		return ObjectsPage{}, err
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
	if q.sort != "" {
		values.Set("sort", q.sort)
	}
	if q.status != "" {
		values.Set("status", q.status)
	}
	if q.depth != nil {
		values.Set("depth", strconv.Itoa(*q.depth))
	}

	var page ObjectsPage
	if err := q.client.get(ctx, reqURL, values, &page); err != nil {
		return ObjectsPage{}, err
	}
	return page, nil
}

// FindOne retrieves a single object by id.
func (c *ObjectsCollection) FindOne(ctx context.Context, id string) (_ Object, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("objects", id)
	if err != nil {
		return Object{}, err
	}

	var resp struct {
		Object Object `json:"object"`
	}
	if err := c.client.get(ctx, reqURL, nil, &resp); err != nil {
		return Object{}, err
	}
	return resp.Object, nil
}

// FindOneBySlug retrieves a single object by slug. Slug uniqueness is scoped
// to a type, so typeSlug is mandatory.
func (c *ObjectsCollection) FindOneBySlug(ctx context.Context, typeSlug, slug string) (_ Object, err error) {
	defer mon.Task()(&ctx)(&err)

	page, err := c.Find(map[string]any{"type": typeSlug, "slug": slug}).Limit(1).Status("any").Do(ctx)
	if err != nil {
		return Object{}, err
	}
	if len(page.Objects) == 0 {
		return Object{}, errNotFound("object", slug)
	}
	return page.Objects[0], nil
}

// ObjectUpsert is the payload for creating a content object.
type ObjectUpsert struct {
	Title    string         `json:"title"`
	Type     string         `json:"type"`
	Slug     string         `json:"slug,omitempty"`
	Status   string         `json:"status,omitempty"`
	Content  string         `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Locale   string         `json:"locale,omitempty"`
}

// InsertOne creates a content object.
func (c *ObjectsCollection) InsertOne(ctx context.Context, upsert ObjectUpsert) (_ Object, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("objects")
	if err != nil {
		return Object{}, err
	}

	var resp struct {
		Object Object `json:"object"`
	}
	if err := c.client.write(ctx, http.MethodPost, reqURL, nil, upsert, &resp); err != nil {
		return Object{}, err
	}
	return resp.Object, nil
}

// UpdateOne applies a sparse patch to a content object. Only keys present in
// the patch are sent; the server leaves all other fields untouched.
func (c *ObjectsCollection) UpdateOne(ctx context.Context, id string, patch map[string]any) (_ Object, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("objects", id)
	if err != nil {
		return Object{}, err
	}

	var resp struct {
		Object Object `json:"object"`
	}
	if err := c.client.write(ctx, http.MethodPatch, reqURL, nil, patch, &resp); err != nil {
		return Object{}, err
	}
	return resp.Object, nil
}

// DeleteOne deletes a content object by id.
func (c *ObjectsCollection) DeleteOne(ctx context.Context, id string, triggerWebhook bool) (err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("objects", id)
	if err != nil {
		return err
	}

	values := url.Values{}
	values.Set("trigger_webhook", strconv.FormatBool(triggerWebhook))

	return c.client.write(ctx, http.MethodDelete, reqURL, values, nil, nil)
}
