// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package cosmic

import (
	"context"
	"net/http"
)

// ObjectType is a content type schema stored in a bucket.
type ObjectType struct {
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	Singular     string         `json:"singular,omitempty"`
	Emoji        string         `json:"emoji,omitempty"`
	Metafields   []Metafield    `json:"metafields,omitempty"`
	Options      TypeOptions    `json:"options,omitempty"`
	Localization bool           `json:"localization,omitempty"`
	Locales      []string       `json:"locales,omitempty"`
	Preview      map[string]any `json:"preview_link,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	ModifiedAt   string         `json:"modified_at,omitempty"`
}

// TypeOptions are the content type's editor option flags.
type TypeOptions struct {
	SlugField     bool `json:"slug_field"`
	ContentEditor bool `json:"content_editor"`
}

// ObjectTypesCollection accesses the bucket's content type schemas.
type ObjectTypesCollection struct {
	client *Client
}

// Find lists all content types in the bucket.
func (c *ObjectTypesCollection) Find(ctx context.Context) (_ []ObjectType, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("object-types")
	if err != nil {
		return nil, err
	}

	var resp struct {
		ObjectTypes []ObjectType `json:"object_types"`
	}
	if err := c.client.get(ctx, reqURL, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ObjectTypes, nil
}

// FindOne retrieves a single content type by slug.
func (c *ObjectTypesCollection) FindOne(ctx context.Context, slug string) (_ ObjectType, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("object-types", slug)
	if err != nil {
		return ObjectType{}, err
	}

	var resp struct {
		ObjectType ObjectType `json:"object_type"`
	}
	if err := c.client.get(ctx, reqURL, nil, &resp); err != nil {
		return ObjectType{}, err
	}
	return resp.ObjectType, nil
}

// InsertOne creates a content type. The metafield tree is validated locally
// before anything is sent.
func (c *ObjectTypesCollection) InsertOne(ctx context.Context, objectType ObjectType) (_ ObjectType, err error) {
	defer mon.Task()(&ctx)(&err)

	if err := ValidateMetafields(objectType.Metafields); err != nil {
		return ObjectType{}, err
	}

	reqURL, err := c.client.endpoint("object-types")
	if err != nil {
		return ObjectType{}, err
	}

	var resp struct {
		ObjectType ObjectType `json:"object_type"`
	}
	if err := c.client.write(ctx, http.MethodPost, reqURL, nil, objectType, &resp); err != nil {
		return ObjectType{}, err
	}
	return resp.ObjectType, nil
}

// UpdateOne applies a sparse patch to a content type. Only keys present in
// the patch are sent.
func (c *ObjectTypesCollection) UpdateOne(ctx context.Context, slug string, patch map[string]any) (_ ObjectType, err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("object-types", slug)
	if err != nil {
		return ObjectType{}, err
	}

	var resp struct {
		ObjectType ObjectType `json:"object_type"`
	}
	if err := c.client.write(ctx, http.MethodPatch, reqURL, nil, patch, &resp); err != nil {
		return ObjectType{}, err
	}
	return resp.ObjectType, nil
}

// DeleteOne deletes a content type by slug. The API cascades the delete to
// all objects of that type; no local cascade happens here.
func (c *ObjectTypesCollection) DeleteOne(ctx context.Context, slug string) (err error) {
	defer mon.Task()(&ctx)(&err)

	reqURL, err := c.client.endpoint("object-types", slug)
	if err != nil {
		return err
	}

	return c.client.write(ctx, http.MethodDelete, reqURL, nil, nil, nil)
}
