// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package tools

import "github.com/cosmicjs/mcp-server/pkg/cosmic"

// ObjectsListResponse is a response from the cosmic_objects_list tool.
type ObjectsListResponse struct {
	Objects []cosmic.Object `json:"objects"`
	Count   int             `json:"count"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Skip    int             `json:"skip"`
}

// ObjectResponse is a response carrying a single content object, returned by
// the cosmic_objects_get, cosmic_objects_create and cosmic_objects_update tools.
type ObjectResponse struct {
	Summary string        `json:"summary,omitempty"`
	Object  cosmic.Object `json:"object"`
}

// DeleteResponse is a response from the delete tools.
type DeleteResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// MediaListResponse is a response from the cosmic_media_list tool.
type MediaListResponse struct {
	Media []cosmic.Media `json:"media"`
	Count int            `json:"count"`
	Total int            `json:"total"`
	Limit int            `json:"limit"`
	Skip  int            `json:"skip"`
}

// MediaResponse is a response carrying a single media asset, returned by the
// cosmic_media_get and cosmic_media_upload tools.
type MediaResponse struct {
	Summary string       `json:"summary,omitempty"`
	Media   cosmic.Media `json:"media"`
}

// TypesListResponse is a response from the cosmic_types_list tool.
type TypesListResponse struct {
	ObjectTypes []cosmic.ObjectType `json:"object_types"`
	Count       int                 `json:"count"`
}

// TypeResponse is a response carrying a single content type, returned by the
// cosmic_types_get, cosmic_types_create and cosmic_types_update tools.
type TypeResponse struct {
	Summary    string            `json:"summary,omitempty"`
	ObjectType cosmic.ObjectType `json:"object_type"`
}

// GenerateTextResponse is a response from the cosmic_ai_generate_text tool.
type GenerateTextResponse struct {
	Text  string         `json:"text"`
	Model string         `json:"model"`
	Usage cosmic.AIUsage `json:"usage"`
}

// GenerateImageResponse is a response from the cosmic_ai_generate_image tool.
type GenerateImageResponse struct {
	Summary       string       `json:"summary"`
	Media         cosmic.Media `json:"media"`
	RevisedPrompt string       `json:"revised_prompt,omitempty"`
}

// GenerateVideoResponse is a response from the cosmic_ai_generate_video tool.
type GenerateVideoResponse struct {
	Summary string         `json:"summary"`
	Media   cosmic.Media   `json:"media"`
	Usage   cosmic.AIUsage `json:"usage"`
}
