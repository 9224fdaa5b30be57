// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package cosmic

import (
	"net/url"
	"time"

	"github.com/zeebo/errs"

	"github.com/cosmicjs/mcp-server/pkg/backoff"
)

// Error wraps all the errors returned when talking to the Cosmic API.
var Error = errs.Class("cosmic")

// ErrWriteKeyMissing is returned by write operations when the client has no
// write key configured. The request never reaches the network.
var ErrWriteKeyMissing = Error.New("write operations require a write credential")

// DefaultBaseURL is the production Cosmic API endpoint.
const DefaultBaseURL = "https://api.cosmicjs.com"

// Config describes configuration necessary to interact with the Cosmic API.
type Config struct {
	// BaseURL is the API endpoint, without the /v3 prefix.
	BaseURL string

	// BucketSlug identifies the bucket all requests are scoped to.
	BucketSlug string

	// ReadKey authorizes read operations.
	ReadKey string

	// WriteKey authorizes write operations. Optional; without it the client
	// is read-only and write calls fail before reaching the network.
	WriteKey string

	// Timeout bounds a single request attempt.
	Timeout time.Duration

	BackOff backoff.ExponentialBackoff
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.BucketSlug == "" {
		return Error.New("bucket slug is missing")
	}
	if c.ReadKey == "" {
		return Error.New("read key is missing")
	}
	reqURL, err := url.Parse(c.baseURL())
	if err != nil {
		return Error.Wrap(err)
	}
	if reqURL.Scheme != "http" && reqURL.Scheme != "https" {
		return Error.New("unexpected scheme found in endpoint parameter %s", reqURL.Scheme)
	}
	if reqURL.Host == "" {
		return Error.New("host missing in parameter %s", reqURL.Host)
	}
	return nil
}

func (c Config) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return 30 * time.Second
	}
	return c.Timeout
}
