// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

// Package errdata annotates errors with values that survive wrapping, most
// importantly the HTTP status code reported by the Cosmic API.
package errdata

import (
	"errors"

	"github.com/zeebo/errs"
)

type errSym int

const errStatusCode errSym = 1

// HTTPStatusClientClosedRequest is used when the client closes the request
// without waiting for the full answer. There's no standard for such status,
// however, nginx does define a custom one, which is common enough to warrant
// using it. See https://httpstatuses.com/499.
const HTTPStatusClientClosedRequest = 499

type errWrap struct {
	error
	key, val interface{}
}

type errWithValue interface {
	Value(key interface{}) interface{}
}

var _ errWithValue = errWrap{}
var _ errs.Namer = errWrap{}

func (e errWrap) Unwrap() error { return e.error }

func (e errWrap) Name() (string, bool) {
	for i := e.error; i != nil; i = errors.Unwrap(i) {
		if u, ok := i.(errs.Namer); ok { //nolint: errorlint // custom unwrap loop.
			if name, ok := u.Name(); ok {
				return name, true
			}
		}
	}
	return "", false
}

func (e errWrap) Value(key interface{}) interface{} {
	if e.key == key {
		return e.val
	}
	return value(e.error, key)
}

func value(err error, key interface{}) interface{} {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if u, ok := e.(errWithValue); ok { //nolint: errorlint // custom unwrap loop.
			return u.Value(key)
		}
	}
	return nil
}

// WithStatus annotates an error with an HTTP status code. If err is nil, does
// nothing.
func WithStatus(err error, statusCode int) error {
	if err == nil {
		return nil
	}
	return errWrap{error: err, key: errStatusCode, val: statusCode}
}

// GetStatus returns the most recent status code annotation on the error.
// If none is found, defValue is returned instead.
func GetStatus(err error, defValue int) int {
	if v, ok := value(err, errStatusCode).(int); ok {
		return v
	}
	return defValue
}
