// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

// Package middleware holds HTTP middleware for the MCP server's http
// transport.
package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewLogRequests creates middleware for logging requests.
func NewLogRequests(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ce := log.Check(zap.DebugLevel, "request")
			if ce == nil {
				next.ServeHTTP(w, r)
				return
			}

			ce.Write(
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("user-agent", r.UserAgent()),
				zap.Int64("content-length", r.ContentLength),
			)

			next.ServeHTTP(w, r)
		})
	}
}

// NewLogResponses creates middleware for logging responses.
func NewLogResponses(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rw, r)

			level := zap.DebugLevel
			if rw.status >= http.StatusInternalServerError {
				level = zap.ErrorLevel
			}

			ce := log.Check(level, "response")
			if ce == nil {
				return
			}

			ce.Write(
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("code", rw.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush forwards flushes so that streaming responses are not buffered by the
// recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
