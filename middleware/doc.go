// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides the shared HTTP plumbing: request logging,
CORS, JSON body parsing and response writing, and the translation of
engine sentinel errors into HTTP statuses with stable error codes.

Handlers call middleware.EngineError(w, err) for any error coming out of
the engine; ad-hoc request problems (bad JSON, missing headers) use
middleware.ErrorResponse directly.
*/
package middleware
