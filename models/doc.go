// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON request, response, and domain types shared
by the HTTP handlers. Poll phase strings in Poll.Phase come from the engine
package, which owns the lifecycle state machine.

# Error Responses

All error payloads share one shape:

	{"error": "Conflict", "code": "already_voted", "message": "..."}

The code field is a stable machine-readable identifier; the message is for
humans and may change.
*/
package models
