// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to handler methods using the standard
library ServeMux with method and path patterns.

All poll routes key on the numeric {id} path segment; identity-bearing
routes additionally read X-Caller-Address, and the oracle callback reads
X-Oracle-Key. Every route is wrapped with request logging.
*/
package router
