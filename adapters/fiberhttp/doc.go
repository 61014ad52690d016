// Package fiberhttp mounts the post deletion handler on a fiber app.
//
// Middleware must run before page handlers. A successful deletion redirects
// and stops the chain; a failed one sets the redirect and still calls the
// next handler.
package fiberhttp
