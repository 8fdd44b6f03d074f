// Package httpapi exposes proposal search, generation, and embedding
// maintenance over HTTP. All endpoints speak JSON; errors follow the
// {"error": {"message", "type"}} shape.
package httpapi
