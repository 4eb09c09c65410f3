// Package shared holds the HTTP helpers used by handlers and middleware:
// JSON responses, request decoding and validation, and trace IDs.
package shared
