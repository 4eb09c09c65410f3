// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts the note and flashcard services to the
// JSON API mounted under /api. JSON field names are camelCase.
package api
