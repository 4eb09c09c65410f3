// Package domain contains the core business entities of the flashcard
// backend: notes, the flashcards generated from them, the batches those
// flashcards are grouped into, and the demo user that owns them.
//
// Entities are plain structs with New* constructors and Validate methods.
// They have no knowledge of storage, transport, or the language model.
package domain
