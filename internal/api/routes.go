package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the note and flashcard endpoints on r. The batch
// routes are registered before /{id} so "batch" is never parsed as an ID.
func RegisterRoutes(r chi.Router, notes *NoteHandler, flashcards *FlashcardHandler) {
	r.Route("/notes", func(r chi.Router) {
		r.Post("/", notes.CreateNote)
		r.Get("/", notes.ListNotes)
		r.Get("/{id}", notes.GetNote)
		r.Patch("/{id}", notes.UpdateNote)
		r.Delete("/{id}", notes.DeleteNote)
	})

	r.Route("/flashcards", func(r chi.Router) {
		r.Post("/", flashcards.GenerateFlashcards)
		r.Get("/", flashcards.ListBatches)
		r.Get("/batch/{batchId}", flashcards.GetBatch)
		r.Delete("/batch/{batchId}", flashcards.DeleteBatch)
		r.Delete("/{id}", flashcards.DeleteFlashcard)
	})
}
