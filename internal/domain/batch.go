package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// UnknownNoteTitle labels batches whose note no longer resolves.
const UnknownNoteTitle = "Unknown Note"

// Batch is the set of flashcards that share one batch ID. It is derived from
// flashcard rows and has no storage of its own.
type Batch struct {
	ID        string
	NoteID    *uuid.UUID
	NoteTitle string
	CreatedAt time.Time
	Cards     []*Flashcard
}

// BatchEntry is one flashcard row joined with the title of its note.
// NoteTitle is nil when the card has no note or the note is gone.
type BatchEntry struct {
	Card      *Flashcard
	NoteTitle *string
}

// NewBatch builds a Batch from cards that were created together.
func NewBatch(batchID string, noteID *uuid.UUID, noteTitle string, cards []*Flashcard) *Batch {
	b := &Batch{
		ID:        batchID,
		NoteID:    noteID,
		NoteTitle: noteTitle,
		Cards:     cards,
	}
	if len(cards) > 0 {
		b.CreatedAt = cards[0].CreatedAt
	}
	return b
}

// GroupIntoBatches groups entries by batch ID. Entries are expected newest
// first; a batch takes its note and timestamp from the first entry seen for
// it. The result is sorted newest batch first, and cards keep input order.
func GroupIntoBatches(entries []BatchEntry) []*Batch {
	index := make(map[string]*Batch)
	batches := make([]*Batch, 0)

	for _, entry := range entries {
		card := entry.Card
		if card == nil {
			continue
		}

		b, ok := index[card.BatchID]
		if !ok {
			title := UnknownNoteTitle
			if entry.NoteTitle != nil {
				title = *entry.NoteTitle
			}
			b = &Batch{
				ID:        card.BatchID,
				NoteID:    card.NoteID,
				NoteTitle: title,
				CreatedAt: card.CreatedAt,
			}
			index[card.BatchID] = b
			batches = append(batches, b)
		}
		b.Cards = append(b.Cards, card)
	}

	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].CreatedAt.After(batches[j].CreatedAt)
	})

	return batches
}
