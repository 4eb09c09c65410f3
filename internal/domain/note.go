package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultNoteTitle is used whenever a note is saved without a title.
const DefaultNoteTitle = "Untitled Note"

// Note is a block of source text that flashcards are generated from.
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	UserID    *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNote creates a new Note owned by userID. A blank title is replaced by
// DefaultNoteTitle. Returns an error if validation fails.
func NewNote(userID *uuid.UUID, title, content string) (*Note, error) {
	now := time.Now().UTC()
	note := &Note{
		ID:        uuid.New(),
		Title:     NormalizeTitle(title),
		Content:   content,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNoteID
	}

	if strings.TrimSpace(n.Content) == "" {
		return ErrEmptyContent
	}

	return nil
}

// HasContent reports whether the note carries text the generator can use.
func (n *Note) HasContent() bool {
	return strings.TrimSpace(n.Content) != ""
}

// Apply updates the title and/or content. Nil arguments leave the field
// untouched. At least one must be non-nil.
func (n *Note) Apply(title, content *string) error {
	if title == nil && content == nil {
		return ErrNoNoteChanges
	}

	if content != nil {
		if strings.TrimSpace(*content) == "" {
			return ErrEmptyContent
		}
		n.Content = *content
	}

	if title != nil {
		n.Title = NormalizeTitle(*title)
	}

	n.UpdatedAt = time.Now().UTC()
	return nil
}

// NormalizeTitle trims the title and substitutes DefaultNoteTitle when
// nothing remains.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultNoteTitle
	}
	return title
}
