package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/store"
)

// calls counts invocations per method name.
type calls struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *calls) record(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[method]++
}

// Calls returns how many times method was invoked.
func (c *calls) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[method]
}

// MockNoteStore implements store.NoteStore.
type MockNoteStore struct {
	calls
	CreateFn  func(ctx context.Context, note *domain.Note) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	ListFn    func(ctx context.Context) ([]*domain.Note, error)
	UpdateFn  func(ctx context.Context, note *domain.Note) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
}

var _ store.NoteStore = (*MockNoteStore)(nil)

func (m *MockNoteStore) Create(ctx context.Context, note *domain.Note) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, note)
	}
	return nil
}

func (m *MockNoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrNoteNotFound
}

func (m *MockNoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Note{}, nil
}

func (m *MockNoteStore) Update(ctx context.Context, note *domain.Note) error {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, note)
	}
	return nil
}

func (m *MockNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// WithTx returns the mock itself.
func (m *MockNoteStore) WithTx(*sql.Tx) store.NoteStore { return m }

// MockFlashcardStore implements store.FlashcardStore.
type MockFlashcardStore struct {
	calls
	CreateMultipleFn func(ctx context.Context, cards []*domain.Flashcard) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	DeleteByBatchFn  func(ctx context.Context, batchID string) (int64, error)
	DeleteByNoteFn   func(ctx context.Context, noteID uuid.UUID) (int64, error)
	ListWithNotesFn  func(ctx context.Context) ([]domain.BatchEntry, error)
	ListByBatchFn    func(ctx context.Context, batchID string) ([]domain.BatchEntry, error)
}

var _ store.FlashcardStore = (*MockFlashcardStore)(nil)

func (m *MockFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	m.record("CreateMultiple")
	if m.CreateMultipleFn != nil {
		return m.CreateMultipleFn(ctx, cards)
	}
	return nil
}

func (m *MockFlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockFlashcardStore) DeleteByBatch(ctx context.Context, batchID string) (int64, error) {
	m.record("DeleteByBatch")
	if m.DeleteByBatchFn != nil {
		return m.DeleteByBatchFn(ctx, batchID)
	}
	return 0, nil
}

func (m *MockFlashcardStore) DeleteByNote(ctx context.Context, noteID uuid.UUID) (int64, error) {
	m.record("DeleteByNote")
	if m.DeleteByNoteFn != nil {
		return m.DeleteByNoteFn(ctx, noteID)
	}
	return 0, nil
}

func (m *MockFlashcardStore) ListWithNotes(ctx context.Context) ([]domain.BatchEntry, error) {
	m.record("ListWithNotes")
	if m.ListWithNotesFn != nil {
		return m.ListWithNotesFn(ctx)
	}
	return nil, nil
}

func (m *MockFlashcardStore) ListByBatch(ctx context.Context, batchID string) ([]domain.BatchEntry, error) {
	m.record("ListByBatch")
	if m.ListByBatchFn != nil {
		return m.ListByBatchFn(ctx, batchID)
	}
	return nil, nil
}

// WithTx returns the mock itself.
func (m *MockFlashcardStore) WithTx(*sql.Tx) store.FlashcardStore { return m }

// MockUserStore implements store.UserStore.
type MockUserStore struct {
	calls
	EnsureByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) EnsureByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.record("EnsureByUsername")
	if m.EnsureByUsernameFn != nil {
		return m.EnsureByUsernameFn(ctx, username)
	}
	return domain.NewUser(username)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

// Transactor implements store.Transactor by calling fn with a nil *sql.Tx.
// Pair it with mocks whose WithTx ignores the transaction.
type Transactor struct {
	calls
	// Err, when set, is returned instead of running fn.
	Err error
}

var _ store.Transactor = (*Transactor)(nil)

func (t *Transactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	t.record("RunInTransaction")
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx, nil)
}
