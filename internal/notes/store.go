// Package notes implements the note store: the single owner of the session,
// the note collection, the view filters and the theme flag. Every mutation
// is applied in memory and then the whole state is written to the key-value
// store before the call returns.
package notes

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/quicknotes/internal/clock"
	"github.com/iudanet/quicknotes/internal/crypto"
	"github.com/iudanet/quicknotes/internal/models"
	"github.com/iudanet/quicknotes/internal/storage"
)

// Options configures a Store. Zero values select the defaults.
type Options struct {
	Clock  clock.Clock    // источник времени; по умолчанию монотонные системные часы
	Hasher *crypto.Hasher // хеширование паролей; по умолчанию crypto.DefaultParams
	Logger *slog.Logger   // по умолчанию slog.Default()
	NewID  func() string  // генератор id; по умолчанию uuid
}

// Store holds the application state and funnels every change through typed
// operations.
type Store struct {
	kv     storage.KeyValue
	clock  clock.Clock
	hasher *crypto.Hasher
	logger *slog.Logger
	newID  func() string
	state  models.AppState
	mu     sync.Mutex
}

// New creates a Store on top of kv and restores the persisted state.
// A malformed persisted state is logged and replaced by defaults; only
// storage read failures are returned.
func New(ctx context.Context, kv storage.KeyValue, opts Options) (*Store, error) {
	s := &Store{
		kv:     kv,
		clock:  opts.Clock,
		hasher: opts.Hasher,
		logger: opts.Logger,
		newID:  opts.NewID,
		state:  models.NewAppState(),
	}

	if s.clock == nil {
		s.clock = clock.NewMonotonic(clock.System{})
	}
	if s.hasher == nil {
		s.hasher = crypto.NewHasher(crypto.DefaultParams)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// State returns a deep copy of the whole application state.
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Session returns the session user, or nil when nobody is logged in.
func (s *Store) Session() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.User.Clone()
}

// DarkMode reports the theme flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.DarkMode
}

// SearchQuery returns the active search text.
func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.SearchQuery
}

// SelectedTags returns the active tag filter.
func (s *Store) SelectedTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string{}, s.state.SelectedTags...)
}

// mutate applies fn to the state and persists the result. On any error the
// in-memory state is rolled back, so memory never runs ahead of storage.
// extra records are written in the same unit, before the state.
// Caller must hold s.mu.
func (s *Store) mutate(ctx context.Context, fn func(st *models.AppState) error, extra ...record) error {
	prev := s.state.Clone()

	if err := fn(&s.state); err != nil {
		s.state = prev
		return err
	}

	if err := s.save(ctx, extra...); err != nil {
		s.state = prev
		return err
	}

	return nil
}
