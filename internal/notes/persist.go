package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/iudanet/quicknotes/internal/clock"
	"github.com/iudanet/quicknotes/internal/models"
	"github.com/iudanet/quicknotes/internal/storage"
)

// Ключи в хранилище
const (
	StateKey        = "quicknotes-state"
	UsersKey        = "quicknotes-users"
	userNotesPrefix = "quicknotes-notes:"
)

// UserNotesKey returns the key holding the notes of one user.
func UserNotesKey(userID string) string {
	return userNotesPrefix + userID
}

// load restores the application state. Missing keys keep defaults, malformed
// payloads are logged and ignored.
func (s *Store) load(ctx context.Context) error {
	data, err := s.kv.Get(ctx, StateKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	// Декодируем поверх значений по умолчанию: отсутствующие поля их сохраняют
	st := models.NewAppState()
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Error("failed to decode persisted state, using defaults", "key", StateKey, "error", err)
		return nil
	}

	s.state = s.sanitize(st)

	return nil
}

// sanitize repairs a decoded state so the in-memory invariants hold.
func (s *Store) sanitize(st models.AppState) models.AppState {
	notes := make([]*models.Note, 0, len(st.Notes))
	for _, n := range st.Notes {
		if n == nil {
			continue
		}
		n.Normalize()
		if n.UpdatedAt.Before(n.CreatedAt) {
			n.UpdatedAt = n.CreatedAt
		}
		s.observe(n)
		notes = append(notes, n)
	}
	st.Notes = notes

	if st.SelectedTags == nil {
		st.SelectedTags = []string{}
	}
	st.SelectedTags = models.UniqueTags(st.SelectedTags)

	return st
}

// observe moves a monotonic clock past persisted timestamps so new mutations
// always sort after loaded ones.
func (s *Store) observe(n *models.Note) {
	if m, ok := s.clock.(*clock.Monotonic); ok {
		m.Observe(n.UpdatedAt)
	}
}

// record - одна запись хранилища, подготовленная к сохранению
type record struct {
	key   string
	name  string // для сообщений об ошибках
	value []byte
}

// save writes extra records, the session user's notes archive and the state
// record, in that order, as one unit.
func (s *Store) save(ctx context.Context, extra ...record) error {
	records := slices.Clone(extra)

	if s.state.User != nil {
		owned := make([]*models.Note, 0, len(s.state.Notes))
		for _, n := range s.state.Notes {
			if n.UserID == s.state.User.ID {
				owned = append(owned, n)
			}
		}

		data, err := json.Marshal(owned)
		if err != nil {
			return fmt.Errorf("failed to encode notes: %w", err)
		}
		records = append(records, record{key: UserNotesKey(s.state.User.ID), name: "notes", value: data})
	}

	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	records = append(records, record{key: StateKey, name: "state", value: data})

	return s.writeRecords(ctx, records)
}

// writeRecords writes records one by one. If a write fails, the records
// already written get their previous values back, so storage never keeps
// half of a mutation.
func (s *Store) writeRecords(ctx context.Context, records []record) error {
	type previous struct {
		value []byte
		found bool
	}

	prev := make([]previous, len(records))
	for i, r := range records {
		data, err := s.kv.Get(ctx, r.key)
		switch {
		case errors.Is(err, storage.ErrKeyNotFound):
		case err != nil:
			return fmt.Errorf("failed to read %s before save: %w", r.name, err)
		default:
			prev[i] = previous{value: data, found: true}
		}
	}

	for i, r := range records {
		err := s.kv.Set(ctx, r.key, r.value)
		if err == nil {
			continue
		}

		for j := i - 1; j >= 0; j-- {
			var restoreErr error
			if prev[j].found {
				restoreErr = s.kv.Set(ctx, records[j].key, prev[j].value)
			} else {
				restoreErr = s.kv.Delete(ctx, records[j].key)
				if errors.Is(restoreErr, storage.ErrKeyNotFound) {
					restoreErr = nil
				}
			}
			if restoreErr != nil {
				s.logger.Error("failed to restore record after failed save", "key", records[j].key, "error", restoreErr)
			}
		}

		return fmt.Errorf("failed to save %s: %w", r.name, err)
	}

	return nil
}

// loadUserNotes reads the notes archive of a user and merges it with the
// user's notes still present in the state record. The archive is written
// before the state record, so a process killed between the two writes leaves
// the archive newer.
func (s *Store) loadUserNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	var inState []*models.Note
	for _, n := range s.state.Notes {
		if n.UserID == userID {
			inState = append(inState, n.Clone())
		}
	}

	data, err := s.kv.Get(ctx, UserNotesKey(userID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return mergeLWW(inState, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	var decoded []*models.Note
	if err := json.Unmarshal(data, &decoded); err != nil {
		s.logger.Error("failed to decode notes, ignoring archive", "key", UserNotesKey(userID), "error", err)
		decoded = nil
	}

	archived := make([]*models.Note, 0, len(decoded))
	for _, n := range decoded {
		if n == nil || n.UserID != userID {
			continue
		}
		n.Normalize()
		s.observe(n)
		archived = append(archived, n)
	}

	return mergeLWW(archived, inState), nil
}

// loadCredentials reads the credential table. A missing table is empty.
func (s *Store) loadCredentials(ctx context.Context) ([]*models.Credential, error) {
	data, err := s.kv.Get(ctx, UsersKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []*models.Credential{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	var creds []*models.Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		s.logger.Error("failed to decode users, treating table as empty", "key", UsersKey, "error", err)
		return []*models.Credential{}, nil
	}

	out := make([]*models.Credential, 0, len(creds))
	for _, c := range creds {
		if c != nil {
			out = append(out, c)
		}
	}

	return out, nil
}

func credentialsRecord(creds []*models.Credential) (record, error) {
	data, err := json.Marshal(creds)
	if err != nil {
		return record{}, fmt.Errorf("failed to encode users: %w", err)
	}

	return record{key: UsersKey, name: "users", value: data}, nil
}
