package notes

import (
	"context"
	"slices"
	"strings"

	"github.com/iudanet/quicknotes/internal/models"
	"github.com/iudanet/quicknotes/internal/validation"
)

// resolveColor maps a palette value or name onto the stored light value.
// Empty input selects the default color.
func resolveColor(color string) (string, error) {
	if strings.TrimSpace(color) == "" {
		return models.DefaultColor, nil
	}
	c, ok := models.LookupColor(color)
	if !ok {
		return "", ErrInvalidColor
	}
	return c.Value, nil
}

// owned returns the index of the session user's note with id.
// Caller must hold s.mu.
func (s *Store) owned(id string) (int, error) {
	if s.state.User == nil {
		return -1, ErrNotAuthenticated
	}

	userID := s.state.User.ID
	idx := slices.IndexFunc(s.state.Notes, func(n *models.Note) bool {
		return n.ID == id && n.UserID == userID
	})
	if idx < 0 {
		return -1, ErrNoteNotFound
	}

	return idx, nil
}

// change applies fn to an owned note, re-establishes the note invariants,
// refreshes UpdatedAt and persists. It returns a copy of the changed note.
func (s *Store) change(ctx context.Context, id string, fn func(n *models.Note) error) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.owned(id)
	if err != nil {
		return nil, err
	}

	err = s.mutate(ctx, func(st *models.AppState) error {
		n := st.Notes[idx]
		if err := fn(n); err != nil {
			return err
		}
		n.Normalize()
		n.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.state.Notes[idx].Clone(), nil
}

// Note returns a copy of the session user's note with id.
func (s *Store) Note(id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.owned(id)
	if err != nil {
		return nil, err
	}

	return s.state.Notes[idx].Clone(), nil
}

// CreateNote adds a note owned by the session user to the front of the
// collection.
func (s *Store) CreateNote(ctx context.Context, title, content, color string) (*models.Note, error) {
	value, err := resolveColor(color)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return nil, ErrNotAuthenticated
	}

	now := s.clock.Now()
	note := &models.Note{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		Color:     value,
		Tags:      []string{},
		UserID:    s.state.User.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	note.Normalize()

	err = s.mutate(ctx, func(st *models.AppState) error {
		st.Notes = append([]*models.Note{note}, st.Notes...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("note created", "note_id", note.ID)

	return note.Clone(), nil
}

// UpdateNote merges the present fields of u into the note.
func (s *Store) UpdateNote(ctx context.Context, id string, u models.NoteUpdate) (*models.Note, error) {
	if u.Color != nil {
		value, err := resolveColor(*u.Color)
		if err != nil {
			return nil, err
		}
		u.Color = &value
	}

	if u.Tags != nil {
		tags := make([]string, 0, len(u.Tags))
		for _, t := range u.Tags {
			t = strings.TrimSpace(t)
			if err := validation.ValidateTag(t); err != nil {
				return nil, invalid(err)
			}
			tags = append(tags, t)
		}
		u.Tags = tags
	}

	return s.change(ctx, id, func(n *models.Note) error {
		u.Apply(n)
		return nil
	})
}

// DeleteNote removes the note entirely.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.owned(id)
	if err != nil {
		return err
	}

	return s.mutate(ctx, func(st *models.AppState) error {
		st.Notes = slices.Delete(st.Notes, idx, idx+1)
		return nil
	})
}

// PermanentlyDeleteNote removes the note entirely. It is the trash view's
// name for DeleteNote.
func (s *Store) PermanentlyDeleteNote(ctx context.Context, id string) error {
	return s.DeleteNote(ctx, id)
}

// RestoreNote brings a note back from trash or archive.
func (s *Store) RestoreNote(ctx context.Context, id string) (*models.Note, error) {
	return s.change(ctx, id, func(n *models.Note) error {
		n.IsInTrash = false
		n.IsArchived = false
		return nil
	})
}

// TogglePin flips the pinned flag. Trashed notes cannot be pinned.
func (s *Store) TogglePin(ctx context.Context, id string) (*models.Note, error) {
	return s.change(ctx, id, func(n *models.Note) error {
		if n.IsInTrash {
			return ErrNoteInTrash
		}
		n.IsPinned = !n.IsPinned
		return nil
	})
}

// ToggleArchive flips the archived flag and takes the note out of trash.
func (s *Store) ToggleArchive(ctx context.Context, id string) (*models.Note, error) {
	return s.change(ctx, id, func(n *models.Note) error {
		n.IsArchived = !n.IsArchived
		n.IsInTrash = false
		return nil
	})
}

// MoveToTrash soft-deletes the note.
func (s *Store) MoveToTrash(ctx context.Context, id string) (*models.Note, error) {
	return s.change(ctx, id, func(n *models.Note) error {
		n.IsInTrash = true
		n.IsArchived = false
		n.IsPinned = false
		return nil
	})
}

// AddTag appends tag to the note. An existing tag leaves the note untouched.
func (s *Store) AddTag(ctx context.Context, id, tag string) (*models.Note, error) {
	tag = strings.TrimSpace(tag)
	if err := validation.ValidateTag(tag); err != nil {
		return nil, invalid(err)
	}

	n, err := s.Note(id)
	if err != nil {
		return nil, err
	}
	if n.HasTag(tag) {
		return n, nil
	}

	return s.change(ctx, id, func(n *models.Note) error {
		n.Tags = append(n.Tags, tag)
		return nil
	})
}

// RemoveTag removes every occurrence of tag. A missing tag leaves the note
// untouched.
func (s *Store) RemoveTag(ctx context.Context, id, tag string) (*models.Note, error) {
	tag = strings.TrimSpace(tag)

	n, err := s.Note(id)
	if err != nil {
		return nil, err
	}
	if !n.HasTag(tag) {
		return n, nil
	}

	return s.change(ctx, id, func(n *models.Note) error {
		n.Tags = slices.DeleteFunc(n.Tags, func(t string) bool { return t == tag })
		return nil
	})
}
