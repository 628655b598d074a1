package notes

import (
	"context"
	"slices"
	"strings"

	"github.com/iudanet/quicknotes/internal/models"
)

// FilteredNotes returns copies of the session user's notes that match the
// view, the search query and every selected tag. Pinned notes come first,
// then the most recently updated; equal timestamps are ordered by id.
func (s *Store) FilteredNotes(view models.ViewMode) []*models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*models.Note{}
	if s.state.User == nil {
		return out
	}

	query := strings.ToLower(s.state.SearchQuery)
	for _, n := range s.state.Notes {
		if n.UserID != s.state.User.ID || !view.Matches(n) {
			continue
		}
		if query != "" && !matchesQuery(n, query) {
			continue
		}
		if !hasAllTags(n, s.state.SelectedTags) {
			continue
		}
		out = append(out, n.Clone())
	}

	slices.SortFunc(out, compareNotes)

	return out
}

// matchesQuery reports whether the lower-cased query occurs in the title,
// the content or any tag.
func matchesQuery(n *models.Note, query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) ||
		strings.Contains(strings.ToLower(n.Content), query) {
		return true
	}
	return slices.ContainsFunc(n.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), query)
	})
}

func hasAllTags(n *models.Note, tags []string) bool {
	for _, t := range tags {
		if !n.HasTag(t) {
			return false
		}
	}
	return true
}

func compareNotes(a, b *models.Note) int {
	if a.IsPinned != b.IsPinned {
		if a.IsPinned {
			return -1
		}
		return 1
	}
	if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// AllTags returns the sorted distinct tags of the session user's notes that
// are not in trash.
func (s *Store) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := []string{}
	if s.state.User == nil {
		return tags
	}

	for _, n := range s.state.Notes {
		if n.UserID != s.state.User.ID || n.IsInTrash {
			continue
		}
		tags = append(tags, n.Tags...)
	}

	slices.Sort(tags)

	return slices.Compact(tags)
}

// SetSearchQuery replaces the search text.
func (s *Store) SetSearchQuery(ctx context.Context, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(st *models.AppState) error {
		st.SearchQuery = query
		return nil
	})
}

// SetSelectedTags replaces the tag filter. Blank entries are dropped.
func (s *Store) SetSelectedTags(ctx context.Context, tags []string) error {
	selected := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			selected = append(selected, t)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(st *models.AppState) error {
		st.SelectedTags = models.UniqueTags(selected)
		return nil
	})
}

// ToggleDarkMode flips the theme flag and returns the new value.
func (s *Store) ToggleDarkMode(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate(ctx, func(st *models.AppState) error {
		st.DarkMode = !st.DarkMode
		return nil
	})

	return s.state.DarkMode, err
}
