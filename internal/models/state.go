package models

import (
	"errors"
	"fmt"
)

// ErrInvalidViewMode is returned by ParseViewMode for unknown input.
var ErrInvalidViewMode = errors.New("invalid view mode")

// ViewMode - именованный предикат над заметками.
type ViewMode string

const (
	ViewAll      ViewMode = "all"
	ViewPinned   ViewMode = "pinned"
	ViewArchived ViewMode = "archived"
	ViewTrash    ViewMode = "trash"
)

// ViewModes lists every supported view mode.
var ViewModes = []ViewMode{ViewAll, ViewPinned, ViewArchived, ViewTrash}

// ParseViewMode converts user input into a ViewMode. Empty input means ViewAll.
func ParseViewMode(s string) (ViewMode, error) {
	if s == "" {
		return ViewAll, nil
	}
	for _, m := range ViewModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
}

// Matches reports whether n belongs to the view. Ownership is checked by the caller.
func (m ViewMode) Matches(n *Note) bool {
	switch m {
	case ViewPinned:
		return n.IsPinned && !n.IsInTrash && !n.IsArchived
	case ViewArchived:
		return n.IsArchived && !n.IsInTrash
	case ViewTrash:
		return n.IsInTrash
	default:
		return !n.IsInTrash && !n.IsArchived
	}
}

// AppState - полное состояние приложения, сериализуется целиком при каждой мутации.
type AppState struct {
	User         *User    `json:"user"`
	Notes        []*Note  `json:"notes"`
	SearchQuery  string   `json:"searchQuery"`
	SelectedTags []string `json:"selectedTags"`
	DarkMode     bool     `json:"darkMode"`
}

// NewAppState returns the default state used before anything is loaded.
func NewAppState() AppState {
	return AppState{
		Notes:        []*Note{},
		SelectedTags: []string{},
	}
}

// Clone создает глубокую копию состояния
func (s AppState) Clone() AppState {
	c := s
	c.User = s.User.Clone()
	c.Notes = make([]*Note, len(s.Notes))
	for i, n := range s.Notes {
		c.Notes[i] = n.Clone()
	}
	c.SelectedTags = append([]string{}, s.SelectedTags...)
	return c
}
