package models

import (
	"slices"
	"strings"
	"time"
)

// DefaultTitle используется, когда заголовок заметки пустой.
const DefaultTitle = "Untitled"

// Note представляет заметку пользователя.
// Флаги IsPinned, IsArchived и IsInTrash независимы, но корзина
// исключает закрепление и архив (см. Normalize).
type Note struct {
	CreatedAt  time.Time  `json:"createdAt"`          // время создания, не меняется
	UpdatedAt  time.Time  `json:"updatedAt"`          // обновляется при каждой мутации
	Reminder   *time.Time `json:"reminder,omitempty"` // объявлено, но пока не используется
	ID         string     `json:"id"`                 // UUID заметки
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Color      string     `json:"color"`  // значение из палитры (светлый вариант)
	UserID     string     `json:"userId"` // владелец заметки
	Tags       []string   `json:"tags"`   // без дубликатов, порядок добавления сохраняется
	IsPinned   bool       `json:"isPinned"`
	IsArchived bool       `json:"isArchived"`
	IsInTrash  bool       `json:"isInTrash"`
}

// NoteUpdate описывает частичное обновление заметки.
// nil означает "поле не меняется".
type NoteUpdate struct {
	Title      *string
	Content    *string
	Color      *string
	Tags       []string // nil - без изменений, пустой срез - очистить теги
	IsPinned   *bool
	IsArchived *bool
	IsInTrash  *bool
	Reminder   *time.Time
}

// Apply merges the present fields of u into n. It does not touch UpdatedAt.
func (u NoteUpdate) Apply(n *Note) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Color != nil {
		n.Color = *u.Color
	}
	if u.Tags != nil {
		n.Tags = slices.Clone(u.Tags)
	}
	if u.IsPinned != nil {
		n.IsPinned = *u.IsPinned
	}
	if u.IsArchived != nil {
		n.IsArchived = *u.IsArchived
	}
	if u.IsInTrash != nil {
		n.IsInTrash = *u.IsInTrash
	}
	if u.Reminder != nil {
		r := *u.Reminder
		n.Reminder = &r
	}
}

// Normalize re-establishes the note invariants: a trashed note is neither
// pinned nor archived, tags hold no duplicates, and a blank title falls back
// to DefaultTitle.
func (n *Note) Normalize() {
	if n.IsInTrash {
		n.IsPinned = false
		n.IsArchived = false
	}
	n.Tags = UniqueTags(n.Tags)
	if strings.TrimSpace(n.Title) == "" {
		n.Title = DefaultTitle
	}
}

// HasTag reports whether the note carries tag (exact match).
func (n *Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Clone создает глубокую копию заметки
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = slices.Clone(n.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if n.Reminder != nil {
		r := *n.Reminder
		c.Reminder = &r
	}
	return &c
}

// UniqueTags returns tags with later duplicates removed, keeping first-seen order.
func UniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
