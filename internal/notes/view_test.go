package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/quicknotes/internal/clock"
	"github.com/iudanet/quicknotes/internal/models"
	"github.com/iudanet/quicknotes/internal/storage"
)

func titles(notes []*models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func TestFilteredNotes_NoSession(t *testing.T) {
	env := newTestEnv(t)

	notes := env.store.FilteredNotes(models.ViewAll)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
	assert.Empty(t, env.store.AllTags())
}

// TestFilteredNotes_Order проверяет сортировку: закрепленные первыми, затем по убыванию updatedAt
func TestFilteredNotes_Order(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "a@x.com")

	t1, err := env.store.CreateNote(ctx, "T1", "", "")
	require.NoError(t, err)
	env.clock.Advance(time.Minute)
	_, err = env.store.CreateNote(ctx, "T2", "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"T2", "T1"}, titles(env.store.FilteredNotes(models.ViewAll)))

	env.clock.Advance(time.Minute)
	_, err = env.store.CreateNote(ctx, "T3", "", "")
	require.NoError(t, err)
	_, err = env.store.TogglePin(ctx, t1.ID)
	require.NoError(t, err)

	notes := env.store.FilteredNotes(models.ViewAll)
	assert.Equal(t, []string{"T1", "T3", "T2"}, titles(notes))

	for i := 1; i < len(notes); i++ {
		prev, cur := notes[i-1], notes[i]
		if prev.IsPinned == cur.IsPinned {
			assert.True(t, prev.UpdatedAt.After(cur.UpdatedAt))
		} else {
			assert.True(t, prev.IsPinned)
		}
	}
}

// TestFilteredNotes_TieBreak проверяет порядок заметок с одинаковым updatedAt
func TestFilteredNotes_TieBreak(t *testing.T) {
	ctx := context.Background()

	// Часы стоят на месте, id выдаются не по порядку
	ids := []string{"user", "c", "a", "b"}
	opts := testOptions(nil)
	opts.Clock = clock.NewManual(baseTime)
	opts.NewID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	s, err := New(ctx, storage.NewMemory(), opts)
	require.NoError(t, err)
	_, err = s.Register(ctx, "a@x.com", "p", "A")
	require.NoError(t, err)

	for range 3 {
		_, err := s.CreateNote(ctx, "same time", "", "")
		require.NoError(t, err)
	}

	var got []string
	for _, n := range s.FilteredNotes(models.ViewAll) {
		got = append(got, n.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestFilteredNotes_Views(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "a@x.com")

	create := func(title string) string {
		n, err := env.store.CreateNote(ctx, title, "", "")
		require.NoError(t, err)
		return n.ID
	}

	create("plain")
	pinned := create("pinned")
	archived := create("archived")
	trashed := create("trashed")
	pinnedArchived := create("pinned archived")

	_, err := env.store.TogglePin(ctx, pinned)
	require.NoError(t, err)
	_, err = env.store.ToggleArchive(ctx, archived)
	require.NoError(t, err)
	_, err = env.store.MoveToTrash(ctx, trashed)
	require.NoError(t, err)
	_, err = env.store.TogglePin(ctx, pinnedArchived)
	require.NoError(t, err)
	_, err = env.store.ToggleArchive(ctx, pinnedArchived)
	require.NoError(t, err)

	tests := []struct {
		view models.ViewMode
		want []string
	}{
		{view: models.ViewAll, want: []string{"pinned", "plain"}},
		{view: models.ViewPinned, want: []string{"pinned"}},
		{view: models.ViewArchived, want: []string{"pinned archived", "archived"}},
		{view: models.ViewTrash, want: []string{"trashed"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			assert.Equal(t, tt.want, titles(env.store.FilteredNotes(tt.view)))
		})
	}
}

func TestFilteredNotes_Search(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "a@x.com")

	_, err := env.store.CreateNote(ctx, "Groceries", "milk, eggs", "")
	require.NoError(t, err)
	env.clock.Advance(time.Second)
	meeting, err := env.store.CreateNote(ctx, "Meeting", "agenda", "")
	require.NoError(t, err)
	_, err = env.store.AddTag(ctx, meeting.ID, "Work")
	require.NoError(t, err)

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"Meeting", "Groceries"}},
		{query: "grocer", want: []string{"Groceries"}},
		{query: "EGGS", want: []string{"Groceries"}},
		{query: "work", want: []string{"Meeting"}},
		{query: "nothing", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			require.NoError(t, env.store.SetSearchQuery(ctx, tt.query))
			assert.Equal(t, tt.query, env.store.SearchQuery())
			assert.Equal(t, tt.want, titles(env.store.FilteredNotes(models.ViewAll)))
		})
	}
}

func TestFilteredNotes_SelectedTags(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "a@x.com")

	a, err := env.store.CreateNote(ctx, "a", "", "")
	require.NoError(t, err)
	b, err := env.store.CreateNote(ctx, "b", "", "")
	require.NoError(t, err)

	for _, tag := range []string{"work", "urgent"} {
		_, err = env.store.AddTag(ctx, a.ID, tag)
		require.NoError(t, err)
	}
	_, err = env.store.AddTag(ctx, b.ID, "work")
	require.NoError(t, err)

	require.NoError(t, env.store.SetSelectedTags(ctx, []string{"work", " ", "work"}))
	assert.Equal(t, []string{"work"}, env.store.SelectedTags())
	assert.ElementsMatch(t, []string{"a", "b"}, titles(env.store.FilteredNotes(models.ViewAll)))

	require.NoError(t, env.store.SetSelectedTags(ctx, []string{"work", "urgent"}))
	assert.Equal(t, []string{"a"}, titles(env.store.FilteredNotes(models.ViewAll)))

	require.NoError(t, env.store.SetSelectedTags(ctx, nil))
	assert.Len(t, env.store.FilteredNotes(models.ViewAll), 2)
}

func TestAllTags(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "a@x.com")

	a, err := env.store.CreateNote(ctx, "a", "", "")
	require.NoError(t, err)
	b, err := env.store.CreateNote(ctx, "b", "", "")
	require.NoError(t, err)
	c, err := env.store.CreateNote(ctx, "c", "", "")
	require.NoError(t, err)

	_, err = env.store.UpdateNote(ctx, a.ID, models.NoteUpdate{Tags: []string{"zeta", "alpha"}})
	require.NoError(t, err)
	_, err = env.store.UpdateNote(ctx, b.ID, models.NoteUpdate{Tags: []string{"alpha", "beta"}})
	require.NoError(t, err)
	_, err = env.store.UpdateNote(ctx, c.ID, models.NoteUpdate{Tags: []string{"trashed"}})
	require.NoError(t, err)
	_, err = env.store.MoveToTrash(ctx, c.ID)
	require.NoError(t, err)
	_, err = env.store.ToggleArchive(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "zeta"}, env.store.AllTags())
}

func TestToggleDarkMode(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	dark, err := env.store.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, env.reopen(t).DarkMode())

	dark, err = env.store.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, dark)
	assert.False(t, env.store.DarkMode())
}
