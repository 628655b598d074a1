package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/iudanet/quicknotes/internal/export"
	"github.com/iudanet/quicknotes/internal/models"
	"github.com/iudanet/quicknotes/internal/notes"
)

var noteTmpl = template.Must(template.New("note").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(noteTemplate))

// stringList собирает повторяющийся флаг
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (c *Cli) runNew(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	color := fs.String("color", "", "palette color name or value")
	var tags stringList
	fs.Var(&tags, "tag", "tag to add (repeatable)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	var title, content string
	rest := fs.Args()
	if len(rest) > 0 {
		title = rest[0]
	}
	if len(rest) > 1 {
		content = strings.Join(rest[1:], " ")
	}

	if len(rest) == 0 {
		var err error
		if title, err = c.promptIfEmpty("", "Title: "); err != nil {
			return err
		}
		if content, err = c.promptIfEmpty("", "Content: "); err != nil {
			return err
		}
	}

	note, err := c.store.CreateNote(ctx, title, content, *color)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	for _, tag := range tags {
		if note, err = c.store.AddTag(ctx, note.ID, tag); err != nil {
			return fmt.Errorf("failed to add tag %q: %w", tag, err)
		}
	}

	c.io.Println("✓ Note created")
	c.io.Printf("ID: %s\n", note.ID)

	return nil
}

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: quicknotes edit <id> [--title T] [--content C] [--color C]")
	}
	id := args[0]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new content")
	color := fs.String("color", "", "new color")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	var update models.NoteUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			update.Title = title
		case "content":
			update.Content = content
		case "color":
			update.Color = color
		}
	})

	// Без флагов редактируем интерактивно, пустой ввод оставляет поле как есть
	if fs.NFlag() == 0 {
		current, err := c.store.Note(id)
		if err != nil {
			return err
		}
		for _, field := range []struct {
			prompt string
			dst    **string
		}{
			{prompt: fmt.Sprintf("Title [%s]: ", current.Title), dst: &update.Title},
			{prompt: "Content [unchanged]: ", dst: &update.Content},
			{prompt: fmt.Sprintf("Color [%s]: ", models.ColorFor(current.Color).Name), dst: &update.Color},
		} {
			input, err := c.io.ReadInput(field.prompt)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			if input != "" {
				*field.dst = &input
			}
		}
	}

	note, err := c.store.UpdateNote(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	c.io.Printf("✓ Note %s updated\n", note.ID)

	return nil
}

type noteView struct {
	*models.Note
	ColorName string
	Shade     string
	Flags     []string
	Created   string
	Updated   string
}

func (c *Cli) runShow(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: quicknotes show <id>")
	}

	note, err := c.store.Note(args[0])
	if err != nil {
		return err
	}

	color := models.ColorFor(note.Color)
	view := noteView{
		Note:      note,
		ColorName: color.Name,
		Shade:     color.Shade(c.store.DarkMode()),
		Flags:     noteFlags(note),
		Created:   note.CreatedAt.In(c.loc).Format(export.TimeLayout),
		Updated:   note.UpdatedAt.In(c.loc).Format(export.TimeLayout),
	}

	return noteTmpl.Execute(c.io, view)
}

func noteFlags(n *models.Note) []string {
	var flags []string
	if n.IsPinned {
		flags = append(flags, "pinned")
	}
	if n.IsArchived {
		flags = append(flags, "archived")
	}
	if n.IsInTrash {
		flags = append(flags, "trash")
	}
	return flags
}

func (c *Cli) runList(args []string) error {
	var mode string
	if len(args) > 0 {
		mode = args[0]
	}

	view, err := models.ParseViewMode(mode)
	if err != nil {
		return fmt.Errorf("%w. Use: all, pinned, archived or trash", err)
	}

	return c.printNotes(view)
}

func (c *Cli) printNotes(view models.ViewMode) error {
	if c.store.Session() == nil {
		return notes.ErrNotAuthenticated
	}

	list := c.store.FilteredNotes(view)

	c.io.Printf("=== Notes (%s) ===\n", view)
	c.printFilters()
	c.io.Println()

	if len(list) == 0 {
		c.io.Println("No notes found.")
		return nil
	}

	for _, n := range list {
		marker := " "
		if n.IsPinned {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s  %-30s  %s", marker, n.ID, truncate(n.Title, 30), n.UpdatedAt.In(c.loc).Format(export.TimeLayout))
		if len(n.Tags) > 0 {
			line += "  #" + strings.Join(n.Tags, " #")
		}
		c.io.Println(line)
	}

	c.io.Println()
	c.io.Printf("Total: %d note(s)\n", len(list))

	return nil
}

func (c *Cli) printFilters() {
	if q := c.store.SearchQuery(); q != "" {
		c.io.Printf("Search: %q\n", q)
	}
	if tags := c.store.SelectedTags(); len(tags) > 0 {
		c.io.Printf("Tags:   %s\n", strings.Join(tags, ", "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if err := c.store.SetSearchQuery(ctx, strings.Join(args, " ")); err != nil {
		return fmt.Errorf("failed to set search query: %w", err)
	}
	return c.printNotes(models.ViewAll)
}

func (c *Cli) runFilter(ctx context.Context, args []string) error {
	if err := c.store.SetSelectedTags(ctx, args); err != nil {
		return fmt.Errorf("failed to set tag filter: %w", err)
	}
	return c.printNotes(models.ViewAll)
}

func (c *Cli) runTags() error {
	if c.store.Session() == nil {
		return notes.ErrNotAuthenticated
	}

	tags := c.store.AllTags()
	if len(tags) == 0 {
		c.io.Println("No tags.")
		return nil
	}
	for _, t := range tags {
		c.io.Println(t)
	}
	return nil
}

func (c *Cli) runTag(ctx context.Context, args []string) error {
	usage := "Usage: quicknotes tag add|rm <id> <tag>"
	if len(args) < 3 {
		return fmt.Errorf("missing arguments. %s", usage)
	}

	action, id, tag := args[0], args[1], strings.Join(args[2:], " ")

	var (
		note *models.Note
		err  error
	)
	switch action {
	case "add":
		note, err = c.store.AddTag(ctx, id, tag)
	case "rm", "remove":
		note, err = c.store.RemoveTag(ctx, id, tag)
	default:
		return fmt.Errorf("unknown tag action: %s. %s", action, usage)
	}
	if err != nil {
		return fmt.Errorf("failed to update tags: %w", err)
	}

	if len(note.Tags) == 0 {
		c.io.Println("Tags: (none)")
	} else {
		c.io.Printf("Tags: %s\n", strings.Join(note.Tags, ", "))
	}
	return nil
}

// runNoteAction выполняет операцию над одной заметкой и печатает ее флаги
func (c *Cli) runNoteAction(ctx context.Context, args []string, name string, op func(context.Context, string) (*models.Note, error)) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: quicknotes %s <id>", name)
	}

	note, err := op(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to %s note: %w", name, err)
	}

	flags := noteFlags(note)
	if len(flags) == 0 {
		flags = []string{"active"}
	}
	c.io.Printf("✓ %s: %s\n", note.Title, strings.Join(flags, ", "))

	return nil
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: quicknotes delete <id>")
	}

	if err := c.store.PermanentlyDeleteNote(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	c.io.Println("✓ Note deleted permanently")

	return nil
}

func (c *Cli) runTheme(ctx context.Context) error {
	dark, err := c.store.ToggleDarkMode(ctx)
	if err != nil {
		return fmt.Errorf("failed to toggle theme: %w", err)
	}

	c.io.Printf("Theme: %s\n", themeName(dark))

	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
