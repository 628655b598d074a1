// Package cli implements the quicknotes command-line front end on top of
// the note store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/iudanet/quicknotes/internal/config"
	"github.com/iudanet/quicknotes/internal/iocli"
	"github.com/iudanet/quicknotes/internal/notes"
)

// EnvPassword задает пароль учетной записи
const EnvPassword = "QUICKNOTES_PASSWORD"

// ErrUnknownCommand is returned by Run for an unsupported command.
var ErrUnknownCommand = errors.New("unknown command")

type Cli struct {
	io     iocli.IO
	store  *notes.Store
	cfg    *config.Config
	logger *slog.Logger
	getenv func(string) string
	loc    *time.Location
}

func New(io iocli.IO, store *notes.Store, cfg *config.Config, logger *slog.Logger) *Cli {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cli{
		io:     io,
		store:  store,
		cfg:    cfg,
		logger: logger,
		getenv: os.Getenv,
		loc:    time.Local,
	}
}

// Run executes one command. args[0] is the command name.
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		PrintUsage(c.io)
		return fmt.Errorf("missing command")
	}

	command, rest := args[0], args[1:]

	var err error
	switch command {
	case "register":
		err = c.runRegister(ctx, rest)
	case "login":
		err = c.runLogin(ctx, rest)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus()
	case "profile":
		err = c.runProfile(ctx, rest)
	case "passwd":
		err = c.runPasswd(ctx)
	case "new":
		err = c.runNew(ctx, rest)
	case "edit":
		err = c.runEdit(ctx, rest)
	case "show":
		err = c.runShow(rest)
	case "list":
		err = c.runList(rest)
	case "search":
		err = c.runSearch(ctx, rest)
	case "filter":
		err = c.runFilter(ctx, rest)
	case "tags":
		err = c.runTags()
	case "tag":
		err = c.runTag(ctx, rest)
	case "pin":
		err = c.runNoteAction(ctx, rest, "pin", c.store.TogglePin)
	case "archive":
		err = c.runNoteAction(ctx, rest, "archive", c.store.ToggleArchive)
	case "trash":
		err = c.runNoteAction(ctx, rest, "trash", c.store.MoveToTrash)
	case "restore":
		err = c.runNoteAction(ctx, rest, "restore", c.store.RestoreNote)
	case "delete":
		err = c.runDelete(ctx, rest)
	case "theme":
		err = c.runTheme(ctx)
	case "export":
		err = c.runExport(rest)
	case "help":
		PrintUsage(c.io)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	if errors.Is(err, notes.ErrNotAuthenticated) {
		return fmt.Errorf("%w. Please run 'quicknotes login' first", err)
	}
	return err
}

// getPassword retrieves the account password from various sources with priority:
// 1. Environment variable QUICKNOTES_PASSWORD
// 2. File given with --password-file
// 3. Command-line parameter --password
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string) (string, error) {
	// Priority 1: Environment variable
	if envPassword := c.getenv(EnvPassword); envPassword != "" {
		return envPassword, nil
	}

	// Priority 2: File
	if c.cfg.PasswordFile != "" {
		content, err := os.ReadFile(c.cfg.PasswordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	// Priority 3: CLI parameter
	if c.cfg.Password != "" {
		return c.cfg.Password, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// promptIfEmpty returns value, or asks for it when empty.
func (c *Cli) promptIfEmpty(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return input, nil
}

func PrintUsage(out iocli.IO) {
	out.Println("QuickNotes")
	out.Println()
	out.Println("Usage:")
	out.Println("  quicknotes [OPTIONS] COMMAND [ARGS]")
	out.Println()
	out.Println("Options:")
	out.Println("  --version                 Show version information")
	out.Println("  --db PATH                 Path to database file (default: quicknotes.db)")
	out.Println("  --backend NAME            Storage backend: bolt, sqlite, memory (default: bolt)")
	out.Println("  --config PATH             JSON config file")
	out.Println("  --log-level LEVEL         debug, info, warn, error (default: warn)")
	out.Println("  --hash-profile NAME       Password hashing profile: default, fast")
	out.Println("  --password PASSWORD       Account password (not recommended, use env var or file)")
	out.Println("  --password-file PATH      Path to file containing account password")
	out.Println()
	out.Println("Password Priority (highest to lowest):")
	out.Println("  1. QUICKNOTES_PASSWORD environment variable")
	out.Println("  2. --password-file (file path)")
	out.Println("  3. --password (command line)")
	out.Println("  4. Interactive prompt (fallback)")
	out.Println()
	out.Println("Commands:")
	out.Println("  register [email] [name]         Create an account and log in")
	out.Println("  login [email]                   Log in")
	out.Println("  logout                          Log out")
	out.Println("  status                          Show session, filters and theme")
	out.Println("  profile [--name] [--avatar] [--email]")
	out.Println("                                  Show or update profile")
	out.Println("  passwd                          Change password")
	out.Println("  new [--color C] [--tag T] [title] [content]")
	out.Println("                                  Create a note")
	out.Println("  edit <id> [--title] [--content] [--color]")
	out.Println("                                  Edit a note")
	out.Println("  show <id>                       Show a note")
	out.Println("  list [all|pinned|archived|trash]")
	out.Println("                                  List notes (default: all)")
	out.Println("  search [text]                   Set search text (empty clears) and list")
	out.Println("  filter [tags...]                Show only notes with all tags (none clears)")
	out.Println("  tags                            List tags in use")
	out.Println("  tag add|rm <id> <tag>           Add or remove a tag")
	out.Println("  pin <id>                        Pin or unpin a note")
	out.Println("  archive <id>                    Archive or unarchive a note")
	out.Println("  trash <id>                      Move a note to trash")
	out.Println("  restore <id>                    Restore a note from trash or archive")
	out.Println("  delete <id>                     Delete a note permanently")
	out.Println("  theme                           Toggle dark mode")
	out.Println("  export <id> text|pdf|clipboard [--out DIR]")
	out.Println("                                  Export a note (DIR '-' writes to stdout)")
	out.Println()
	out.Println("Examples:")
	out.Println("  quicknotes register a@example.com Alice")
	out.Println("  quicknotes new --color yellow --tag work 'Standup' 'Talk about the release'")
	out.Println("  quicknotes list pinned")
	out.Println("  quicknotes export 6f1c... pdf --out ~/Documents")
}
