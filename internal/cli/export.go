package cli

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iudanet/quicknotes/internal/export"
)

func (c *Cli) runExport(args []string) error {
	usage := "Usage: quicknotes export <id> text|pdf|clipboard [--out DIR]"
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. %s", usage)
	}

	id := args[0]
	format, err := export.ParseFormat(args[1])
	if err != nil {
		return fmt.Errorf("%w. %s", err, usage)
	}

	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	outDir := fs.String("out", ".", "output directory, '-' for stdout")
	if err := fs.Parse(args[2:]); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	note, err := c.store.Note(id)
	if err != nil {
		return err
	}

	// Буфер: при ошибке рендеринга файл не создается
	var buf bytes.Buffer
	if err := export.Write(&buf, note, format, c.loc); err != nil {
		c.logger.Error("export failed", "note_id", note.ID, "format", format, "error", err)
		return fmt.Errorf("failed to export note: %w", err)
	}

	// Буфер обмена: печатаем текст, его можно передать в pbcopy/xclip
	if format == export.FormatClipboard || *outDir == "-" {
		if _, err := c.io.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if format != export.FormatPDF {
			c.io.Println()
		}
		return nil
	}

	path := filepath.Join(*outDir, export.Filename(note.Title, format.Ext()))
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		c.logger.Error("export failed", "note_id", note.ID, "path", path, "error", err)
		return fmt.Errorf("failed to write file: %w", err)
	}

	c.io.Printf("✓ Exported to %s\n", path)

	return nil
}
