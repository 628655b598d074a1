// Package export renders a note into the formats offered to the user:
// plain text, clipboard text and PDF.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iudanet/quicknotes/internal/models"
)

// TimeLayout используется для меток Created/Updated
const TimeLayout = "2006-01-02 15:04:05"

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export format.
type Format string

const (
	FormatText      Format = "text"
	FormatPDF       Format = "pdf"
	FormatClipboard Format = "clipboard"
)

// ParseFormat converts user input into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatPDF, FormatClipboard:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension for files of this format.
func (f Format) Ext() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "txt"
}

// Text renders the note as a plain text document: title, an underline of
// '=' as long as the title, content and the timestamps.
func Text(note *models.Note, loc *time.Location) string {
	var b strings.Builder

	b.WriteString(note.Title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(note.Title)))
	b.WriteString("\n\n")
	b.WriteString(note.Content)
	b.WriteString("\n\n")
	b.WriteString(createdLine(note, loc))
	b.WriteByte('\n')
	b.WriteString(updatedLine(note, loc))

	return b.String()
}

// Clipboard renders the note for copying: title, blank line, content.
func Clipboard(note *models.Note) string {
	return note.Title + "\n\n" + note.Content
}

// Filename builds a file name from the title: every character outside
// [a-zA-Z0-9] becomes '_', the result is lower-cased. Characters are Unicode
// code points, so an emoji outside the BMP gives a single '_' where a
// UTF-16 based implementation would give two.
func Filename(title, ext string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + "." + ext
}

// Write renders the note in format f into w.
func Write(w io.Writer, note *models.Note, f Format, loc *time.Location) error {
	switch f {
	case FormatText:
		_, err := io.WriteString(w, Text(note, loc))
		return err
	case FormatClipboard:
		_, err := io.WriteString(w, Clipboard(note))
		return err
	case FormatPDF:
		return PDF(w, note, loc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func createdLine(note *models.Note, loc *time.Location) string {
	return "Created: " + formatTime(note.CreatedAt, loc)
}

func updatedLine(note *models.Note, loc *time.Location) string {
	return "Updated: " + formatTime(note.UpdatedAt, loc)
}

func formatTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimeLayout)
}
