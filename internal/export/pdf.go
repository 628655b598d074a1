package export

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/iudanet/quicknotes/internal/models"
)

// Геометрия страницы в миллиметрах
const (
	pdfMargin       = 20.0
	pdfTextWidth    = 170.0
	pdfFooterOffset = 20.0
	pdfFooterBottom = 10.0
)

// PDF renders the note as a single A4 document: bold title, content and a
// grey footer with the timestamps. The core fonts only cover cp1252, other
// characters are printed as '?' and a warning is logged.
func PDF(w io.Writer, note *models.Note, loc *time.Location) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfFooterOffset+pdfFooterBottom)
	// Фиксированная дата и сортировка каталога делают вывод воспроизводимым
	pdf.SetCreationDate(note.CreatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(note.Title, true)

	replaced := 0
	tr := func(s string) string {
		out, n := toCP1252(s)
		replaced += n
		return out
	}

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(pdfTextWidth, 8, tr(note.Title), "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(pdfTextWidth, 6, tr(note.Content), "", "L", false)

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.Text(pdfMargin, pageHeight-pdfFooterOffset, tr(createdLine(note, loc)))
	pdf.Text(pdfMargin, pageHeight-pdfFooterBottom, tr(updatedLine(note, loc)))

	if replaced > 0 {
		slog.Warn("pdf export replaced characters outside cp1252", "note_id", note.ID, "replaced", replaced)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}

	return nil
}

// toCP1252 перекодирует строку для стандартных шрифтов PDF и возвращает
// число символов, замененных на '?'.
func toCP1252(s string) (string, int) {
	var b strings.Builder
	replaced := 0
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
			replaced++
		}
		b.WriteByte(c)
	}
	return b.String(), replaced
}
