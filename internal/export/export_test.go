package export

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/quicknotes/internal/models"
)

func testNote() *models.Note {
	return &models.Note{
		ID:        "n1",
		Title:     "Shopping list",
		Content:   "milk\neggs",
		CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 2, 18, 5, 7, 0, time.UTC),
		Tags:      []string{},
	}
}

func TestText(t *testing.T) {
	want := "Shopping list\n" +
		"=============\n" +
		"\n" +
		"milk\neggs\n" +
		"\n" +
		"Created: 2024-03-01 09:30:00\n" +
		"Updated: 2024-03-02 18:05:07"

	assert.Equal(t, want, Text(testNote(), time.UTC))
}

func TestText_Location(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	got := Text(testNote(), loc)
	assert.Contains(t, got, "Created: 2024-03-01 12:30:00")
	assert.Contains(t, got, "Updated: 2024-03-02 21:05:07")
}

// TestText_UnderlineCountsRunes проверяет длину подчеркивания для не-ASCII заголовка
func TestText_UnderlineCountsRunes(t *testing.T) {
	n := testNote()
	n.Title = "Заметка"

	got := Text(n, time.UTC)
	assert.True(t, bytes.HasPrefix([]byte(got), []byte("Заметка\n=======\n\n")))
}

func TestClipboard(t *testing.T) {
	assert.Equal(t, "Shopping list\n\nmilk\neggs", Clipboard(testNote()))
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		ext   string
		want  string
	}{
		{title: "Shopping list", ext: "txt", want: "shopping_list.txt"},
		{title: "Q3 Report: Draft!", ext: "pdf", want: "q3_report__draft_.pdf"},
		{title: "Ünïcode", ext: "txt", want: "_n_code.txt"},
		{title: "Trip 🏖 plan", ext: "txt", want: "trip___plan.txt"},
		{title: "", ext: "txt", want: ".txt"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.title, tt.ext))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "PDF", "clipboard"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.NotEmpty(t, f)
	}

	_, err := ParseFormat("docx")
	require.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, "pdf", FormatPDF.Ext())
	assert.Equal(t, "txt", FormatText.Ext())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, testNote(), FormatText, time.UTC))
	assert.Equal(t, Text(testNote(), time.UTC), buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, testNote(), FormatClipboard, time.UTC))
	assert.Equal(t, Clipboard(testNote()), buf.String())

	buf.Reset()
	require.ErrorIs(t, Write(&buf, testNote(), Format("rtf"), time.UTC), ErrUnknownFormat)
}

func TestPDF(t *testing.T) {
	n := testNote()
	n.Content = "Long content. " + string(bytes.Repeat([]byte("word "), 2000))

	var first, second bytes.Buffer
	require.NoError(t, PDF(&first, n, time.UTC))
	require.NoError(t, PDF(&second, n, time.UTC))

	assert.True(t, bytes.HasPrefix(first.Bytes(), []byte("%PDF-")))
	assert.Contains(t, first.String(), "%%EOF")
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestToCP1252(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		replaced int
	}{
		{in: "plain\ntext", want: "plain\ntext"},
		{in: "Café €5", want: "Caf\xe9 \x805"},
		{in: "Привет", want: "??????", replaced: 6},
		{in: "hi 👋", want: "hi ?", replaced: 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, replaced := toCP1252(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.replaced, replaced)
		})
	}
}

// TestPDF_WarnsOnReplacedCharacters проверяет предупреждение в логе, когда
// часть текста не может быть выведена стандартным шрифтом
func TestPDF_WarnsOnReplacedCharacters(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	n := testNote()
	n.Title = "Café"
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, n, time.UTC))
	assert.Empty(t, logs.String())

	n.Title = "Привет 👋"
	require.NoError(t, PDF(&buf, n, time.UTC))
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "replaced=7")
	assert.Contains(t, logs.String(), "note_id="+n.ID)
}

func TestPDF_NonLatinTitle(t *testing.T) {
	n := testNote()
	n.Title = "Café déjà vu"

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, n, time.UTC))
	assert.NotZero(t, buf.Len())
}
