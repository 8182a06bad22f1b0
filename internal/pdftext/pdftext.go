package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"condodocs/internal/services"
)

const stageName = "pdftext"

var pdfMagic = []byte("%PDF-")

// Extractor returns the concatenated text of a document.
type Extractor interface {
	Text(path string) (string, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(path string) (string, error)

// Text calls f(path).
func (f ExtractorFunc) Text(path string) (string, error) { return f(path) }

// Pages is the minimal view of a parsed document used by Concat.
type Pages interface {
	NumPage() int
	PageText(index int) (string, error)
}

// Concat joins the text of pages 1..NumPage in order. Pages that fail or
// panic contribute nothing.
func Concat(pages Pages) string {
	var b strings.Builder
	for i := 1; i <= pages.NumPage(); i++ {
		b.WriteString(safePageText(pages, i))
	}
	return b.String()
}

func safePageText(pages Pages, index int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	text, err := pages.PageText(index)
	if err != nil {
		return ""
	}
	return text
}

// Reader extracts text with github.com/ledongthuc/pdf.
type Reader struct{}

// NewReader returns the default PDF text extractor.
func NewReader() *Reader {
	return &Reader{}
}

// Text opens path and returns the text of all its pages.
func (r *Reader) Text(path string) (text string, err error) {
	if err := checkMagic(path); err != nil {
		return "", err
	}

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = services.Wrap(services.ErrUnreadable, stageName, "parse", path, fmt.Errorf("%v", rec))
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", services.Wrap(services.ErrUnreadable, stageName, "open", path, err)
	}
	defer file.Close()

	return Concat(ledongthucPages{reader: reader}), nil
}

func checkMagic(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return services.Wrap(services.ErrUnreadable, stageName, "open", path, err)
	}
	defer file.Close()

	header := make([]byte, 1024)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return services.Wrap(services.ErrUnreadable, stageName, "read header", path, err)
	}
	if !bytes.Contains(header[:n], pdfMagic) {
		return services.Wrap(services.ErrUnreadable, stageName, "read header", path+": not a PDF document", nil)
	}
	return nil
}

type ledongthucPages struct {
	reader *pdf.Reader
}

func (p ledongthucPages) NumPage() int {
	return p.reader.NumPage()
}

func (p ledongthucPages) PageText(index int) (string, error) {
	page := p.reader.Page(index)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
