package pdftext_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"condodocs/internal/identifier"
	"condodocs/internal/pdftext"
	"condodocs/internal/services"
)

type fakePages struct {
	texts []string
	fail  map[int]bool
	panic map[int]bool
}

func (f fakePages) NumPage() int { return len(f.texts) }

func (f fakePages) PageText(index int) (string, error) {
	if f.panic[index] {
		panic("corrupt content stream")
	}
	if f.fail[index] {
		return "", errors.New("bad font")
	}
	return f.texts[index-1], nil
}

func TestConcatJoinsPagesInOrder(t *testing.T) {
	pages := fakePages{texts: []string{"CNPJ 11.111.111/1111-11 ", "page two ", "page three"}}
	got := pdftext.Concat(pages)
	want := "CNPJ 11.111.111/1111-11 page two page three"
	if got != want {
		t.Fatalf("Concat = %q, want %q", got, want)
	}
}

func TestConcatSkipsBrokenPages(t *testing.T) {
	pages := fakePages{
		texts: []string{"first ", "broken ", "panics ", "last"},
		fail:  map[int]bool{2: true},
		panic: map[int]bool{3: true},
	}
	got := pdftext.Concat(pages)
	if got != "first last" {
		t.Fatalf("Concat = %q, want %q", got, "first last")
	}
}

func TestConcatEmptyDocument(t *testing.T) {
	if got := pdftext.Concat(fakePages{}); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestReaderRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("plain text pretending to be a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := pdftext.NewReader().Text(path)
	if !errors.Is(err, services.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := pdftext.NewReader().Text(filepath.Join(t.TempDir(), "absent.pdf"))
	if !errors.Is(err, services.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestReaderTruncatedPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj\n<<>>\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := pdftext.NewReader().Text(path)
	if !errors.Is(err, services.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable for truncated pdf, got %v", err)
	}
}

// writePDF writes a minimal PDF with one text line per page.
func writePDF(t *testing.T, path string, lines ...string) {
	t.Helper()

	pageIDs := make([]string, len(lines))
	for i := range lines {
		pageIDs[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(pageIDs, " "), len(lines)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, line := range lines {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", line)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestReaderExtractsTextFromEveryPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boleto.pdf")
	writePDF(t, path, "Admin 00.000.000/0001-00", "Tomador 11.111.111/1111-11 CEP 01310-100")

	text, err := pdftext.NewReader().Text(path)
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	for _, want := range []string{"Admin 00.000.000/0001-00", "Tomador 11.111.111/1111-11 CEP 01310-100"} {
		if !strings.Contains(text, want) {
			t.Fatalf("text %q missing %q", text, want)
		}
	}
	if strings.Index(text, "Admin") > strings.Index(text, "Tomador") {
		t.Fatalf("pages out of order: %q", text)
	}

	got := identifier.Extract(text, identifier.CNPJ)
	want := []string{"00.000.000/0001-00", "11.111.111/1111-11"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CNPJs = %v, want %v", got, want)
	}
	if postals := identifier.Extract(text, identifier.Postal); !reflect.DeepEqual(postals, []string{"01310-100"}) {
		t.Fatalf("CEPs = %v", postals)
	}
}

func TestExtractorFunc(t *testing.T) {
	var ex pdftext.Extractor = pdftext.ExtractorFunc(func(path string) (string, error) {
		return "text of " + path, nil
	})
	got, err := ex.Text("a.pdf")
	if err != nil || got != "text of a.pdf" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
}
