package testsupport

import (
	"os"
	"strings"

	"condodocs/internal/services"
)

// UnreadableMarker makes TextExtractor fail for a file whose content starts
// with it.
const UnreadableMarker = "!unreadable"

// TextExtractor treats a file's bytes as the document text. It satisfies
// pdftext.Extractor so organizer and classify tests run without PDF fixtures.
type TextExtractor struct {
	Calls []string
}

// Text returns the file content, or ErrUnreadable for missing files and files
// starting with UnreadableMarker.
func (e *TextExtractor) Text(path string) (string, error) {
	e.Calls = append(e.Calls, path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", services.Wrap(services.ErrUnreadable, "testsupport", "read", path, err)
	}
	text := string(data)
	if strings.HasPrefix(text, UnreadableMarker) {
		return "", services.Wrap(services.ErrUnreadable, "testsupport", "parse", path, nil)
	}
	return text, nil
}

// CNPJText renders document text containing the given CNPJs in order.
func CNPJText(cnpjs ...string) string {
	var b strings.Builder
	b.WriteString("DOCUMENTO")
	for _, c := range cnpjs {
		b.WriteString(" CNPJ: ")
		b.WriteString(c)
	}
	b.WriteString("\n")
	return b.String()
}
