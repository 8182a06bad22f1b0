package classify

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"condodocs/internal/identifier"
)

// ByIdentifier keys a document by its Nth identifier.
type ByIdentifier struct {
	// Position is 1-based: 2 selects the second identifier in the text.
	Position int
	// Unidentified is the bucket for documents with fewer identifiers.
	Unidentified string
}

// Key returns the identifier at Position, or ok=false with the bucket name.
func (b ByIdentifier) Key(doc Document) (string, bool) {
	if id, ok := identifier.Nth(doc.IDs, b.Position-1); ok {
		return id, true
	}
	return b.Unidentified, false
}

// Split partitions docs into identified groups (keyed by raw identifier) and
// the ordered list of unidentified filenames.
func (b ByIdentifier) Split(docs []Document) (*Groups, []string) {
	groups := NewGroups()
	var missing []string
	for _, doc := range docs {
		if id, ok := b.Key(doc); ok {
			groups.Add(id, doc.Name)
			continue
		}
		missing = append(missing, doc.Name)
	}
	return groups, missing
}

var (
	companyNoise    = regexp.MustCompile(`[^A-Za-z0-9 ]`)
	trailingDigits  = regexp.MustCompile(`\d+$`)
	digitRuns       = regexp.MustCompile(`\d+`)
	defaultSequence = "0000"
)

// CompanyName derives a company folder from a nota filename: punctuation and
// accented letters become spaces, numeric tokens are dropped and the first
// Tokens words are kept.
type CompanyName struct {
	Tokens   int
	Fallback string
}

// Name returns the company name for filename.
func (c CompanyName) Name(filename string) string {
	words := companyWords(filename)
	if len(words) == 0 {
		return c.Fallback
	}
	n := c.Tokens
	if n <= 0 || n > len(words) {
		n = len(words)
	}
	return strings.Join(words[:n], " ")
}

// FirstToken returns the first company word, or the fallback.
func (c CompanyName) FirstToken(filename string) string {
	words := companyWords(filename)
	if len(words) == 0 {
		return c.Fallback
	}
	return words[0]
}

func companyWords(filename string) []string {
	cleaned := companyNoise.ReplaceAllString(stripExt(filename), " ")
	fields := strings.Fields(cleaned)
	words := fields[:0]
	for _, f := range fields {
		if isDigits(f) {
			continue
		}
		words = append(words, f)
	}
	return words
}

// TrailingDigitsTrimmed derives a name by removing the extension and any
// trailing run of digits.
type TrailingDigitsTrimmed struct {
	Fallback string
}

// Name returns the trimmed filename, or Fallback when nothing remains.
func (t TrailingDigitsTrimmed) Name(filename string) string {
	name := strings.TrimSpace(trailingDigits.ReplaceAllString(stripExt(filename), ""))
	if name == "" || name == "." || name == ".." {
		return t.Fallback
	}
	return name
}

// SequenceNumber returns the last run of digits in filename, or fallback.
func SequenceNumber(filename, fallback string) string {
	runs := digitRuns.FindAllString(filename, -1)
	if len(runs) == 0 {
		if fallback == "" {
			return defaultSequence
		}
		return fallback
	}
	return runs[len(runs)-1]
}

// Rename modes for NotaRenamer.
const (
	RenameSequence = "sequence"
	RenameTrimmed  = "trimmed"
	RenameKeep     = "keep"
)

// NotaRenamer names a nota inside its company folder.
type NotaRenamer struct {
	Mode             string
	Company          CompanyName
	SequenceFallback string
}

// Rename returns the destination filename for filename.
func (r NotaRenamer) Rename(filename string) string {
	switch r.Mode {
	case RenameSequence:
		return r.Company.FirstToken(filename) + "_" + SequenceNumber(filename, r.SequenceFallback) + ".pdf"
	case RenameTrimmed:
		return TrailingDigitsTrimmed{Fallback: r.Company.Fallback}.Name(filename) + ".pdf"
	default:
		return filename
	}
}

func stripExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
