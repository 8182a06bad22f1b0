package identifier

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind selects which identifier pattern to extract.
type Kind int

const (
	// CNPJ matches Brazilian company tax IDs in DD.DDD.DDD/DDDD-DD form.
	CNPJ Kind = iota
	// Postal matches CEP postal codes in DDDDD-DDD form.
	Postal
)

var (
	cnpjPattern   = regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
	postalPattern = regexp.MustCompile(`\d{5}-\d{3}`)
)

func (k Kind) pattern() *regexp.Regexp {
	if k == Postal {
		return postalPattern
	}
	return cnpjPattern
}

func (k Kind) String() string {
	switch k {
	case CNPJ:
		return "cnpj"
	case Postal:
		return "cep"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a user-supplied label onto a Kind.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "cnpj":
		return CNPJ, nil
	case "cep", "postal":
		return Postal, nil
	default:
		return CNPJ, fmt.Errorf("unknown identifier kind %q (want cnpj or cep)", value)
	}
}

// Extract returns every match of kind in text, left to right, repeats included.
func Extract(text string, kind Kind) []string {
	matches := kind.pattern().FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// ExtractUnique returns the matches of kind in first-seen order, dropping later repeats.
func ExtractUnique(text string, kind Kind) []string {
	return Unique(Extract(text, kind))
}

// Unique removes repeated identifiers while keeping the first occurrence of each.
func Unique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Nth returns the identifier at 0-based index n. The boolean is false when the
// list holds fewer than n+1 entries.
func Nth(ids []string, n int) (string, bool) {
	if n < 0 || n >= len(ids) {
		return "", false
	}
	return ids[n], true
}

// FolderName strips the punctuation of an identifier so it can name a directory.
// "11.222.333/0001-44" becomes "11222333000144".
func FolderName(id string) string {
	return strings.NewReplacer(".", "", "/", "", "-", "").Replace(id)
}

// Result holds every identifier found in one text.
type Result struct {
	CNPJs   []string
	Postals []string
}

// Scan extracts both CNPJs and postal codes, repeats included.
func Scan(text string) Result {
	return Result{
		CNPJs:   Extract(text, CNPJ),
		Postals: Extract(text, Postal),
	}
}

// Empty reports whether no identifier of either kind was found.
func (r Result) Empty() bool {
	return len(r.CNPJs) == 0 && len(r.Postals) == 0
}

// SameSet reports whether two identifier lists contain the same distinct values,
// ignoring order and repeats.
func SameSet(a, b []string) bool {
	ua, ub := Unique(a), Unique(b)
	if len(ua) != len(ub) {
		return false
	}
	set := make(map[string]struct{}, len(ua))
	for _, id := range ua {
		set[id] = struct{}{}
	}
	for _, id := range ub {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
