package classify

import (
	"strings"
)

// BoletoName is the parsed form of a boleto filename such as
// "05-03-2024-ACME SERVICOS LTDA-123456.pdf".
type BoletoName struct {
	// Key is the company folder: the middle dash-separated parts joined
	// with single spaces.
	Key string
	// Prefix is the DD-MM-YYYY date, or the first part when no date leads.
	Prefix string
	// ID is the last dash-separated part.
	ID string
}

// FileName is the renamed file: "<prefix>-<id>.pdf".
func (b BoletoName) FileName() string {
	return b.Prefix + "-" + b.ID + ".pdf"
}

// ParseBoletoName splits a boleto filename into folder key, date prefix and
// trailing id. Underscores count as spaces. ok is false when the name has no
// middle part to group by.
func ParseBoletoName(filename string) (BoletoName, bool) {
	base := strings.ReplaceAll(stripExt(filename), "_", " ")
	var parts []string
	for _, part := range strings.Split(base, "-") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) < 3 {
		return BoletoName{}, false
	}

	prefix, rest := parts[0], parts[1:]
	if len(parts) >= 5 && isDatePart(parts[0], 2) && isDatePart(parts[1], 2) && isDatePart(parts[2], 4) {
		prefix, rest = strings.Join(parts[:3], "-"), parts[3:]
	}
	middle := rest[:len(rest)-1]
	key := strings.Join(strings.Fields(strings.Join(middle, " ")), " ")
	if key == "" || key == "." || key == ".." {
		return BoletoName{}, false
	}
	return BoletoName{
		Key:    key,
		Prefix: prefix,
		ID:     rest[len(rest)-1],
	}, true
}

func isDatePart(s string, width int) bool {
	return len(s) == width && isDigits(s)
}
