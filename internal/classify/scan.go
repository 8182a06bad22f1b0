package classify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"condodocs/internal/identifier"
	"condodocs/internal/logging"
	"condodocs/internal/pdftext"
	"condodocs/internal/services"
)

// Document is a PDF discovered in an input folder. IDs keeps every match in
// text order, duplicates included, so positional selection sees what the
// document prints.
type Document struct {
	Name string
	Path string
	IDs  []string
	Err  error
}

// ScanDir lists regular files in dir whose extension is .pdf in any case,
// sorted by name. Symlinks to regular files are listed under the link name. Subdirectories are not descended into and names listed in
// exclude are dropped.
func ScanDir(dir string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "classify", "scan", dir, err)
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !IsPDF(name) || !isRegularFile(dir, entry) {
			continue
		}
		if _, ok := skip[name]; ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// isRegularFile follows symlinks; a dangling link is not a file.
func isRegularFile(dir string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// IsPDF reports whether name has a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// LoadDocuments extracts identifiers of the given kind from each named file
// in dir. A file that cannot be read is logged and kept with no identifiers.
// onEach, when set, is called after every file. Errors that are not
// services.Recoverable, and ctx's, stop the scan and are returned.
func LoadDocuments(
	ctx context.Context,
	dir string,
	names []string,
	extractor pdftext.Extractor,
	kind identifier.Kind,
	logger *slog.Logger,
	onEach func(Document),
) ([]Document, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "classify"))
	docs := make([]Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		doc := Document{Name: name, Path: filepath.Join(dir, name)}
		text, err := extractor.Text(doc.Path)
		if err != nil && !services.Recoverable(err) {
			return docs, err
		}
		if err != nil {
			doc.Err = err
			doc.IDs = []string{}
			logging.WarnWithContext(logger, "document unreadable; treating as unidentified", "document_unreadable",
				logging.String("path", doc.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the file opens in a PDF viewer"),
				logging.String(logging.FieldImpact, "file grouped as unidentified"),
			)
		} else {
			doc.IDs = identifier.Extract(text, kind)
			logger.Debug("document scanned",
				logging.String(logging.FieldDocument, name),
				logging.String("summary", doc.Describe()),
			)
		}
		docs = append(docs, doc)
		if onEach != nil {
			onEach(doc)
		}
	}
	return docs, nil
}

// Names returns the filenames of docs in order.
func Names(docs []Document) []string {
	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Name
	}
	return names
}

// Describe renders a short human description of a document's identifiers.
func (d Document) Describe() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: unreadable", d.Name)
	}
	if len(d.IDs) == 0 {
		return fmt.Sprintf("%s: no identifiers", d.Name)
	}
	return fmt.Sprintf("%s: %s", d.Name, strings.Join(d.IDs, ", "))
}
