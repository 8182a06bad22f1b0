package organizer

import (
	"context"
	"path/filepath"

	"condodocs/internal/classify"
	"condodocs/internal/identifier"
	"condodocs/internal/logging"
)

// SortOptions configures SortByIdentifier.
type SortOptions struct {
	// Position is the 1-based identifier used as the folder key.
	Position     int
	Unidentified string
	Mode         Mode
}

// SortByIdentifier files the documents of dir into subfolders of dir named
// after their identifier at opts.Position, or into opts.Unidentified.
func (o *Organizer) SortByIdentifier(ctx context.Context, dir string, docs []classify.Document, opts SortOptions) (Summary, error) {
	logger := logging.WithContext(ctx, o.logger)
	by := classify.ByIdentifier{Position: opts.Position, Unidentified: opts.Unidentified}

	var counts Summary
	groups := classify.Group(docs, func(doc classify.Document) string {
		key, ok := by.Key(doc)
		if !ok {
			counts.Unidentified++
			return key
		}
		return identifier.FolderName(key)
	})

	var placements []Placement
	for _, key := range groups.Keys() {
		for _, name := range groups.Files(key) {
			placements = append(placements, Placement{
				Source:  filepath.Join(dir, name),
				DestDir: filepath.Join(dir, key),
				Mode:    opts.Mode,
			})
		}
	}
	counts.Groups = groups.Len()

	logger.Info("sort plan built",
		logging.String("dir", dir),
		logging.Int("folders", groups.Len()),
		logging.Int("unidentified", counts.Unidentified),
		logging.String("mode", opts.Mode.String()),
	)

	summary, err := o.Place(ctx, placements)
	summary.Merge(counts)
	return summary, err
}
