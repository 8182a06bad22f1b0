package organizer

import (
	"context"
	"path/filepath"

	"condodocs/internal/classify"
	"condodocs/internal/identifier"
	"condodocs/internal/logging"
)

// CompareResult describes the outcome of CompareDocuments.
type CompareResult struct {
	First   []string
	Second  []string
	Matched bool
	Folder  string
}

// CompareDocuments deduplicates the identifiers of two documents. When both
// sets are non-empty and equal, both files are copied into
// outDir/<prefix><digits of the first identifier>.
func (o *Organizer) CompareDocuments(ctx context.Context, a, b classify.Document, outDir, prefix string) (CompareResult, Summary, error) {
	logger := logging.WithContext(ctx, o.logger)

	result := CompareResult{
		First:  identifier.Unique(a.IDs),
		Second: identifier.Unique(b.IDs),
	}
	if len(result.First) == 0 || len(result.Second) == 0 || !identifier.SameSet(result.First, result.Second) {
		logger.Info("documents do not share the same identifiers",
			logging.Strings("first", result.First),
			logging.Strings("second", result.Second),
		)
		return result, Summary{}, nil
	}

	result.Matched = true
	result.Folder = prefix + identifier.FolderName(result.First[0])
	dest := filepath.Join(outDir, result.Folder)
	summary, err := o.Place(ctx, []Placement{
		{Source: a.Path, DestDir: dest, Mode: Copy},
		{Source: b.Path, DestDir: dest, Mode: Copy},
	})
	summary.Groups = 1
	logger.Info("documents share identifiers; copied together",
		logging.String("folder", dest),
		logging.Strings("identifiers", result.First),
	)
	return result, summary, err
}
