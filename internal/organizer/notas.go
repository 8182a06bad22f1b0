package organizer

import (
	"context"
	"path/filepath"

	"condodocs/internal/classify"
	"condodocs/internal/logging"
)

// NotasOptions configures OrganizeNotas.
type NotasOptions struct {
	// Folder derives the company folder from a filename.
	Folder  func(filename string) string
	Renamer classify.NotaRenamer
	Mode    Mode
}

// OrganizeNotas places each named file of srcDir into outDir/<folder> under
// the name chosen by opts.Renamer.
func (o *Organizer) OrganizeNotas(ctx context.Context, srcDir string, names []string, outDir string, opts NotasOptions) (Summary, error) {
	logger := logging.WithContext(ctx, o.logger)

	groups := classify.NewGroups()
	for _, name := range names {
		groups.Add(opts.Folder(name), name)
	}

	var placements []Placement
	for _, folder := range groups.Keys() {
		for _, name := range groups.Files(folder) {
			placements = append(placements, Placement{
				Source:   filepath.Join(srcDir, name),
				DestDir:  filepath.Join(outDir, folder),
				DestName: opts.Renamer.Rename(name),
				Mode:     opts.Mode,
			})
		}
	}

	logger.Info("notas plan built",
		logging.String("source", srcDir),
		logging.Int("folders", groups.Len()),
		logging.Int("files", groups.Total()),
	)

	summary, err := o.Place(ctx, placements)
	summary.Groups = groups.Len()
	return summary, err
}
