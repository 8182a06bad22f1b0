package organizer

import (
	"context"
	"path/filepath"

	"condodocs/internal/classify"
	"condodocs/internal/logging"
)

// BoletosOptions configures OrganizeBoletos.
type BoletosOptions struct {
	// Unnamed is the folder for filenames that do not parse.
	Unnamed string
	Mode    Mode
}

// OrganizeBoletos places each named file of srcDir into outDir/<company>
// renamed to "<date>-<id>.pdf". Names that do not parse keep their name and
// go to opts.Unnamed.
func (o *Organizer) OrganizeBoletos(ctx context.Context, srcDir string, names []string, outDir string, opts BoletosOptions) (Summary, error) {
	logger := logging.WithContext(ctx, o.logger)

	folders := classify.NewGroups()
	var placements []Placement
	var counts Summary
	for _, name := range names {
		p := Placement{Source: filepath.Join(srcDir, name), Mode: opts.Mode}
		if parsed, ok := classify.ParseBoletoName(name); ok {
			p.DestDir = filepath.Join(outDir, parsed.Key)
			p.DestName = parsed.FileName()
			folders.Add(parsed.Key, name)
		} else {
			logger.Debug("boleto name not recognized", logging.String(logging.FieldDocument, name))
			p.DestDir = filepath.Join(outDir, opts.Unnamed)
			counts.Unidentified++
		}
		placements = append(placements, p)
	}
	counts.Groups = folders.Len()

	logger.Info("boletos plan built",
		logging.String("source", srcDir),
		logging.Int("folders", folders.Len()),
		logging.Int("unrecognized", counts.Unidentified),
	)

	summary, err := o.Place(ctx, placements)
	summary.Merge(counts)
	return summary, err
}
