package organizer

import (
	"context"
	"path/filepath"

	"condodocs/internal/logging"
	"condodocs/internal/services"
	"condodocs/internal/similarity"
)

// LinkOptions configures LinkFolders.
type LinkOptions struct {
	BoletosRoot   string
	NotasRoot     string
	OutputDir     string
	BoletosSubdir string
	NotasSubdir   string
	Separator     string
	Matcher       similarity.Matcher
}

// LinkPair is a boleto folder and a nota folder judged similar.
type LinkPair struct {
	Boleto string
	Nota   string
	Score  float64
}

// Folder is the combined folder name.
func (p LinkPair) Folder(separator string) string {
	return p.Boleto + separator + p.Nota
}

// MatchFolders returns every (boleto, nota) pair of names judged similar, in
// boleto-then-nota order. Matching is many-to-many. Names that normalize to
// nothing are ignored.
func MatchFolders(boletos, notas []string, matcher similarity.Matcher) []LinkPair {
	var pairs []LinkPair
	for _, b := range boletos {
		if similarity.Normalize(b) == "" {
			continue
		}
		for _, n := range notas {
			if similarity.Normalize(n) == "" {
				continue
			}
			if matcher.Similar(b, n) {
				pairs = append(pairs, LinkPair{Boleto: b, Nota: n, Score: matcher.Score(b, n)})
			}
		}
	}
	return pairs
}

// LinkFolders copies every matched pair of subfolders into
// OutputDir/<boleto><sep><nota>/{BoletosSubdir,NotasSubdir}. Failure to list
// either root is returned; everything else is counted.
func (o *Organizer) LinkFolders(ctx context.Context, opts LinkOptions) (Summary, []LinkPair, error) {
	logger := logging.WithContext(ctx, o.logger)

	boletos, err := listSubdirs(opts.BoletosRoot)
	if err != nil {
		return Summary{}, nil, services.Wrap(services.ErrNotFound, "organizer", "list boleto folders", opts.BoletosRoot, err)
	}
	notas, err := listSubdirs(opts.NotasRoot)
	if err != nil {
		return Summary{}, nil, services.Wrap(services.ErrNotFound, "organizer", "list nota folders", opts.NotasRoot, err)
	}

	pairs := MatchFolders(boletos, notas, opts.Matcher)
	logger.Info("folder matching complete",
		logging.Int("boleto_folders", len(boletos)),
		logging.Int("nota_folders", len(notas)),
		logging.Int("pairs", len(pairs)),
	)

	var placements []Placement
	for _, pair := range pairs {
		dest := filepath.Join(opts.OutputDir, pair.Folder(opts.Separator))
		logger.Debug("folders linked",
			logging.String("boleto", pair.Boleto),
			logging.String("nota", pair.Nota),
			logging.Float64("score", pair.Score),
		)
		for _, side := range []struct{ src, dst string }{
			{filepath.Join(opts.BoletosRoot, pair.Boleto), filepath.Join(dest, opts.BoletosSubdir)},
			{filepath.Join(opts.NotasRoot, pair.Nota), filepath.Join(dest, opts.NotasSubdir)},
		} {
			tree, err := treePlacements(side.src, side.dst, Copy)
			if err != nil {
				logging.WarnWithContext(logger, "folder could not be listed; pair incomplete", "link_walk_failed",
					logging.String("path", side.src),
					logging.Error(err),
				)
			}
			placements = append(placements, tree...)
		}
	}

	summary, err := o.Place(ctx, placements)
	summary.LinkedPairs = len(pairs)
	summary.Groups = len(pairs)
	return summary, pairs, err
}
