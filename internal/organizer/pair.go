package organizer

import (
	"context"
	"path/filepath"

	"condodocs/internal/classify"
	"condodocs/internal/identifier"
	"condodocs/internal/logging"
)

// PairOptions configures PairByIdentifier.
type PairOptions struct {
	// Position is the 1-based identifier used as the pairing key.
	Position int
	// NotaOnlyPrefix names folders for keys found only among notas.
	NotaOnlyPrefix string
	// BoletoOnlyPrefix, when set, names folders for keys found only among
	// boletos. Empty skips those boletos.
	BoletoOnlyPrefix    string
	NotasUnidentified   string
	BoletosUnidentified string
	Mode                Mode
}

// PairInput holds the scanned sides of a pairing run.
type PairInput struct {
	BoletosDir string
	Boletos    []classify.Document
	NotasDir   string
	Notas      []classify.Document
	OutputDir  string
}

// PairByIdentifier groups boletos and notas by the identifier at
// opts.Position and lays them out under in.OutputDir:
//
//	<digits>/          keys present on both sides, boletos then notas
//	<NotaOnlyPrefix><digits>/   keys present only among notas
//	<NotasUnidentified>/        notas without a key
//	<BoletosUnidentified>/      boletos without a key
func (o *Organizer) PairByIdentifier(ctx context.Context, in PairInput, opts PairOptions) (Summary, error) {
	logger := logging.WithContext(ctx, o.logger)

	boletoGroups, boletosMissing := classify.ByIdentifier{Position: opts.Position}.Split(in.Boletos)
	notaGroups, notasMissing := classify.ByIdentifier{Position: opts.Position}.Split(in.Notas)

	var placements []Placement
	var counts Summary
	add := func(dir, folder string, files []string) {
		dest := filepath.Join(in.OutputDir, folder)
		for _, name := range files {
			placements = append(placements, Placement{
				Source:  filepath.Join(dir, name),
				DestDir: dest,
				Mode:    opts.Mode,
			})
		}
	}

	for _, key := range boletoGroups.Keys() {
		if !notaGroups.Has(key) {
			continue
		}
		folder := identifier.FolderName(key)
		add(in.BoletosDir, folder, boletoGroups.Files(key))
		add(in.NotasDir, folder, notaGroups.Files(key))
		counts.BothSides++
	}

	for _, key := range notaGroups.Keys() {
		if boletoGroups.Has(key) {
			continue
		}
		add(in.NotasDir, opts.NotaOnlyPrefix+identifier.FolderName(key), notaGroups.Files(key))
		counts.NotaOnly++
	}

	for _, key := range boletoGroups.Keys() {
		if notaGroups.Has(key) {
			continue
		}
		counts.BoletoOnly++
		if opts.BoletoOnlyPrefix == "" {
			logger.Info("boleto identifier has no matching nota; skipping",
				logging.String("identifier", key),
				logging.Strings("files", boletoGroups.Files(key)),
			)
			continue
		}
		add(in.BoletosDir, opts.BoletoOnlyPrefix+identifier.FolderName(key), boletoGroups.Files(key))
	}

	if len(notasMissing) > 0 {
		add(in.NotasDir, opts.NotasUnidentified, notasMissing)
	}
	if len(boletosMissing) > 0 {
		add(in.BoletosDir, opts.BoletosUnidentified, boletosMissing)
	}
	counts.Unidentified = len(notasMissing) + len(boletosMissing)
	counts.Groups = counts.BothSides + counts.NotaOnly
	if opts.BoletoOnlyPrefix != "" {
		counts.Groups += counts.BoletoOnly
	}

	logger.Info("pairing plan built",
		logging.Int("both_sides", counts.BothSides),
		logging.Int("nota_only", counts.NotaOnly),
		logging.Int("boleto_only", counts.BoletoOnly),
		logging.Int("unidentified", counts.Unidentified),
		logging.Int("placements", len(placements)),
	)

	summary, err := o.Place(ctx, placements)
	summary.Merge(counts)
	return summary, err
}
