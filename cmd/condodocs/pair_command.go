package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"condodocs/internal/config"
	"condodocs/internal/identifier"
	"condodocs/internal/organizer"
	"condodocs/internal/preflight"
)

type pairDirs struct {
	boletos string
	notas   string
	out     string
}

func newPairCommand(ctx *commandContext) *cobra.Command {
	var boletosFlag, notasFlag, outFlag string
	var move bool
	var position int

	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Group boletos and notas into folders by a shared CNPJ",
		Long: `Group boletos and notas fiscais by the CNPJ found at pair.position
(the second one by default) and copy them into one folder per CNPJ.

CNPJs found only among notas get an NF_ folder; files without that CNPJ go
to the unidentified folders. Boleto-only CNPJs are skipped unless
pair.boleto_only_prefix is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop, err := ctx.startSession(cmd, "pair")
			if err != nil {
				return err
			}
			defer stop()

			dirs, err := resolvePairDirs(s.cfg, boletosFlag, notasFlag, outFlag)
			if err != nil {
				return err
			}
			if position > 0 {
				s.cfg.Pair.Position = position
			}

			if err := preflight.Require(dirs.preflight()...); err != nil {
				return err
			}

			var summary organizer.Summary
			err = withRunLock(dirs.out, func() error {
				var runErr error
				summary, runErr = ctx.runPair(cmd, s, dirs, modeFor(move))
				return runErr
			})
			if err != nil {
				return err
			}
			s.finish(summary)
			printSummary(cmd.OutOrStdout(), fmt.Sprintf("Paired into %s", dirs.out), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&boletosFlag, "boletos", "", "Boletos folder (default paths.boletos_dir)")
	cmd.Flags().StringVar(&notasFlag, "notas", "", "Notas fiscais folder (default paths.notas_dir)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output folder (default paths.output_dir)")
	cmd.Flags().BoolVar(&move, "move", false, "Move files instead of copying them")
	cmd.Flags().IntVar(&position, "position", 0, "1-based CNPJ position used as the key (default pair.position)")
	return cmd
}

func resolvePairDirs(cfg *config.Config, boletos, notas, out string) (pairDirs, error) {
	var dirs pairDirs
	var err error
	if dirs.boletos, err = resolvePathFlag(boletos, cfg.BoletosPath()); err != nil {
		return dirs, err
	}
	if dirs.notas, err = resolvePathFlag(notas, cfg.NotasPath()); err != nil {
		return dirs, err
	}
	if dirs.out, err = resolvePathFlag(out, cfg.OutputPath()); err != nil {
		return dirs, err
	}
	return dirs, nil
}

func (d pairDirs) preflight() []preflight.Result {
	return []preflight.Result{
		preflight.CheckReadable("Boletos directory", d.boletos),
		preflight.CheckReadable("Notas directory", d.notas),
		preflight.CheckWritableRoot("Output directory", d.out),
	}
}

func (c *commandContext) runPair(cmd *cobra.Command, s *session, dirs pairDirs, mode organizer.Mode) (organizer.Summary, error) {
	boletos, err := c.loadDocuments(cmd, s, dirs.boletos, nil, identifier.CNPJ, "boletos")
	if err != nil {
		return organizer.Summary{}, err
	}
	notas, err := c.loadDocuments(cmd, s, dirs.notas, nil, identifier.CNPJ, "notas")
	if err != nil {
		return organizer.Summary{}, err
	}

	org, done, err := c.newOrganizer(cmd, s)
	if err != nil {
		return organizer.Summary{}, err
	}
	defer done()
	return org.PairByIdentifier(s.ctx, organizer.PairInput{
		BoletosDir: dirs.boletos,
		Boletos:    boletos,
		NotasDir:   dirs.notas,
		Notas:      notas,
		OutputDir:  dirs.out,
	}, organizer.PairOptions{
		Position:            s.cfg.Pair.Position,
		NotaOnlyPrefix:      s.cfg.Pair.NotaOnlyPrefix,
		BoletoOnlyPrefix:    s.cfg.Pair.BoletoOnlyPrefix,
		NotasUnidentified:   s.cfg.Pair.NotasUnidentified,
		BoletosUnidentified: s.cfg.Pair.BoletosUnidentified,
		Mode:                mode,
	})
}
