package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"condodocs/internal/config"
	"condodocs/internal/organizer"
	"condodocs/internal/preflight"
	"condodocs/internal/services"
	"condodocs/internal/similarity"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	var boletosFlag, notasFlag, outFlag, method string
	var threshold float64
	var foldAccents bool

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Pair boleto and nota company folders with similar names",
		Long: `Compare every subfolder of the organized boletos with every subfolder
of the organized notas. Names are reduced to lowercase letters and digits;
a pair matches when one name contains the other or their similarity ratio is
above the threshold. Each matched pair is copied into
<boleto>_<nota>/BOLETOS and <boleto>_<nota>/NOTAS_FISCAIS. A folder may match
several folders on the other side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop, err := ctx.startSession(cmd, "link")
			if err != nil {
				return err
			}
			defer stop()
			cfg := s.cfg

			opts := organizer.LinkOptions{
				BoletosSubdir: cfg.Link.BoletosSubdir,
				NotasSubdir:   cfg.Link.NotasSubdir,
				Separator:     cfg.Link.Separator,
			}
			if opts.BoletosRoot, err = resolvePathFlag(boletosFlag, cfg.ResolveDir(cfg.Boletos.OutputDir)); err != nil {
				return err
			}
			if opts.NotasRoot, err = resolvePathFlag(notasFlag, cfg.ResolveDir(cfg.Notas.OutputDir)); err != nil {
				return err
			}
			if opts.OutputDir, err = resolvePathFlag(outFlag, cfg.ResolveDir(cfg.Link.OutputDir)); err != nil {
				return err
			}
			if opts.Matcher, err = linkMatcher(cfg, cmd, threshold, method, foldAccents); err != nil {
				return err
			}

			if err := preflight.Require(
				preflight.CheckReadable("Boleto folders", opts.BoletosRoot),
				preflight.CheckReadable("Nota folders", opts.NotasRoot),
				preflight.CheckWritableRoot("Output directory", opts.OutputDir),
			); err != nil {
				return err
			}

			var summary organizer.Summary
			var pairs []organizer.LinkPair
			err = withRunLock(opts.OutputDir, func() error {
				org, done, err := ctx.newOrganizer(cmd, s)
				if err != nil {
					return err
				}
				defer done()
				summary, pairs, err = org.LinkFolders(s.ctx, opts)
				return err
			})
			if err != nil {
				return err
			}
			s.finish(summary)

			out := cmd.OutOrStdout()
			if len(pairs) == 0 {
				fmt.Fprintln(out, "No similar folders found")
			} else {
				rows := make([][]string, 0, len(pairs))
				for _, pair := range pairs {
					rows = append(rows, []string{pair.Boleto, pair.Nota, strconv.FormatFloat(pair.Score, 'f', 2, 64)})
				}
				fmt.Fprintln(out, renderTable([]string{"Boletos", "Notas", "Score"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			}
			printSummary(out, fmt.Sprintf("Linked into %s", opts.OutputDir), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&boletosFlag, "boletos", "", "Folder of boleto company folders (default boletos.output_dir)")
	cmd.Flags().StringVar(&notasFlag, "notas", "", "Folder of nota company folders (default notas.output_dir)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output folder (default link.output_dir)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Similarity ratio a pair must exceed (default matching.threshold)")
	cmd.Flags().StringVar(&method, "method", "", "Similarity method: sequence or levenshtein (default matching.method)")
	cmd.Flags().BoolVar(&foldAccents, "fold-accents", false, "Ignore accents when comparing names")
	return cmd
}

func linkMatcher(cfg *config.Config, cmd *cobra.Command, threshold float64, method string, foldAccents bool) (similarity.Matcher, error) {
	matcher := similarity.Matcher{
		Threshold:   cfg.Matching.Threshold,
		FoldAccents: cfg.Matching.FoldAccents || foldAccents,
	}
	if cmd.Flags().Changed("threshold") {
		if threshold < 0 || threshold > 1 {
			return matcher, services.Wrap(services.ErrValidation, "cli", "--threshold", "must be between 0 and 1", fmt.Errorf("got %v", threshold))
		}
		matcher.Threshold = threshold
	}
	if method == "" {
		method = cfg.Matching.Method
	}
	parsed, err := similarity.ParseMethod(method)
	if err != nil {
		return matcher, services.Wrap(services.ErrValidation, "cli", "--method", method, err)
	}
	matcher.Method = parsed
	return matcher, nil
}
