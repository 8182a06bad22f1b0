package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"condodocs/internal/classify"
	"condodocs/internal/config"
	"condodocs/internal/organizer"
	"condodocs/internal/preflight"
)

func newNotasCommand(ctx *commandContext) *cobra.Command {
	var srcFlag, outFlag, groupBy, rename string
	var move bool

	cmd := &cobra.Command{
		Use:   "notas",
		Short: "Group notas fiscais into company folders derived from their names",
		Long: `Copy every PDF of the notas folder into a folder named after the
company words of its filename.

--group-by company uses the first naming.company_tokens non-numeric words;
--group-by trimmed drops the trailing number instead. --rename chooses the
destination name: sequence gives <first word>_<last number>.pdf, trimmed
gives the trimmed name, keep leaves the name as is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop, err := ctx.startSession(cmd, "notas")
			if err != nil {
				return err
			}
			defer stop()
			cfg := s.cfg

			src, err := resolvePathFlag(srcFlag, cfg.NotasPath())
			if err != nil {
				return err
			}
			out, err := resolvePathFlag(outFlag, cfg.ResolveDir(cfg.Notas.OutputDir))
			if err != nil {
				return err
			}
			opts, err := notasOptions(cfg, groupBy, rename, modeFor(move))
			if err != nil {
				return err
			}

			if err := preflight.Require(
				preflight.CheckReadable("Notas directory", src),
				preflight.CheckWritableRoot("Output directory", out),
			); err != nil {
				return err
			}

			var summary organizer.Summary
			err = withRunLock(out, func() error {
				names, err := classify.ScanDir(src, nil)
				if err != nil {
					return err
				}
				org, done, err := ctx.newOrganizer(cmd, s)
				if err != nil {
					return err
				}
				defer done()
				summary, err = org.OrganizeNotas(s.ctx, src, names, out, opts)
				return err
			})
			if err != nil {
				return err
			}
			s.finish(summary)
			printSummary(cmd.OutOrStdout(), fmt.Sprintf("Notas organized into %s", out), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&srcFlag, "src", "", "Notas fiscais folder (default paths.notas_dir)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output folder (default notas.output_dir)")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "Folder strategy: company or trimmed (default notas.group_by)")
	cmd.Flags().StringVar(&rename, "rename", "", "Rename strategy: sequence, trimmed or keep (default notas.rename)")
	cmd.Flags().BoolVar(&move, "move", false, "Move files instead of copying them")
	return cmd
}

func notasOptions(cfg *config.Config, groupBy, rename string, mode organizer.Mode) (organizer.NotasOptions, error) {
	groupBy = strings.ToLower(strings.TrimSpace(groupBy))
	if groupBy == "" {
		groupBy = cfg.Notas.GroupBy
	}
	rename = strings.ToLower(strings.TrimSpace(rename))
	if rename == "" {
		rename = cfg.Notas.Rename
	}

	company := classify.CompanyName{Tokens: cfg.Naming.CompanyTokens, Fallback: cfg.Naming.CompanyFallback}
	opts := organizer.NotasOptions{
		Renamer: classify.NotaRenamer{
			Mode:             rename,
			Company:          company,
			SequenceFallback: cfg.Naming.SequenceFallback,
		},
		Mode: mode,
	}

	switch groupBy {
	case config.GroupByCompany:
		opts.Folder = company.Name
	case config.GroupByTrimmed:
		opts.Folder = classify.TrailingDigitsTrimmed{Fallback: cfg.Naming.CompanyFallback}.Name
	default:
		return opts, fmt.Errorf("--group-by: unsupported value %q (want company or trimmed)", groupBy)
	}
	switch rename {
	case config.RenameSequence, config.RenameTrimmed, config.RenameKeep:
	default:
		return opts, fmt.Errorf("--rename: unsupported value %q (want sequence, trimmed or keep)", rename)
	}
	return opts, nil
}
