package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"condodocs/internal/organizer"
	"condodocs/internal/preflight"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var move bool

	cmd := &cobra.Command{
		Use:   "run [BASE]",
		Short: "Pair BASE's boletos and notas, then sort BASE's loose PDFs",
		Long: `Run pair on the boletos and notas folders of BASE (default
paths.base_dir) into the output folder, then sort the PDFs lying directly in
BASE by CNPJ.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop, err := ctx.startSession(cmd, "run")
			if err != nil {
				return err
			}
			defer stop()

			if len(args) == 1 {
				rebased, err := s.cfg.WithBase(args[0])
				if err != nil {
					return err
				}
				s.cfg = rebased
			}
			base := s.cfg.Paths.BaseDir
			dirs := pairDirs{
				boletos: s.cfg.BoletosPath(),
				notas:   s.cfg.NotasPath(),
				out:     s.cfg.OutputPath(),
			}

			checks := append(dirs.preflight(), sortPreflight(base))
			if err := preflight.Require(checks...); err != nil {
				return err
			}

			var paired, sorted organizer.Summary
			err = withRunLocks([]string{base, dirs.out}, func() error {
				var runErr error
				if paired, runErr = ctx.runPair(cmd, s, dirs, modeFor(move)); runErr != nil {
					return runErr
				}
				sorted, runErr = ctx.runSort(cmd, s, base, modeFor(s.cfg.Sort.Move))
				return runErr
			})
			if err != nil {
				return err
			}

			total := paired
			total.Merge(sorted)
			s.finish(total)

			out := cmd.OutOrStdout()
			printSummary(out, fmt.Sprintf("Paired into %s", dirs.out), paired)
			printSummary(out, fmt.Sprintf("Sorted %s", base), sorted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&move, "move", false, "Move boletos and notas instead of copying them")
	return cmd
}
