package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"condodocs/internal/classify"
	"condodocs/internal/organizer"
	"condodocs/internal/preflight"
)

func newBoletosCommand(ctx *commandContext) *cobra.Command {
	var srcFlag, outFlag string
	var move bool

	cmd := &cobra.Command{
		Use:   "boletos",
		Short: "Group boletos into company folders parsed from their names",
		Long: `Copy every PDF of the boletos folder into a folder named after the
company part of names shaped like "DD-MM-YYYY-Company Name-12345.pdf",
renamed to "DD-MM-YYYY-12345.pdf". Names that do not follow that shape keep
their name and go to boletos.unnamed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop, err := ctx.startSession(cmd, "boletos")
			if err != nil {
				return err
			}
			defer stop()
			cfg := s.cfg

			src, err := resolvePathFlag(srcFlag, cfg.BoletosPath())
			if err != nil {
				return err
			}
			out, err := resolvePathFlag(outFlag, cfg.ResolveDir(cfg.Boletos.OutputDir))
			if err != nil {
				return err
			}

			if err := preflight.Require(
				preflight.CheckReadable("Boletos directory", src),
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
				summary, err = org.OrganizeBoletos(s.ctx, src, names, out, organizer.BoletosOptions{
					Unnamed: cfg.Boletos.Unnamed,
					Mode:    modeFor(move),
				})
				return err
			})
			if err != nil {
				return err
			}
			s.finish(summary)
			printSummary(cmd.OutOrStdout(), fmt.Sprintf("Boletos organized into %s", out), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&srcFlag, "src", "", "Boletos folder (default paths.boletos_dir)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output folder (default boletos.output_dir)")
	cmd.Flags().BoolVar(&move, "move", false, "Move files instead of copying them")
	return cmd
}
