package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"condodocs/internal/identifier"
	"condodocs/internal/organizer"
	"condodocs/internal/preflight"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var copyFiles bool
	var position int

	cmd := &cobra.Command{
		Use:   "sort [DIR]",
		Short: "File loose PDFs into folders named after a CNPJ",
		Long: `Move every PDF directly inside DIR (default paths.base_dir) into a
subfolder named after the CNPJ at sort.position (the third one by default).
Files without that CNPJ go to sort.unidentified. Names listed in
sort.exclude are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop, err := ctx.startSession(cmd, "sort")
			if err != nil {
				return err
			}
			defer stop()

			dir := s.cfg.Paths.BaseDir
			if len(args) == 1 {
				if dir, err = resolvePathFlag(args[0], dir); err != nil {
					return err
				}
			}
			if position > 0 {
				s.cfg.Sort.Position = position
			}
			mode := modeFor(s.cfg.Sort.Move && !copyFiles)

			if err := preflight.Require(sortPreflight(dir)); err != nil {
				return err
			}

			var summary organizer.Summary
			err = withRunLock(dir, func() error {
				var runErr error
				summary, runErr = ctx.runSort(cmd, s, dir, mode)
				return runErr
			})
			if err != nil {
				return err
			}
			s.finish(summary)
			printSummary(cmd.OutOrStdout(), fmt.Sprintf("Sorted %s", dir), summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyFiles, "copy", false, "Copy files instead of moving them")
	cmd.Flags().IntVar(&position, "position", 0, "1-based CNPJ position used as the folder (default sort.position)")
	return cmd
}

func sortPreflight(dir string) preflight.Result {
	return preflight.CheckDirectoryAccess("Sort directory", dir)
}

func (c *commandContext) runSort(cmd *cobra.Command, s *session, dir string, mode organizer.Mode) (organizer.Summary, error) {
	docs, err := c.loadDocuments(cmd, s, dir, s.cfg.Sort.Exclude, identifier.CNPJ, "sort")
	if err != nil {
		return organizer.Summary{}, err
	}
	org, done, err := c.newOrganizer(cmd, s)
	if err != nil {
		return organizer.Summary{}, err
	}
	defer done()
	return org.SortByIdentifier(s.ctx, dir, docs, organizer.SortOptions{
		Position:     s.cfg.Sort.Position,
		Unidentified: s.cfg.Sort.Unidentified,
		Mode:         mode,
	})
}
