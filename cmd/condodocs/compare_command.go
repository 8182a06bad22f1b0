package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"condodocs/internal/classify"
	"condodocs/internal/identifier"
	"condodocs/internal/organizer"
	"condodocs/internal/preflight"
	"condodocs/internal/services"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "compare FILE1 FILE2",
		Short: "Copy two PDFs into one folder when they carry the same CNPJs",
		Long: `Extract the distinct CNPJs of both files. When both lists are non-empty
and hold the same CNPJs, copy both files into <out>/CNPJ_<digits of the first
CNPJ>. Otherwise nothing is copied.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop, err := ctx.startSession(cmd, "compare")
			if err != nil {
				return err
			}
			defer stop()

			out, err := resolvePathFlag(outFlag, s.cfg.OutputPath())
			if err != nil {
				return err
			}
			docs := make([]classify.Document, 0, 2)
			for _, arg := range args {
				path, err := resolvePathFlag(arg, "")
				if err != nil {
					return err
				}
				if info, err := os.Stat(path); err != nil || info.IsDir() {
					return services.Wrap(services.ErrNotFound, "cli", "compare", path, err)
				}
				loaded, err := classify.LoadDocuments(s.ctx, filepath.Dir(path), []string{filepath.Base(path)},
					ctx.extractor, identifier.CNPJ, s.logger, nil)
				if err != nil {
					return err
				}
				docs = append(docs, loaded...)
			}
			if err := preflight.Require(preflight.CheckWritableRoot("Output directory", out)); err != nil {
				return err
			}

			var result organizer.CompareResult
			var summary organizer.Summary
			err = withRunLock(out, func() error {
				org, done, err := ctx.newOrganizer(cmd, s)
				if err != nil {
					return err
				}
				defer done()
				result, summary, err = org.CompareDocuments(s.ctx, docs[0], docs[1], out, s.cfg.Naming.ComparePrefix)
				return err
			})
			if err != nil {
				return err
			}
			s.finish(summary)

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable(
				[]string{"File", "CNPJs"},
				[][]string{
					{docs[0].Name, describeIDs(docs[0], result.First)},
					{docs[1].Name, describeIDs(docs[1], result.Second)},
				},
				nil,
			))
			if !result.Matched {
				fmt.Fprintln(w, "CNPJs differ; nothing copied")
				return nil
			}
			printSummary(w, fmt.Sprintf("Same CNPJs; copied into %s", filepath.Join(out, result.Folder)), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFlag, "out", "", "Output folder (default paths.output_dir)")
	return cmd
}

func describeIDs(doc classify.Document, ids []string) string {
	if doc.Err != nil {
		return "unreadable"
	}
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
