package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"condodocs/internal/classify"
	"condodocs/internal/identifier"
	"condodocs/internal/logging"
	"condodocs/internal/preflight"
	"condodocs/internal/services"
)

// scanRow is one line of the scan report and of its CSV export.
type scanRow struct {
	File    string `csv:"file"`
	CNPJs   string `csv:"cnpjs"`
	Postals string `csv:"ceps"`
	Status  string `csv:"status"`
}

// scanKinds selects the identifier columns a scan fills.
type scanKinds struct {
	cnpj   bool
	postal bool
}

func parseScanKinds(value string) (scanKinds, error) {
	if strings.TrimSpace(value) == "" || strings.EqualFold(strings.TrimSpace(value), "all") {
		return scanKinds{cnpj: true, postal: true}, nil
	}
	kind, err := identifier.ParseKind(value)
	if err != nil {
		return scanKinds{}, services.Wrap(services.ErrValidation, "cli", "--kind", value, err)
	}
	return scanKinds{cnpj: kind == identifier.CNPJ, postal: kind == identifier.Postal}, nil
}

type scanTotals struct {
	files      int
	withCNPJ   int
	withPostal int
	unreadable int
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var csvPath, kindFlag string

	cmd := &cobra.Command{
		Use:   "scan [DIR]",
		Short: "List the CNPJs and CEPs found in each PDF",
		Long: `Read every PDF directly inside DIR (default paths.base_dir) and report
the distinct CNPJs and CEPs found in it, in order of appearance. Nothing is
copied or moved. --kind cnpj or --kind cep limits the report to one kind of
identifier. --csv also writes the report as CSV.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseScanKinds(kindFlag)
			if err != nil {
				return err
			}
			s, stop, err := ctx.startSession(cmd, "scan")
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
			if err := preflight.Require(preflight.CheckReadable("Scan directory", dir)); err != nil {
				return err
			}

			rows, totals, err := ctx.scanDir(cmd, s, dir, kinds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No PDF files found in %s\n", dir)
			} else {
				table := make([][]string, 0, len(rows))
				for _, row := range rows {
					table = append(table, []string{row.File, row.CNPJs, row.Postals, row.Status})
				}
				fmt.Fprintln(out, renderTable([]string{"File", "CNPJs", "CEPs", "Status"}, table, nil))
			}
			fmt.Fprintf(out, "Files: %d, with CNPJ: %d, with CEP: %d, unreadable: %d\n",
				totals.files, totals.withCNPJ, totals.withPostal, totals.unreadable)

			if strings.TrimSpace(csvPath) != "" {
				target, err := resolvePathFlag(csvPath, "")
				if err != nil {
					return err
				}
				if err := writeScanCSV(target, rows); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote report to %s\n", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the report to this CSV file")
	cmd.Flags().StringVar(&kindFlag, "kind", "all", "Identifiers to report: cnpj, cep or all")
	return cmd
}

func (c *commandContext) scanDir(cmd *cobra.Command, s *session, dir string, kinds scanKinds) ([]scanRow, scanTotals, error) {
	var totals scanTotals
	names, err := classify.ScanDir(dir, nil)
	if err != nil {
		return nil, totals, err
	}

	logger := s.log()
	bar := c.newProgress(cmd.ErrOrStderr(), len(names), "scan")
	defer bar.Finish()

	rows := make([]scanRow, 0, len(names))
	for _, name := range names {
		if err := s.ctx.Err(); err != nil {
			return rows, totals, err
		}
		totals.files++
		row := scanRow{File: name, Status: "ok"}
		text, err := c.extractor.Text(filepath.Join(dir, name))
		if err != nil {
			logging.WarnWithContext(logger, "document unreadable", "document_unreadable",
				logging.String(logging.FieldDocument, name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the file opens in a PDF viewer"),
			)
			row.Status = "unreadable"
			totals.unreadable++
		} else {
			found := identifier.Scan(text)
			if !kinds.cnpj {
				found.CNPJs = nil
			}
			if !kinds.postal {
				found.Postals = nil
			}
			cnpjs := identifier.Unique(found.CNPJs)
			postals := identifier.Unique(found.Postals)
			row.CNPJs = strings.Join(cnpjs, "; ")
			row.Postals = strings.Join(postals, "; ")
			if len(cnpjs) > 0 {
				totals.withCNPJ++
			}
			if len(postals) > 0 {
				totals.withPostal++
			}
			if found.Empty() {
				row.Status = "no identifiers"
			}
		}
		rows = append(rows, row)
		bar.Add()
	}
	return rows, totals, nil
}

func writeScanCSV(path string, rows []scanRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := marshalScanCSV(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func marshalScanCSV(w io.Writer, rows []scanRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv report: %w", err)
	}
	return nil
}
