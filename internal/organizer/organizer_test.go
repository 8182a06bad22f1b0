package organizer_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"condodocs/internal/classify"
	"condodocs/internal/identifier"
	"condodocs/internal/logging"
	"condodocs/internal/organizer"
	"condodocs/internal/similarity"
	"condodocs/internal/testsupport"
)

const (
	cnpjAdmin = "00.000.000/0001-00"
	cnpjOne   = "11.111.111/1111-11"
	cnpjTwo   = "22.222.222/2222-22"
	cnpjThree = "33.333.333/3333-33"
)

func loadDocs(t *testing.T, dir string) []classify.Document {
	t.Helper()
	names, err := classify.ScanDir(dir, nil)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	docs, err := classify.LoadDocuments(context.Background(), dir, names, &testsupport.TextExtractor{}, identifier.CNPJ, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}
	return docs
}

func newOrganizer(policy organizer.ConflictPolicy) *organizer.Organizer {
	return organizer.NewOrganizer(organizer.Options{OnConflict: policy, Verify: true}, logging.NewNop())
}

func defaultPairOptions() organizer.PairOptions {
	return organizer.PairOptions{
		Position:            2,
		NotaOnlyPrefix:      "NF_",
		NotasUnidentified:   "NFs_SEM_CNPJ_IDENTIFICADO",
		BoletosUnidentified: "BOLETOS_SEM_CNPJ_IDENTIFICADO",
		Mode:                organizer.Copy,
	}
}

func runPair(t *testing.T, org *organizer.Organizer, boletosDir, notasDir, outDir string, opts organizer.PairOptions) organizer.Summary {
	t.Helper()
	summary, err := org.PairByIdentifier(context.Background(), organizer.PairInput{
		BoletosDir: boletosDir,
		Boletos:    loadDocs(t, boletosDir),
		NotasDir:   notasDir,
		Notas:      loadDocs(t, notasDir),
		OutputDir:  outDir,
	}, opts)
	if err != nil {
		t.Fatalf("PairByIdentifier: %v", err)
	}
	return summary
}

func TestPairByIdentifierEndToEnd(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	boletos, notas, out := cfg.BoletosPath(), cfg.NotasPath(), cfg.OutputPath()

	testsupport.WriteDocument(t, boletos, "f1.pdf", testsupport.CNPJText(cnpjAdmin, cnpjOne))
	testsupport.WriteDocument(t, notas, "f2.pdf", testsupport.CNPJText(cnpjAdmin, cnpjOne))
	testsupport.WriteDocument(t, notas, "f3.pdf", testsupport.CNPJText(cnpjAdmin, cnpjTwo))
	testsupport.WriteDocument(t, notas, "nf-sem.pdf", testsupport.CNPJText(cnpjAdmin))
	testsupport.WriteDocument(t, boletos, "bol-sem.pdf", "no identifiers here")
	testsupport.WriteDocument(t, boletos, "bol-only.pdf", testsupport.CNPJText(cnpjAdmin, cnpjThree))

	summary := runPair(t, newOrganizer(organizer.ConflictSkip), boletos, notas, out, defaultPairOptions())

	if got := testsupport.ListDir(t, filepath.Join(out, "11111111111111")); !reflect.DeepEqual(got, []string{"f1.pdf", "f2.pdf"}) {
		t.Fatalf("paired folder = %v", got)
	}
	if got := testsupport.ListDir(t, filepath.Join(out, "NF_22222222222222")); !reflect.DeepEqual(got, []string{"f3.pdf"}) {
		t.Fatalf("nota-only folder = %v", got)
	}
	if got := testsupport.ListDir(t, filepath.Join(out, "NFs_SEM_CNPJ_IDENTIFICADO")); !reflect.DeepEqual(got, []string{"nf-sem.pdf"}) {
		t.Fatalf("unidentified notas = %v", got)
	}
	if got := testsupport.ListDir(t, filepath.Join(out, "BOLETOS_SEM_CNPJ_IDENTIFICADO")); !reflect.DeepEqual(got, []string{"bol-sem.pdf"}) {
		t.Fatalf("unidentified boletos = %v", got)
	}
	testsupport.AssertMissing(t, filepath.Join(out, "33333333333333"))

	// copy mode keeps sources
	testsupport.AssertExists(t, filepath.Join(boletos, "f1.pdf"))
	testsupport.AssertExists(t, filepath.Join(notas, "f2.pdf"))

	if summary.Placed != 5 || summary.BothSides != 1 || summary.NotaOnly != 1 || summary.BoletoOnly != 1 || summary.Unidentified != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestPairByIdentifierBoletoOnlyPrefix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	boletos, notas, out := cfg.BoletosPath(), cfg.NotasPath(), cfg.OutputPath()
	testsupport.WriteDocument(t, boletos, "bol-only.pdf", testsupport.CNPJText(cnpjAdmin, cnpjThree))

	opts := defaultPairOptions()
	opts.BoletoOnlyPrefix = "BOL_"
	summary := runPair(t, newOrganizer(organizer.ConflictSkip), boletos, notas, out, opts)

	testsupport.AssertExists(t, filepath.Join(out, "BOL_33333333333333", "bol-only.pdf"))
	if summary.Placed != 1 || summary.BoletoOnly != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestPairRerunIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	boletos, notas, out := cfg.BoletosPath(), cfg.NotasPath(), cfg.OutputPath()
	testsupport.WriteDocument(t, boletos, "f1.pdf", testsupport.CNPJText(cnpjAdmin, cnpjOne))
	testsupport.WriteDocument(t, notas, "f2.pdf", testsupport.CNPJText(cnpjAdmin, cnpjOne))

	org := newOrganizer(organizer.ConflictSkip)
	first := runPair(t, org, boletos, notas, out, defaultPairOptions())
	second := runPair(t, org, boletos, notas, out, defaultPairOptions())

	if first.Placed != 2 {
		t.Fatalf("first run placed %d", first.Placed)
	}
	if second.Placed != 0 || second.SkippedExisting != 2 {
		t.Fatalf("second run should only skip: %+v", second)
	}
	if got := testsupport.ListDir(t, filepath.Join(out, "11111111111111")); len(got) != 2 {
		t.Fatalf("rerun duplicated files: %v", got)
	}
}

func TestPlaceVersionPolicy(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteDocument(t, src, "doc.pdf", "new content")
	testsupport.WriteDocument(t, dest, "doc.pdf", "old content")

	org := newOrganizer(organizer.ConflictVersion)
	placement := organizer.Placement{Source: filepath.Join(src, "doc.pdf"), DestDir: dest, Mode: organizer.Copy}

	summary, err := org.Place(context.Background(), []organizer.Placement{placement})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if summary.Versioned != 1 {
		t.Fatalf("expected versioned copy, got %+v", summary)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dest, "doc (1).pdf")); got != "new content" {
		t.Fatalf("versioned content = %q", got)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dest, "doc.pdf")); got != "old content" {
		t.Fatalf("original destination modified: %q", got)
	}

	// the same source again is recognised as already present
	summary, err = org.Place(context.Background(), []organizer.Placement{placement})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if summary.SkippedExisting != 1 || summary.Versioned != 0 {
		t.Fatalf("expected skip on identical version, got %+v", summary)
	}
	if got := testsupport.ListDir(t, dest); !reflect.DeepEqual(got, []string{"doc (1).pdf", "doc.pdf"}) {
		t.Fatalf("destination entries = %v", got)
	}
}

func TestPlaceOverwritePolicy(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteDocument(t, src, "doc.pdf", "new content")
	testsupport.WriteDocument(t, dest, "doc.pdf", "old content")

	summary, err := newOrganizer(organizer.ConflictOverwrite).Place(context.Background(), []organizer.Placement{
		{Source: filepath.Join(src, "doc.pdf"), DestDir: dest, Mode: organizer.Copy},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if summary.Overwritten != 1 {
		t.Fatalf("expected overwrite, got %+v", summary)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dest, "doc.pdf")); got != "new content" {
		t.Fatalf("destination content = %q", got)
	}
}

func TestPlaceMissingSourceIsSkipped(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	var outcomes []organizer.Outcome
	org := organizer.NewOrganizer(organizer.Options{
		Progress: func(_ organizer.Placement, o organizer.Outcome) { outcomes = append(outcomes, o) },
	}, nil)
	summary, err := org.Place(context.Background(), []organizer.Placement{
		{Source: filepath.Join(t.TempDir(), "gone.pdf"), DestDir: dest},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if summary.MissingSources != 1 || summary.Placed != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !reflect.DeepEqual(outcomes, []organizer.Outcome{organizer.MissingSource}) {
		t.Fatalf("progress outcomes = %v", outcomes)
	}
}

func TestPlaceBlockedDestinationContinues(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	a := testsupport.WriteDocument(t, src, "a.pdf", "a")
	b := testsupport.WriteDocument(t, src, "b.pdf", "b")
	c := testsupport.WriteDocument(t, src, "c.pdf", "c")
	testsupport.WriteDocument(t, out, "BLOCKED", "not a folder")

	summary, err := newOrganizer(organizer.ConflictSkip).Place(context.Background(), []organizer.Placement{
		{Source: a, DestDir: filepath.Join(out, "BLOCKED"), Mode: organizer.Copy},
		{Source: b, DestDir: filepath.Join(out, "BLOCKED"), Mode: organizer.Copy},
		{Source: c, DestDir: filepath.Join(out, "OK"), Mode: organizer.Copy},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if summary.Failed != 2 || summary.Placed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	testsupport.AssertExists(t, filepath.Join(out, "OK", "c.pdf"))
	if got := testsupport.ReadFile(t, filepath.Join(out, "BLOCKED")); got != "not a folder" {
		t.Fatalf("blocking file changed: %q", got)
	}
}

func TestPlaceCopyPreservesModTimeAndRenames(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	path := testsupport.WriteDocument(t, src, "orig.pdf", "payload")
	stamp := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	_, err := newOrganizer(organizer.ConflictSkip).Place(context.Background(), []organizer.Placement{
		{Source: path, DestDir: filepath.Join(dest, "nested"), DestName: "renamed.pdf", Mode: organizer.Copy},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	info, err := os.Stat(filepath.Join(dest, "nested", "renamed.pdf"))
	if err != nil {
		t.Fatalf("stat copy: %v", err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("mod time = %v, want %v", info.ModTime(), stamp)
	}
	testsupport.AssertExists(t, path)
}

func TestPlaceCanceledContext(t *testing.T) {
	src := t.TempDir()
	testsupport.WriteDocument(t, src, "a.pdf", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := newOrganizer(organizer.ConflictSkip).Place(ctx, []organizer.Placement{
		{Source: filepath.Join(src, "a.pdf"), DestDir: t.TempDir()},
	})
	if err == nil {
		t.Fatal("expected context error")
	}
	if summary.Placed != 0 {
		t.Fatalf("nothing should be placed: %+v", summary)
	}
}

func TestSortByIdentifierMovesFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteDocument(t, dir, "a.pdf", testsupport.CNPJText(cnpjAdmin, cnpjOne, cnpjTwo))
	testsupport.WriteDocument(t, dir, "b.pdf", testsupport.CNPJText(cnpjAdmin, cnpjOne))
	testsupport.WriteDocument(t, dir, "keep.pdf", testsupport.CNPJText(cnpjAdmin, cnpjOne, cnpjTwo))

	names, err := classify.ScanDir(dir, []string{"keep.pdf"})
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	docs, err := classify.LoadDocuments(context.Background(), dir, names, &testsupport.TextExtractor{}, identifier.CNPJ, nil, nil)
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}

	summary, err := newOrganizer(organizer.ConflictSkip).SortByIdentifier(context.Background(), dir, docs, organizer.SortOptions{
		Position:     3,
		Unidentified: "SEM_TERCER_CNPJ",
		Mode:         organizer.Move,
	})
	if err != nil {
		t.Fatalf("SortByIdentifier: %v", err)
	}

	testsupport.AssertExists(t, filepath.Join(dir, "22222222222222", "a.pdf"))
	testsupport.AssertExists(t, filepath.Join(dir, "SEM_TERCER_CNPJ", "b.pdf"))
	testsupport.AssertMissing(t, filepath.Join(dir, "a.pdf"))
	testsupport.AssertMissing(t, filepath.Join(dir, "b.pdf"))
	testsupport.AssertExists(t, filepath.Join(dir, "keep.pdf"))
	if summary.Placed != 2 || summary.Unidentified != 1 || summary.Groups != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestSortMoveWithExistingDestinationKeepsSource(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteDocument(t, dir, "b.pdf", "no ids")
	testsupport.WriteDocument(t, filepath.Join(dir, "SEM_TERCER_CNPJ"), "b.pdf", "earlier copy")

	docs := []classify.Document{{Name: "b.pdf", Path: filepath.Join(dir, "b.pdf"), IDs: []string{}}}
	summary, err := newOrganizer(organizer.ConflictSkip).SortByIdentifier(context.Background(), dir, docs, organizer.SortOptions{
		Position: 3, Unidentified: "SEM_TERCER_CNPJ", Mode: organizer.Move,
	})
	if err != nil {
		t.Fatalf("SortByIdentifier: %v", err)
	}
	if summary.SkippedExisting != 1 {
		t.Fatalf("expected skip, got %+v", summary)
	}
	testsupport.AssertExists(t, filepath.Join(dir, "b.pdf"))
	if got := testsupport.ReadFile(t, filepath.Join(dir, "SEM_TERCER_CNPJ", "b.pdf")); got != "earlier copy" {
		t.Fatalf("existing destination replaced: %q", got)
	}
}

func TestOrganizeNotasByCompany(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	for _, name := range []string{"ACME SERVICOS LTDA 000123.pdf", "ACME SERVICOS LTDA 000124.pdf", "2024.pdf"} {
		testsupport.WriteDocument(t, src, name, name)
	}
	company := classify.CompanyName{Tokens: 2, Fallback: "OUTROS"}
	names, _ := classify.ScanDir(src, nil)

	summary, err := newOrganizer(organizer.ConflictSkip).OrganizeNotas(context.Background(), src, names, out, organizer.NotasOptions{
		Folder:  company.Name,
		Renamer: classify.NotaRenamer{Mode: classify.RenameSequence, Company: company, SequenceFallback: "0000"},
		Mode:    organizer.Copy,
	})
	if err != nil {
		t.Fatalf("OrganizeNotas: %v", err)
	}
	if got := testsupport.ListDir(t, filepath.Join(out, "ACME SERVICOS")); !reflect.DeepEqual(got, []string{"ACME_000123.pdf", "ACME_000124.pdf"}) {
		t.Fatalf("company folder = %v", got)
	}
	testsupport.AssertExists(t, filepath.Join(out, "OUTROS", "OUTROS_2024.pdf"))
	if summary.Groups != 2 || summary.Placed != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestOrganizeBoletos(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testsupport.WriteDocument(t, src, "05-03-2024-ACME SERVICOS-123.pdf", "a")
	testsupport.WriteDocument(t, src, "06-03-2024-ACME_SERVICOS-124.pdf", "b")
	testsupport.WriteDocument(t, src, "avulso.pdf", "c")
	names, _ := classify.ScanDir(src, nil)

	summary, err := newOrganizer(organizer.ConflictSkip).OrganizeBoletos(context.Background(), src, names, out, organizer.BoletosOptions{
		Unnamed: "BOLETOS_SEM_NOME",
	})
	if err != nil {
		t.Fatalf("OrganizeBoletos: %v", err)
	}
	if got := testsupport.ListDir(t, filepath.Join(out, "ACME SERVICOS")); !reflect.DeepEqual(got, []string{"05-03-2024-123.pdf", "06-03-2024-124.pdf"}) {
		t.Fatalf("boleto folder = %v", got)
	}
	testsupport.AssertExists(t, filepath.Join(out, "BOLETOS_SEM_NOME", "avulso.pdf"))
	if summary.Groups != 1 || summary.Unidentified != 1 || summary.Placed != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestLinkFolders(t *testing.T) {
	base := t.TempDir()
	boletos := filepath.Join(base, "BOLETOS")
	notas := filepath.Join(base, "NOTAS")
	out := filepath.Join(base, "VINCULADOS")
	testsupport.WriteDocument(t, filepath.Join(boletos, "Rooftop Canuto 1000"), "b1.pdf", "b1")
	testsupport.WriteDocument(t, filepath.Join(boletos, "Rooftop Canuto 1000", "2024"), "b2.pdf", "b2")
	testsupport.WriteDocument(t, filepath.Join(boletos, "Alpha"), "b3.pdf", "b3")
	testsupport.WriteDocument(t, filepath.Join(notas, "ROOFTOP_CANUTO_1000_20037"), "n1.pdf", "n1")
	testsupport.WriteDocument(t, filepath.Join(notas, "Zulu"), "n2.pdf", "n2")

	summary, pairs, err := newOrganizer(organizer.ConflictSkip).LinkFolders(context.Background(), organizer.LinkOptions{
		BoletosRoot:   boletos,
		NotasRoot:     notas,
		OutputDir:     out,
		BoletosSubdir: "BOLETOS",
		NotasSubdir:   "NOTAS_FISCAIS",
		Separator:     "_",
		Matcher:       similarity.Default(),
	})
	if err != nil {
		t.Fatalf("LinkFolders: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Boleto != "Rooftop Canuto 1000" || pairs[0].Nota != "ROOFTOP_CANUTO_1000_20037" {
		t.Fatalf("pairs = %+v", pairs)
	}
	linked := filepath.Join(out, "Rooftop Canuto 1000_ROOFTOP_CANUTO_1000_20037")
	testsupport.AssertExists(t, filepath.Join(linked, "BOLETOS", "b1.pdf"))
	testsupport.AssertExists(t, filepath.Join(linked, "BOLETOS", "2024", "b2.pdf"))
	testsupport.AssertExists(t, filepath.Join(linked, "NOTAS_FISCAIS", "n1.pdf"))
	if summary.LinkedPairs != 1 || summary.Placed != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestMatchFoldersIsManyToMany(t *testing.T) {
	pairs := organizer.MatchFolders(
		[]string{"ACME", "ACME LIMPEZA", "---"},
		[]string{"acme limpeza ltda", "Acme", "***"},
		similarity.Default(),
	)
	if len(pairs) != 4 {
		t.Fatalf("expected 4 pairs, got %+v", pairs)
	}
}

func TestLinkFoldersMissingRoot(t *testing.T) {
	_, _, err := newOrganizer(organizer.ConflictSkip).LinkFolders(context.Background(), organizer.LinkOptions{
		BoletosRoot: filepath.Join(t.TempDir(), "absent"),
		NotasRoot:   t.TempDir(),
		OutputDir:   t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing boletos root")
	}
}

func TestCompareDocuments(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	a := classify.Document{Name: "a.pdf", Path: testsupport.WriteDocument(t, src, "a.pdf", "a"), IDs: []string{cnpjOne, cnpjTwo, cnpjOne}}
	b := classify.Document{Name: "b.pdf", Path: testsupport.WriteDocument(t, src, "b.pdf", "b"), IDs: []string{cnpjTwo, cnpjOne}}
	c := classify.Document{Name: "c.pdf", Path: testsupport.WriteDocument(t, src, "c.pdf", "c"), IDs: []string{cnpjOne}}
	empty := classify.Document{Name: "d.pdf", Path: testsupport.WriteDocument(t, src, "d.pdf", "d"), IDs: []string{}}

	org := newOrganizer(organizer.ConflictSkip)
	result, summary, err := org.CompareDocuments(context.Background(), a, b, out, "CNPJ_")
	if err != nil {
		t.Fatalf("CompareDocuments: %v", err)
	}
	if !result.Matched || result.Folder != "CNPJ_11111111111111" {
		t.Fatalf("unexpected result %+v", result)
	}
	if got := testsupport.ListDir(t, filepath.Join(out, "CNPJ_11111111111111")); !reflect.DeepEqual(got, []string{"a.pdf", "b.pdf"}) {
		t.Fatalf("compare folder = %v", got)
	}
	if summary.Placed != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	for _, other := range []classify.Document{c, empty} {
		result, _, err := org.CompareDocuments(context.Background(), a, other, out, "CNPJ_")
		if err != nil {
			t.Fatalf("CompareDocuments: %v", err)
		}
		if result.Matched {
			t.Fatalf("expected no match against %s", other.Name)
		}
	}
	result, _, _ = org.CompareDocuments(context.Background(), empty, empty, out, "CNPJ_")
	if result.Matched {
		t.Fatal("two empty sets must not match")
	}
}

func TestParseConflictPolicy(t *testing.T) {
	if p, err := organizer.ParseConflictPolicy(" Version "); err != nil || p != organizer.ConflictVersion {
		t.Fatalf("ParseConflictPolicy = %q, %v", p, err)
	}
	if _, err := organizer.ParseConflictPolicy("merge"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSummaryRows(t *testing.T) {
	s := organizer.Summary{Placed: 2, LinkedPairs: 1}
	rows := s.Rows()
	if rows[0].Label != "Placed" || rows[0].Value != 2 {
		t.Fatalf("first row = %+v", rows[0])
	}
	last := rows[len(rows)-1]
	if last.Label != "Linked folder pairs" || last.Value != 1 {
		t.Fatalf("last row = %+v", last)
	}
	if s.Written() != 2 {
		t.Fatalf("Written = %d", s.Written())
	}
}
