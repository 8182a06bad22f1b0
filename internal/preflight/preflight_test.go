package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"condodocs/internal/config"
	"condodocs/internal/services"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckReadable("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableRoot_Missing(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "ORGANIZADOS")
	result := CheckWritableRoot("out", target)
	if !result.Passed {
		t.Fatalf("expected creatable path to pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckWritableRoot_UnderFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckWritableRoot("out", filepath.Join(f, "child"))
	if result.Passed {
		t.Fatal("expected failure when parent is a file")
	}
}

func TestRunAllAndRequire(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	if err := os.MkdirAll(cfg.BoletosPath(), 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(&cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	err := Require(results...)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing notas dir, got %v", err)
	}
	if !strings.Contains(err.Error(), "Notas directory") {
		t.Fatalf("error should name the failing check: %v", err)
	}

	if err := os.MkdirAll(cfg.NotasPath(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Require(RunAll(&cfg)...); err != nil {
		t.Fatalf("expected all checks to pass: %v", err)
	}
}
