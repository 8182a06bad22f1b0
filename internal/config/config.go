package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the input and output folders. Relative folder names are
// resolved against BaseDir.
type Paths struct {
	BaseDir    string `toml:"base_dir"`
	BoletosDir string `toml:"boletos_dir"`
	NotasDir   string `toml:"notas_dir"`
	OutputDir  string `toml:"output_dir"`
}

// Matching contains the similarity settings used when linking folders.
type Matching struct {
	Threshold   float64 `toml:"threshold"`
	Method      string  `toml:"method"`
	FoldAccents bool    `toml:"fold_accents"`
}

// Naming contains derived-name heuristics and fallback tokens.
type Naming struct {
	CompanyTokens    int    `toml:"company_tokens"`
	CompanyFallback  string `toml:"company_fallback"`
	SequenceFallback string `toml:"sequence_fallback"`
	ComparePrefix    string `toml:"compare_prefix"`
}

// Pair configures cross-matching of boletos and notas by identifier.
type Pair struct {
	Position            int    `toml:"position"`
	NotaOnlyPrefix      string `toml:"nota_only_prefix"`
	BoletoOnlyPrefix    string `toml:"boleto_only_prefix"`
	NotasUnidentified   string `toml:"notas_unidentified"`
	BoletosUnidentified string `toml:"boletos_unidentified"`
}

// Sort configures in-place sorting of loose files by identifier.
type Sort struct {
	Position     int      `toml:"position"`
	Unidentified string   `toml:"unidentified"`
	Exclude      []string `toml:"exclude"`
	Move         bool     `toml:"move"`
}

// Notas configures organization of notas fiscais by derived company name.
type Notas struct {
	GroupBy   string `toml:"group_by"`
	Rename    string `toml:"rename"`
	OutputDir string `toml:"output_dir"`
}

// Boletos configures organization of boletos by parsed filename.
type Boletos struct {
	Unnamed   string `toml:"unnamed"`
	OutputDir string `toml:"output_dir"`
}

// Link configures similarity linking of boleto and nota folders.
type Link struct {
	OutputDir     string `toml:"output_dir"`
	BoletosSubdir string `toml:"boletos_subdir"`
	NotasSubdir   string `toml:"notas_subdir"`
	Separator     string `toml:"separator"`
}

// Organize contains settings shared by every placement.
type Organize struct {
	OnConflict string `toml:"on_conflict"`
	Verify     bool   `toml:"verify"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for condodocs.
//
// Configuration sections by command:
//   - Paths: base, boletos, notas and output folders
//   - Matching: similarity threshold and method (link)
//   - Naming: company-name heuristic and fallback tokens (notas, compare)
//   - Pair: identifier position and bucket names (pair, run)
//   - Sort: identifier position, bucket and exclusions (sort, run)
//   - Notas / Boletos / Link: per-command output folders and strategies
//   - Organize: conflict policy and copy verification
//   - Logging: log format, level, and optional log directory
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Naming   Naming   `toml:"naming"`
	Pair     Pair     `toml:"pair"`
	Sort     Sort     `toml:"sort"`
	Notas    Notas    `toml:"notas"`
	Boletos  Boletos  `toml:"boletos"`
	Link     Link     `toml:"link"`
	Organize Organize `toml:"organize"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ResolveDir returns dir unchanged when it is absolute and joined onto the
// base directory otherwise.
func (c *Config) ResolveDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return c.Paths.BaseDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.Paths.BaseDir, dir)
}

// BoletosPath is the absolute boletos input folder.
func (c *Config) BoletosPath() string { return c.ResolveDir(c.Paths.BoletosDir) }

// NotasPath is the absolute notas fiscais input folder.
func (c *Config) NotasPath() string { return c.ResolveDir(c.Paths.NotasDir) }

// OutputPath is the absolute output root used by pair and compare.
func (c *Config) OutputPath() string { return c.ResolveDir(c.Paths.OutputDir) }

// WithBase returns a copy of the configuration rooted at base. Relative
// folders follow the new base.
func (c *Config) WithBase(base string) (*Config, error) {
	clone := *c
	clone.Sort.Exclude = append([]string(nil), c.Sort.Exclude...)
	expanded, err := expandPath(base)
	if err != nil {
		return nil, fmt.Errorf("paths.base_dir: %w", err)
	}
	clone.Paths.BaseDir = expanded
	return &clone, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
