package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeNames()
	c.normalizeSort()
	c.normalizeOrganize()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.BaseDir) == "" {
		c.Paths.BaseDir = defaultBaseDir
	}
	if c.Paths.BaseDir, err = expandPath(strings.TrimSpace(c.Paths.BaseDir)); err != nil {
		return fmt.Errorf("paths.base_dir: %w", err)
	}
	c.Paths.BoletosDir = strings.TrimSpace(c.Paths.BoletosDir)
	c.Paths.NotasDir = strings.TrimSpace(c.Paths.NotasDir)
	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	return nil
}

func (c *Config) normalizeMatching() {
	c.Matching.Method = strings.ToLower(strings.TrimSpace(c.Matching.Method))
	if c.Matching.Method == "" {
		c.Matching.Method = defaultMethod
	}
}

func (c *Config) normalizeNames() {
	c.Naming.CompanyFallback = strings.TrimSpace(c.Naming.CompanyFallback)
	c.Naming.SequenceFallback = strings.TrimSpace(c.Naming.SequenceFallback)
	c.Naming.ComparePrefix = strings.TrimSpace(c.Naming.ComparePrefix)
	c.Pair.NotaOnlyPrefix = strings.TrimSpace(c.Pair.NotaOnlyPrefix)
	c.Pair.BoletoOnlyPrefix = strings.TrimSpace(c.Pair.BoletoOnlyPrefix)
	c.Pair.NotasUnidentified = strings.TrimSpace(c.Pair.NotasUnidentified)
	c.Pair.BoletosUnidentified = strings.TrimSpace(c.Pair.BoletosUnidentified)
	c.Notas.GroupBy = strings.ToLower(strings.TrimSpace(c.Notas.GroupBy))
	if c.Notas.GroupBy == "" {
		c.Notas.GroupBy = GroupByCompany
	}
	c.Notas.Rename = strings.ToLower(strings.TrimSpace(c.Notas.Rename))
	if c.Notas.Rename == "" {
		c.Notas.Rename = RenameSequence
	}
	c.Notas.OutputDir = strings.TrimSpace(c.Notas.OutputDir)
	c.Boletos.Unnamed = strings.TrimSpace(c.Boletos.Unnamed)
	c.Boletos.OutputDir = strings.TrimSpace(c.Boletos.OutputDir)
	c.Link.OutputDir = strings.TrimSpace(c.Link.OutputDir)
	c.Link.BoletosSubdir = strings.TrimSpace(c.Link.BoletosSubdir)
	c.Link.NotasSubdir = strings.TrimSpace(c.Link.NotasSubdir)
}

func (c *Config) normalizeSort() {
	c.Sort.Unidentified = strings.TrimSpace(c.Sort.Unidentified)
	if len(c.Sort.Exclude) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(c.Sort.Exclude))
	cleaned := make([]string, 0, len(c.Sort.Exclude))
	for _, name := range c.Sort.Exclude {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	c.Sort.Exclude = cleaned
}

func (c *Config) normalizeOrganize() {
	c.Organize.OnConflict = strings.ToLower(strings.TrimSpace(c.Organize.OnConflict))
	if c.Organize.OnConflict == "" {
		c.Organize.OnConflict = ConflictSkip
	}
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv("CONDODOCS_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}
