package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validatePair(); err != nil {
		return err
	}
	if err := c.validateSort(); err != nil {
		return err
	}
	if err := c.validateNotas(); err != nil {
		return err
	}
	if err := c.validateFolders(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.BoletosDir == "" {
		return errors.New("paths.boletos_dir must be set")
	}
	if c.Paths.NotasDir == "" {
		return errors.New("paths.notas_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 1 {
		return errors.New("matching.threshold must be between 0 and 1")
	}
	switch c.Matching.Method {
	case MethodSequence, MethodLevenshtein:
		return nil
	default:
		return fmt.Errorf("matching.method: unsupported value %q (want %s or %s)", c.Matching.Method, MethodSequence, MethodLevenshtein)
	}
}

func (c *Config) validateNaming() error {
	if c.Naming.CompanyTokens < 1 {
		return errors.New("naming.company_tokens must be at least 1")
	}
	if err := validateFolderName("naming.company_fallback", c.Naming.CompanyFallback); err != nil {
		return err
	}
	if c.Naming.SequenceFallback == "" {
		return errors.New("naming.sequence_fallback must be set")
	}
	return validatePrefix("naming.compare_prefix", c.Naming.ComparePrefix)
}

func (c *Config) validatePair() error {
	if c.Pair.Position < 1 {
		return errors.New("pair.position must be at least 1")
	}
	if err := validatePrefix("pair.nota_only_prefix", c.Pair.NotaOnlyPrefix); err != nil {
		return err
	}
	if err := validatePrefix("pair.boleto_only_prefix", c.Pair.BoletoOnlyPrefix); err != nil {
		return err
	}
	if c.Pair.BoletoOnlyPrefix != "" && c.Pair.BoletoOnlyPrefix == c.Pair.NotaOnlyPrefix {
		return errors.New("pair.boleto_only_prefix must differ from pair.nota_only_prefix")
	}
	if err := validateFolderName("pair.notas_unidentified", c.Pair.NotasUnidentified); err != nil {
		return err
	}
	return validateFolderName("pair.boletos_unidentified", c.Pair.BoletosUnidentified)
}

func (c *Config) validateSort() error {
	if c.Sort.Position < 1 {
		return errors.New("sort.position must be at least 1")
	}
	return validateFolderName("sort.unidentified", c.Sort.Unidentified)
}

func (c *Config) validateNotas() error {
	switch c.Notas.GroupBy {
	case GroupByCompany, GroupByTrimmed:
	default:
		return fmt.Errorf("notas.group_by: unsupported value %q", c.Notas.GroupBy)
	}
	switch c.Notas.Rename {
	case RenameSequence, RenameTrimmed, RenameKeep:
	default:
		return fmt.Errorf("notas.rename: unsupported value %q", c.Notas.Rename)
	}
	return nil
}

func (c *Config) validateFolders() error {
	for field, value := range map[string]string{
		"notas.output_dir":   c.Notas.OutputDir,
		"boletos.output_dir": c.Boletos.OutputDir,
		"link.output_dir":    c.Link.OutputDir,
	} {
		if value == "" {
			return fmt.Errorf("%s must be set", field)
		}
	}
	if err := validateFolderName("boletos.unnamed", c.Boletos.Unnamed); err != nil {
		return err
	}
	if err := validateFolderName("link.boletos_subdir", c.Link.BoletosSubdir); err != nil {
		return err
	}
	if err := validateFolderName("link.notas_subdir", c.Link.NotasSubdir); err != nil {
		return err
	}
	if c.Link.BoletosSubdir == c.Link.NotasSubdir {
		return errors.New("link.boletos_subdir and link.notas_subdir must differ")
	}
	return validatePrefix("link.separator", c.Link.Separator)
}

func (c *Config) validateOrganize() error {
	switch c.Organize.OnConflict {
	case ConflictSkip, ConflictOverwrite, ConflictVersion:
		return nil
	default:
		return fmt.Errorf("organize.on_conflict: unsupported value %q (want skip, overwrite, or version)", c.Organize.OnConflict)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// validateFolderName rejects empty names and names that would escape their
// parent directory.
func validateFolderName(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s must be set", field)
	}
	if value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%s: %q is not a valid folder name", field, value)
	}
	return nil
}

func validatePrefix(field, value string) error {
	if strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%s: %q must not contain path separators", field, value)
	}
	return nil
}
