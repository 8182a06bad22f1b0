package preflight

import (
	"fmt"
	"strings"

	"condodocs/internal/config"
	"condodocs/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the configured input folders for read access and the output
// root for write access.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Base directory", cfg.Paths.BaseDir),
		CheckReadable("Boletos directory", cfg.BoletosPath()),
		CheckReadable("Notas directory", cfg.NotasPath()),
		CheckWritableRoot("Output directory", cfg.OutputPath()),
	}
}

// Require returns an error naming every failed result, or nil.
func Require(results ...Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "check directories", strings.Join(failed, "; "), nil)
}
