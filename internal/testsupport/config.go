package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"condodocs/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted at a unique temp directory per test with
// empty boletos and notas input folders already created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.BaseDir = base
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	for _, dir := range []string{cfgVal.BoletosPath(), cfgVal.NotasPath()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithConflictPolicy sets organize.on_conflict.
func WithConflictPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.OnConflict = policy
	}
}

// WithThreshold sets the similarity threshold and method.
func WithThreshold(threshold float64, method string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.Threshold = threshold
		b.cfg.Matching.Method = method
	}
}

// WithBoletoOnlyPrefix enables folders for boleto-only identifiers.
func WithBoletoOnlyPrefix(prefix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pair.BoletoOnlyPrefix = prefix
	}
}

// WithSortExclude sets the names sort leaves alone.
func WithSortExclude(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.Exclude = names
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.BaseDir
}

// Join builds a path under the config's base directory.
func Join(cfg *config.Config, elem ...string) string {
	return filepath.Join(append([]string{cfg.Paths.BaseDir}, elem...)...)
}
