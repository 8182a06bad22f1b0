package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"condodocs/internal/config"
	"condodocs/internal/logging"
	"condodocs/internal/organizer"
	"condodocs/internal/pdftext"
	"condodocs/internal/runlock"
	"condodocs/internal/services"
)

type globalFlags struct {
	config     string
	logLevel   string
	logFormat  string
	noProgress bool
}

type commandContext struct {
	flags     *globalFlags
	extractor pdftext.Extractor

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags, extractor pdftext.Extractor) *commandContext {
	return &commandContext{
		flags:     flags,
		extractor: extractor,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.flags.config)
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := strings.TrimSpace(c.flags.logFormat); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// session bundles what every organizing command needs.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
}

// startSession loads config and logger and returns a context carrying a new
// run id and the operation name. The context is cancelled on SIGINT/SIGTERM.
func (c *commandContext) startSession(cmd *cobra.Command, operation string) (*session, context.CancelFunc, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	ctx = services.WithRunID(ctx, uuid.NewString())
	ctx = services.WithOperation(ctx, operation)

	logging.WithContext(ctx, logger).Debug("run started",
		logging.String("config", c.configPath),
		logging.Bool("config_found", c.configSeen),
	)
	return &session{ctx: ctx, cfg: cfg, logger: logger}, stop, nil
}

func (s *session) log() *slog.Logger {
	return logging.WithContext(s.ctx, s.logger)
}

// finish logs the run counters.
func (s *session) finish(summary organizer.Summary) {
	s.log().Info("run complete",
		logging.Int("written", summary.Written()),
		logging.Int("placed", summary.Placed),
		logging.Int("skipped_existing", summary.SkippedExisting),
		logging.Int("overwritten", summary.Overwritten),
		logging.Int("versioned", summary.Versioned),
		logging.Int("missing_sources", summary.MissingSources),
		logging.Int("failed", summary.Failed),
	)
}

func (s *session) newOrganizer(progress func(organizer.Placement, organizer.Outcome)) (*organizer.Organizer, error) {
	policy, err := organizer.ParseConflictPolicy(s.cfg.Organize.OnConflict)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "organize.on_conflict", s.cfg.Organize.OnConflict, err)
	}
	return organizer.NewOrganizer(organizer.Options{
		OnConflict: policy,
		Verify:     s.cfg.Organize.Verify,
		Progress:   progress,
	}, s.logger), nil
}

// withRunLock holds the run lock on root while fn runs.
func withRunLock(root string, fn func() error) (err error) {
	lock, err := runlock.Acquire(root)
	if err != nil {
		if errors.Is(err, runlock.ErrLocked) {
			return fmt.Errorf("%w; wait for the other run to finish", err)
		}
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()
	return fn()
}

// withRunLocks holds the run lock on every distinct root while fn runs.
func withRunLocks(roots []string, fn func() error) error {
	if len(roots) == 0 {
		return fn()
	}
	rest := roots[1:]
	for len(rest) > 0 && filepath.Clean(rest[0]) == filepath.Clean(roots[0]) {
		rest = rest[1:]
	}
	return withRunLock(roots[0], func() error {
		return withRunLocks(rest, fn)
	})
}

// resolvePathFlag expands value when set and returns fallback otherwise.
func resolvePathFlag(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	expanded, err := config.ExpandPath(value)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", value, err)
	}
	return expanded, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func modeFor(move bool) organizer.Mode {
	if move {
		return organizer.Move
	}
	return organizer.Copy
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
