package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"condodocs/internal/logging"
	"condodocs/internal/services"
)

// Mode selects whether a placement keeps the source file.
type Mode int

const (
	// Copy leaves the source in place.
	Copy Mode = iota
	// Move relocates the source.
	Move
)

func (m Mode) String() string {
	if m == Move {
		return "move"
	}
	return "copy"
}

// ConflictPolicy decides what happens when the destination file exists.
type ConflictPolicy string

const (
	ConflictSkip      ConflictPolicy = "skip"
	ConflictOverwrite ConflictPolicy = "overwrite"
	ConflictVersion   ConflictPolicy = "version"
)

// ParseConflictPolicy maps a configuration value to a ConflictPolicy.
func ParseConflictPolicy(value string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", ConflictSkip:
		return ConflictSkip, nil
	case ConflictOverwrite:
		return ConflictOverwrite, nil
	case ConflictVersion:
		return ConflictVersion, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q", value)
	}
}

// Placement is one file to copy or move.
type Placement struct {
	Source  string
	DestDir string
	// DestName defaults to the source's base name.
	DestName string
	Mode     Mode
}

// Target is the destination path before conflict resolution.
func (p Placement) Target() string {
	name := p.DestName
	if name == "" {
		name = filepath.Base(p.Source)
	}
	return filepath.Join(p.DestDir, name)
}

// Outcome is the result of a single placement.
type Outcome int

const (
	Placed Outcome = iota
	SkippedExisting
	Overwritten
	Versioned
	MissingSource
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Placed:
		return "placed"
	case SkippedExisting:
		return "skipped_existing"
	case Overwritten:
		return "overwritten"
	case Versioned:
		return "versioned"
	case MissingSource:
		return "missing_source"
	default:
		return "failed"
	}
}

// Options configures an Organizer.
type Options struct {
	OnConflict ConflictPolicy
	// Verify hashes source and destination after every copy.
	Verify bool
	// Progress, when set, is called after every placement.
	Progress func(Placement, Outcome)
}

// Organizer executes placements.
type Organizer struct {
	opts   Options
	logger *slog.Logger
}

// NewOrganizer constructs an organizer. A nil logger discards output.
func NewOrganizer(opts Options, logger *slog.Logger) *Organizer {
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}
	return &Organizer{opts: opts, logger: logging.NewComponentLogger(logger, "organizer")}
}

// Place executes placements in order and returns the counters. Per-file
// failures are logged and counted; the only error returned is ctx's.
func (o *Organizer) Place(ctx context.Context, placements []Placement) (Summary, error) {
	var summary Summary
	for _, p := range placements {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome := o.placeOne(ctx, p)
		summary.record(outcome)
		if o.opts.Progress != nil {
			o.opts.Progress(p, outcome)
		}
	}
	return summary, nil
}

func (o *Organizer) placeOne(ctx context.Context, p Placement) Outcome {
	logger := logging.WithContext(services.WithDocument(ctx, filepath.Base(p.Source)), o.logger)

	info, err := os.Stat(p.Source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.WarnWithContext(logger, "source file not found; skipping", "source_missing",
				logging.String("path", p.Source),
				logging.Error(services.Wrap(services.ErrMissingSource, "organizer", "stat source", p.Source, err)),
				logging.String(logging.FieldErrorHint, "file was removed or renamed after scanning"),
			)
			return MissingSource
		}
		o.logFailure(logger, p, "stat source", err)
		return Failed
	}
	if !info.Mode().IsRegular() {
		o.logFailure(logger, p, "stat source", fmt.Errorf("%s is not a regular file", p.Source))
		return Failed
	}

	if err := os.MkdirAll(p.DestDir, 0o755); err != nil {
		o.logFailure(logger, p, "create destination", err)
		return Failed
	}

	target := p.Target()
	outcome := Placed
	if sameFile(p.Source, target) {
		logger.Debug("source already at destination", logging.String("path", target))
		return SkippedExisting
	}
	if _, err := os.Lstat(target); err == nil {
		switch o.opts.OnConflict {
		case ConflictOverwrite:
			logging.WarnWithContext(logger, "destination exists; overwriting", "destination_overwritten",
				logging.String("source", p.Source),
				logging.String("destination", target),
				logging.String(logging.FieldErrorHint, "set organize.on_conflict to skip or version to keep existing files"),
				logging.String(logging.FieldImpact, "previous destination content replaced"),
			)
			outcome = Overwritten
		case ConflictVersion:
			identical, err := sameContent(p.Source, target)
			if err != nil {
				o.logFailure(logger, p, "compare destination", err)
				return Failed
			}
			if identical {
				logger.Debug("identical file already at destination", logging.String("destination", target))
				return SkippedExisting
			}
			versioned, existing, err := nextVersionPath(p.Source, target)
			if err != nil {
				o.logFailure(logger, p, "allocate versioned name", err)
				return Failed
			}
			if existing {
				logger.Debug("identical versioned file already at destination", logging.String("destination", versioned))
				return SkippedExisting
			}
			logger.Info("destination exists; writing new version",
				logging.String("destination", target),
				logging.String("versioned", versioned),
			)
			target = versioned
			outcome = Versioned
		default:
			logger.Info("destination exists; skipping",
				logging.String("source", p.Source),
				logging.String("destination", target),
			)
			return SkippedExisting
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		o.logFailure(logger, p, "stat destination", err)
		return Failed
	}

	switch p.Mode {
	case Move:
		err = moveFile(logger, p.Source, target, o.opts.Verify)
	default:
		err = copyFile(p.Source, target, o.opts.Verify)
	}
	if err != nil {
		o.logFailure(logger, p, p.Mode.String(), err)
		return Failed
	}
	logger.Debug("file placed",
		logging.String("mode", p.Mode.String()),
		logging.String("source", p.Source),
		logging.String("destination", target),
	)
	return outcome
}

func (o *Organizer) logFailure(logger *slog.Logger, p Placement, operation string, err error) {
	logging.ErrorWithContext(logger, "placement failed", "placement_failed",
		logging.String("operation", operation),
		logging.String("source", p.Source),
		logging.String("destination", p.Target()),
		logging.Error(services.Wrap(services.ErrDestination, "organizer", operation, p.Source, err)),
		logging.String(logging.FieldErrorHint, "check permissions and free space on the destination"),
	)
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
