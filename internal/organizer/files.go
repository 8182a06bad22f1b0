package organizer

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"condodocs/internal/logging"
)

const maxVersionAttempts = 10000

// copyFile copies src to dst, preserving permission bits and modification
// time. With verify set, size and content hash of both sides must match.
func copyFile(src, dst string, verify bool) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	// Hash source while reading, hash destination while writing
	srcHasher := sha256.New()
	dstHasher := sha256.New()
	var reader io.Reader = in
	var writer io.Writer = out
	if verify {
		reader = io.TeeReader(in, srcHasher)
		writer = io.MultiWriter(out, dstHasher)
	}

	written, err := io.Copy(writer, reader)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if verify && !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("preserve mode: %w", err)
	}
	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("preserve modification time: %w", err)
	}
	return nil
}

// moveFile renames source to target, falling back to copy and delete for
// cross-device moves.
func moveFile(logger *slog.Logger, source, target string, verify bool) error {
	renameErr := os.Rename(source, target)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return renameErr
	}

	if err := copyFile(source, target, verify); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := os.Remove(source); err != nil {
		logging.WarnWithContext(logger, "failed to remove source file after copy; duplicate files remain", "move_source_cleanup_failed",
			logging.Error(err),
			logging.String("path", source),
			logging.String(logging.FieldErrorHint, "manually delete the source file if needed"),
			logging.String(logging.FieldImpact, "file exists in both source and destination"),
		)
	}
	return nil
}

// nextVersionPath finds the first free "name (n).ext" slot next to target.
// existing is true when a slot already holds a copy identical to source.
func nextVersionPath(source, target string) (string, bool, error) {
	dir := filepath.Dir(target)
	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(filepath.Base(target), ext)
	for attempt := 1; attempt <= maxVersionAttempts; attempt++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, attempt, ext))
		if _, err := os.Lstat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return candidate, false, nil
			}
			return "", false, err
		}
		identical, err := sameContent(source, candidate)
		if err != nil {
			return "", false, err
		}
		if identical {
			return candidate, true, nil
		}
	}
	return "", false, fmt.Errorf("exhausted version slots for %s", target)
}

// sameContent reports whether two files have equal size and SHA-256.
func sameContent(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if !bi.Mode().IsRegular() || ai.Size() != bi.Size() {
		return false, nil
	}
	ah, err := hashFile(a)
	if err != nil {
		return false, err
	}
	bh, err := hashFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ah, bh), nil
}

func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// listSubdirs returns the sorted names of the immediate subdirectories of root.
func listSubdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}

// treePlacements returns one placement per regular file below src, mirrored
// under dst. Symlinks to files count as files; symlinked folders are not
// descended into.
func treePlacements(src, dst string, mode Mode) ([]Placement, error) {
	var placements []Placement
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&os.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		placements = append(placements, Placement{
			Source:   path,
			DestDir:  filepath.Join(dst, filepath.Dir(rel)),
			DestName: filepath.Base(rel),
			Mode:     mode,
		})
		return nil
	})
	return placements, err
}
