package scanner

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
)

// Scanner lists regular files under a root folder.
type Scanner struct {
	filesystem     fs.Filesystem
	patternMatcher *PatternMatcher
}

// NewScanner creates a new scanner reading through filesystem.
func NewScanner(filesystem fs.Filesystem) *Scanner {
	return &Scanner{
		filesystem:     filesystem,
		patternMatcher: NewPatternMatcher(),
	}
}

// ScanLocal walks root depth-first and returns the path of every non-directory entry.
// Files whose root-relative path matches one of excludePatterns are skipped.
// Empty directories contribute nothing. The order follows the walk.
func (s *Scanner) ScanLocal(ctx context.Context, root string, excludePatterns []string) ([]string, error) {
	if errs := s.patternMatcher.ValidatePatterns(excludePatterns); len(errs) > 0 {
		return nil, errors.NewError("scan", fmt.Errorf("%w: %w", errors.ErrInvalidInput, errs[0]))
	}

	info, err := s.filesystem.Stat(root)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, errors.NewError("scan", fmt.Errorf("%w: %w", errors.ErrInvalidInput, err))
	}
	if err != nil {
		return nil, errors.NewError("scan", err)
	}
	if !info.IsDir() {
		return nil, errors.NewError("scan", errors.ErrNotADirectory).WithMessage(root)
	}

	var files []string

	err = s.filesystem.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories (we only want files)
		if info.IsDir() {
			return nil
		}

		// Check if context is cancelled
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}

		if s.patternMatcher.IsExcluded(relPath, excludePatterns) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.NewError("scan", err).WithMessage(fmt.Sprintf("walking %s", root))
	}

	return files, nil
}
