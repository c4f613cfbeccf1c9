// Package keys derives remote object keys from local file paths.
package keys

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/validation"
)

var (
	slashRun    = regexp.MustCompile(`/{2,}`)
	driveLetter = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
)

// Derive computes the remote key for path.
//
// The root is stripped from path, separators become forward slashes and the
// result is joined onto prefix. Runs of slashes collapse to one and the
// leading slash is removed. A path that does not lie strictly under root fails
// with ErrPathOutsideRoot. An empty root means single-file mode: path itself
// is joined onto prefix after its volume name and any leading ".." segments
// are dropped, so "../build/app.zip" and `C:\build\app.zip` both map to
// "build/app.zip".
func Derive(root, prefix, path string) (string, error) {
	rel, err := relative(root, path)
	if err != nil {
		return "", err
	}

	key := Join(prefix, filepath.ToSlash(rel))
	if err := validation.ValidateObjectKey(key); err != nil {
		return "", err
	}

	return key, nil
}

// Join joins prefix and rel with a single slash, collapsing slash runs and trimming the leading slash.
func Join(prefix, rel string) string {
	key := slashRun.ReplaceAllString(prefix+"/"+rel, "/")
	return strings.TrimPrefix(key, "/")
}

func relative(root, path string) (string, error) {
	if root == "" {
		return singleFile(path), nil
	}

	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return "", errors.NewError("deriveKey", fmt.Errorf("%w: %w", errors.ErrPathOutsideRoot, err)).
			WithMessage(fmt.Sprintf("%q is not under %q", path, root))
	}

	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewError("deriveKey", errors.ErrPathOutsideRoot).
			WithMessage(fmt.Sprintf("%q is not under %q", path, root))
	}

	return rel, nil
}

// singleFile normalises a single-file path into a key-safe relative path.
func singleFile(p string) string {
	p = strings.TrimPrefix(filepath.Clean(p), filepath.VolumeName(p))
	p = filepath.ToSlash(p)

	if loc := driveLetter.FindStringIndex(p); loc != nil {
		p = strings.ReplaceAll(p[loc[1]:], `\`, "/")
	}

	// Cleaning a rooted path discards every ".." that would climb above it.
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
