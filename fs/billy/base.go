package billy

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// NativeOS is a billy.Filesystem that resolves paths exactly as the host OS does.
// Upload sources are given as arbitrary absolute or relative paths, so no chroot applies.
type NativeOS struct {
	osfs.ChrootOS
}

// Chroot returns a new filesystem rooted at the provided path.
//
//nolint:ireturn // billy.Filesystem is an interface; signature is dictated by upstream.
func (n *NativeOS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (n *NativeOS) Root() string {
	return "/"
}

// NewNativeFS creates the filesystem the CLI reads upload sources from.
func NewNativeFS() *FS {
	return &FS{
		fs: &NativeOS{},
	}
}
