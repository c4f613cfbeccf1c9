// Package fs defines the filesystem abstraction the uploader reads local files through.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// File represents an open file handle.
// Implementations should behave consistently with the standard library.
type File interface {
	Close() error
	Name() string
	Read(p []byte) (n int, err error)
	Stat() (fs.FileInfo, error)
}

// Filesystem is the read-only subset of filesystem operations needed to walk and read an upload source.
type Filesystem interface {
	// Open opens the named file for reading.
	Open(name string) (File, error)

	// ReadFile reads the whole file into memory.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for name.
	Stat(name string) (os.FileInfo, error)

	// Walk walks the tree rooted at root depth-first, calling walkFn for every entry.
	Walk(root string, walkFn filepath.WalkFunc) error
}
