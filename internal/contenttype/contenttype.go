// Package contenttype resolves the MIME type sent with each uploaded object.
package contenttype

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
)

// octetStream is what mimetype reports when it recognises nothing.
const octetStream = "application/octet-stream"

var byExtension = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".css":   "text/css",
	".js":    "application/javascript",
	".mjs":   "application/javascript",
	".json":  "application/json",
	".map":   "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".eot":   "application/vnd.ms-fontobject",
	".pdf":   "application/pdf",
	".zip":   "application/zip",
	".xml":   "application/xml",
	".txt":   "text/plain",
	".md":    "text/markdown",
	".wasm":  "application/wasm",
}

// Lookup returns the MIME type registered for the extension of path.
// The second result is false for unmapped extensions.
func Lookup(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	ct, ok := byExtension[ext]
	return ct, ok
}

// Detector sniffs content types from file contents.
type Detector struct {
	fs fs.Filesystem
}

// NewDetector creates a Detector reading through filesystem.
func NewDetector(filesystem fs.Filesystem) *Detector {
	return &Detector{fs: filesystem}
}

// Detect sniffs the leading bytes of path.
// It returns false when the file cannot be read or nothing more specific than
// application/octet-stream is recognised.
func (d *Detector) Detect(path string) (string, bool) {
	f, err := d.fs.Open(path)
	if err != nil {
		return "", false
	}
	defer func() { _ = f.Close() }()

	mt, err := mimetype.DetectReader(f)
	if err != nil || mt == nil || mt.Is(octetStream) {
		return "", false
	}
	return mt.String(), true
}

// Resolve picks the content type for path.
// A non-empty override always wins. Otherwise the extension table is used and,
// when detector is non-nil, unmapped files fall back to content sniffing.
// An empty result means no content type is sent.
func Resolve(path, override string, detector *Detector) string {
	if override != "" {
		return override
	}
	if ct, ok := Lookup(path); ok {
		return ct
	}
	if detector != nil {
		if ct, ok := detector.Detect(path); ok {
			return ct
		}
	}
	return ""
}
