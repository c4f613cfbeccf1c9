// Package testutil provides test helper functions.
package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// StringPtr returns a pointer to the given string.
// This is useful for AWS SDK inputs that require string pointers.
func StringPtr(s string) *string {
	return aws.String(s)
}

// GenerateTestBucketName generates a unique, valid bucket name for testing.
func GenerateTestBucketName(prefix string) string {
	if prefix == "" {
		prefix = "test-bucket"
	}
	//nolint:gosec // test data only
	suffix := rand.Intn(1_000_000)
	return strings.ToLower(fmt.Sprintf("%s-%d-%06d", prefix, time.Now().Unix(), suffix))
}

// FileWriter is a filesystem test trees can be written into.
type FileWriter interface {
	WriteFile(filename string, data []byte, perm os.FileMode) error
}

// WriteFiles writes files into filesystem under root. Keys of files are slash-separated paths relative to root.
func WriteFiles(filesystem FileWriter, root string, files map[string]string) error {
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := filesystem.WriteFile(p, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p, err)
		}
	}
	return nil
}

// NumberedFiles returns n files named file00.txt, file01.txt, ... for use with WriteFiles.
func NumberedFiles(n int) map[string]string {
	files := make(map[string]string, n)
	for i := 0; i < n; i++ {
		files[fmt.Sprintf("file%02d.txt", i)] = fmt.Sprintf("content %d", i)
	}
	return files
}
