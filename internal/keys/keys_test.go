package keys

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		prefix  string
		path    string
		want    string
		wantErr error
	}{
		{
			name: "no prefix yields relative path",
			root: "/work/dist",
			path: "/work/dist/index.html",
			want: "index.html",
		},
		{
			name: "nested path with no prefix",
			root: "/work/dist",
			path: "/work/dist/static/js/app.js",
			want: "static/js/app.js",
		},
		{
			name:   "prefix joined with single slash",
			root:   "/work/dist",
			prefix: "assets",
			path:   "/work/dist/img/logo.png",
			want:   "assets/img/logo.png",
		},
		{
			name:   "prefix with trailing slash",
			root:   "/work/dist",
			prefix: "assets/",
			path:   "/work/dist/img/logo.png",
			want:   "assets/img/logo.png",
		},
		{
			name:   "prefix with leading and repeated slashes",
			root:   "/work/dist",
			prefix: "//site//v2//",
			path:   "/work/dist/a.css",
			want:   "site/v2/a.css",
		},
		{
			name: "root with trailing slash",
			root: "/work/dist/",
			path: "/work/dist/a.css",
			want: "a.css",
		},
		{
			name: "relative root and path",
			root: "dist",
			path: "dist/docs/readme.md",
			want: "docs/readme.md",
		},
		{
			name:    "path outside root",
			root:    "/work/dist",
			path:    "/work/other/a.css",
			wantErr: errors.ErrPathOutsideRoot,
		},
		{
			name:    "sibling with shared name prefix",
			root:    "/work/dist",
			path:    "/work/dist2/a.css",
			wantErr: errors.ErrPathOutsideRoot,
		},
		{
			name:    "root itself",
			root:    "/work/dist",
			path:    "/work/dist",
			wantErr: errors.ErrPathOutsideRoot,
		},
		{
			name:   "single-file mode uses path verbatim",
			prefix: "releases",
			path:   "build/app.zip",
			want:   "releases/build/app.zip",
		},
		{
			name: "single-file mode absolute path loses leading slash",
			path: "/tmp/app.zip",
			want: "tmp/app.zip",
		},
		{
			name:   "single-file mode parent segments dropped",
			prefix: "releases",
			path:   "../build/app.zip",
			want:   "releases/build/app.zip",
		},
		{
			name: "single-file mode deep parent path",
			path: "../../../tmp/run/001/f01.html",
			want: "tmp/run/001/f01.html",
		},
		{
			name: "single-file mode parent segments after cleaning",
			path: "build/../../dist/app.zip",
			want: "dist/app.zip",
		},
		{
			name: "single-file mode windows drive path",
			path: `C:\dist\app.zip`,
			want: "dist/app.zip",
		},
		{
			name:   "single-file mode windows drive path with forward slashes",
			prefix: "releases",
			path:   "D:/build/app.zip",
			want:   "releases/build/app.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Derive(tt.root, tt.prefix, tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerive_RelativeToRootProperty(t *testing.T) {
	root := t.TempDir()
	rels := []string{"a.txt", "b/c.txt", "b/d/e f.txt", "x.y.z/w"}

	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		got, err := Derive(root, "", path)
		require.NoError(t, err)
		assert.Equal(t, rel, got)
		assert.NotContains(t, got, "//")
		assert.NotEqual(t, '/', got[0])
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a/b", Join("a", "b"))
	assert.Equal(t, "b", Join("", "b"))
	assert.Equal(t, "a/b", Join("/a/", "/b"))
}
