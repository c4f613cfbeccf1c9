package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    log.Level
		wantErr bool
	}{
		{name: "empty is info", input: "", want: log.InfoLevel},
		{name: "debug", input: "debug", want: log.DebugLevel},
		{name: "upper case", input: "WARN", want: log.WarnLevel},
		{name: "error", input: " error ", want: log.ErrorLevel},
		{name: "unknown", input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, s3errors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, Options{Level: "info"})
		require.NoError(t, err)

		logger.Debug("scanned folder", "files", 3)
		logger.Info("uploaded", "key", "site/index.html")

		out := buf.String()
		assert.NotContains(t, out, "scanned folder")
		assert.Contains(t, out, "uploaded")
		assert.Contains(t, out, "site/index.html")
	})

	t.Run("quiet keeps errors only", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, Options{Level: "debug", Quiet: true})
		require.NoError(t, err)

		logger.Info("uploaded", "key", "a")
		logger.Error("upload failed", "key", "b")

		out := buf.String()
		assert.NotContains(t, out, "uploaded")
		assert.Contains(t, out, "upload failed")
	})

	t.Run("timestamps", func(t *testing.T) {
		var plain, stamped bytes.Buffer

		logger, err := New(&plain, Options{})
		require.NoError(t, err)
		logger.Info("uploaded")

		logger, err = New(&stamped, Options{Timestamps: true})
		require.NoError(t, err)
		logger.Info("uploaded")

		assert.NotRegexp(t, `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`, plain.String())
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`, stamped.String())
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
		assert.Error(t, err)
	})
}
