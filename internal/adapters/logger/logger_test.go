package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relink/internal/adapters/logger"
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)

	lg.Info("linked", "modules", 2)
	lg.Warn("stale catalog dropped")

	assert.Equal(t, "linked modules=2\n! stale catalog dropped\n", buf.String())
}

func TestLogger_Error_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)

	lg.Error(zerr.With(domain.Tag(domain.ErrModuleNotFound, "module", "desktop"), "image", "/img"))
	lg.Error(nil)

	assert.Equal(t,
		"✗ Error: module not part of the installed platform\n"+
			"       image: /img\n"+
			"       module: desktop\n",
		buf.String())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	lg.SetJSON(true)

	lg.Error(domain.Tag(domain.ErrCorruptCatalog, "line", 3))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "corrupt module catalog", record["error"])
	assert.InDelta(t, 3, record["line"], 0)
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "standard error",
			err:  errors.New("simple error"),
			want: []logger.ErrorEntry{{Message: "simple error"}},
		},
		{
			name: "zerr chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			want: []logger.ErrorEntry{
				{Message: "outer layer"},
				{Message: "middle layer"},
				{Message: "root cause"},
			},
		},
		{
			name: "tagged sentinel",
			err:  domain.Tag(domain.ErrMissingCatalog, "module", "base"),
			want: []logger.ErrorEntry{
				{Message: "module lacks its catalog", Metadata: map[string]any{"module": "base"}},
			},
		},
		{
			name: "sentinel with cause",
			err:  zerr.With(domain.Cause(domain.ErrResourceReadFailed, errors.New("disk on fire")), "path", "/m/a"),
			want: []logger.ErrorEntry{
				{Message: "failed to read resource: disk on fire", Metadata: map[string]any{"path": "/m/a"}},
			},
		},
		{
			name: "wrapped with metadata on both links",
			err: zerr.With(
				zerr.Wrap(zerr.With(zerr.New("inner"), "inner_key", "inner_val"), "outer"),
				"outer_key", "outer_val"),
			want: []logger.ErrorEntry{
				{Message: "outer", Metadata: map[string]any{"outer_key": "outer_val"}},
				{Message: "inner", Metadata: map[string]any{"inner_key": "inner_val"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{
				{Message: "error", Metadata: map[string]any{"zebra": "z", "alpha": "a"}},
				{Message: "cause", Metadata: map[string]any{"line": 4}},
			},
			want: "Error: error\n       alpha: a\n       zebra: z\n\n  Caused by:\n    → cause\n      line: 4",
		},
		{
			name:    "multiline message",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}},
			want:    "Error: line1\n       line2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
