package utils

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{999, "999 B"},
		{1024, "1.00 KB"},
		{1500, "1.46 KB"},
		{1536, "1.50 KB"},
		{10240, "10.00 KB"},
		{1048576, "1.00 MB"},
		{1536000, "1.46 MB"},
		{5242880, "5.00 MB"},
		{1073741824, "1.00 GB"},
		{1610612736, "1.50 GB"},
		{198660000000, "185.02 GB"},
		{999999999999, "931.32 GB"},
		{1099511627776, "1.00 TB"},
		{5497558138880, "5.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.size))
		})
	}
}

func TestFormatSizeUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", FormatSize(123, false))
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newWriterLogger(&buf, nil, false)

	logger.Debug("hidden %d", 1)
	logger.Warning("disk %s", "full")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `msg="disk full"`)

	verbose := newWriterLogger(&buf, nil, true)
	verbose.Debug("visible %d", 2)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="visible 2"`)
}

func TestDefaultLoggerReplacement(t *testing.T) {
	var buf bytes.Buffer
	previous := setLogger(newWriterLogger(&buf, nil, false))
	t.Cleanup(func() { setLogger(previous) })

	Error("request failed: %v", "timeout")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "request failed: timeout")
}

func TestConfigureWritesFile(t *testing.T) {
	previous := setLogger(nil)
	t.Cleanup(func() {
		_ = GetLogger().Close()
		setLogger(previous)
	})

	path := filepath.Join(t.TempDir(), "logs", "janitor.log")
	require.NoError(t, Configure(path, false))

	Warning("written")
	assert.FileExists(t, path)
}
