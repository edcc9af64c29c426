package scanner

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := []string{
		"/photos/IMG_002.JPG",
		"/photos/IMG_001.jpg",
		"/photos/notes.txt",
		"/photos/.hidden.jpg",
		"/photos/2024/DSC_100.nef",
		"/photos/2024/deep/VID_1.mp4",
		"/photos/.thumbs/t_1.jpg",
		"/photos/scan.tiff",
	}
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("x"), 0644))
	}
	return fs
}

func TestScan(t *testing.T) {
	s := NewExampleScanner(newTestFs(t))

	names, err := s.Sample("/photos", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"DSC_100.nef", "VID_1.mp4", "IMG_001.jpg", "IMG_002.JPG"}, names)
}

func TestScanMaxDepth(t *testing.T) {
	s := NewExampleScanner(newTestFs(t))

	s.SetMaxDepth(0)
	names, err := s.Sample("/photos", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"IMG_001.jpg", "IMG_002.JPG"}, names)

	s.SetMaxDepth(1)
	names, err = s.Sample("/photos", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"DSC_100.nef", "IMG_001.jpg", "IMG_002.JPG"}, names)
}

func TestAddExtension(t *testing.T) {
	s := NewExampleScanner(newTestFs(t))
	s.SetMaxDepth(0)
	s.AddExtension("TIFF")

	names, err := s.Sample("/photos", 0)
	require.NoError(t, err)
	assert.Contains(t, names, "scan.tiff")
	assert.Contains(t, s.SupportedExtensions(), ".tiff")
}

func TestSample(t *testing.T) {
	s := NewExampleScanner(newTestFs(t))

	names, err := s.Sample("/photos", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"DSC_100.nef", "VID_1.mp4"}, names)

	all, err := s.Sample("/photos", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestScanErrors(t *testing.T) {
	fs := newTestFs(t)
	s := NewExampleScanner(fs)

	_, err := s.Sample("/missing", 0)
	assert.ErrorContains(t, err, "failed to access path")

	_, err = s.Sample("/photos/notes.txt", 0)
	assert.ErrorContains(t, err, "is not a directory")
}
