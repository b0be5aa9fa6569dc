package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackArchivePlainFilePassesThrough(t *testing.T) {
	path, err := unpackArchive("testdata/bigmart_sample.csv")
	require.NoError(t, err)
	assert.Equal(t, "testdata/bigmart_sample.csv", path)
}

func TestUnpackZipWithOnlyDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("just-a-directory/")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = unpackArchive(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no files")
}

func TestLoadDatasetReportsArchivePathOnUnpackFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("this is not gzip"), 0644))

	_, err := LoadDataset(path, 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.csv.gz")
}
