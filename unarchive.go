package main

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive extracts a compressed dataset next to the archive and returns
// the extracted path. Plain files come back unchanged. The archive itself is
// kept, the dataset is the user's source of truth.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackGzipArchive(filePath)
	case ".lz4":
		return unpackLZ4Archive(filePath)
	}
	return filePath, nil
}

func unpackZipArchive(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	// The dataset is the largest file in the archive
	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", fmt.Errorf("archive %s contains no files", filePath)
	}

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largestFile.Name))
	rc, err := largestFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return destPath, writeTo(destPath, rc)
}

func unpackGzipArchive(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	gr, err := gzip.NewReader(file)
	if err != nil {
		return "", err
	}
	defer gr.Close()

	destPath := strings.TrimSuffix(filePath, ".gz")
	return destPath, writeTo(destPath, gr)
}

func unpackLZ4Archive(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	destPath := strings.TrimSuffix(filePath, ".lz4")
	return destPath, writeTo(destPath, lz4.NewReader(file))
}

func writeTo(destPath string, src io.Reader) error {
	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	_, err = io.Copy(outFile, src)
	return err
}
