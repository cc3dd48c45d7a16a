package handlers

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// maxUploadSize bounds the in-memory part of multipart parsing.
const maxUploadSize = 10 << 20 // 10 MiB

// saveUploadedFile writes a multipart file to a temp file and returns its
// path. The caller (via the media facade) is responsible for cleanup.
func saveUploadedFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
