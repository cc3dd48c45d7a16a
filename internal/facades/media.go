package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prachanda482244/Production-grade-backend/internal/logger"
)

// MediaUploadFacade uploads local files to the external media host and
// returns their public URLs.
type MediaUploadFacade struct {
	client  *http.Client
	baseURL string
}

// NewMediaUploadFacade creates a new facade. A nil client falls back to
// http.DefaultClient.
func NewMediaUploadFacade(client *http.Client, baseURL string) *MediaUploadFacade {
	if client == nil {
		client = http.DefaultClient
	}
	return &MediaUploadFacade{client: client, baseURL: baseURL}
}

// uploadResponse is the media host's reply to a successful upload.
type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends the file at localPath to the media host and returns the
// hosted URL. The local file is removed once the upload attempt finishes,
// whether it succeeded or not.
func (f *MediaUploadFacade) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		logger.Log.Errorw("failed to open local file for upload", "path", localPath, "error", err)
		return "", err
	}
	defer os.Remove(localPath)
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("media host upload failed", "path", localPath, "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Log.Errorw("media host rejected upload", "path", localPath, "status", resp.StatusCode)
		return "", fmt.Errorf("media host returned status %d", resp.StatusCode)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		logger.Log.Errorw("failed to decode media host response", "path", localPath, "error", err)
		return "", err
	}

	logger.Log.Infow("file uploaded to media host", "path", localPath, "url", uploaded.URL)
	return uploaded.URL, nil
}
