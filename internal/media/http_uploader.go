package media

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
	"time"

	"github.com/dropDatabas3/accountd/internal/observability/logger"
)

// HTTPUploader implementa Uploader contra un endpoint de upload estilo CDN
// (multipart POST, respuesta JSON con la URL final).
type HTTPUploader struct {
	uploadURL string
	apiKey    string
	client    *http.Client
}

func NewHTTPUploader(uploadURL, apiKey string, timeout time.Duration) *HTTPUploader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPUploader{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: timeout},
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, localPath string) (*Asset, error) {
	log := logger.From(ctx).With(logger.Layer("media"), logger.Op("HTTPUploader.Upload"))

	if localPath == "" {
		return nil, ErrUploadFailed
	}

	f, err := os.Open(localPath)
	if err != nil {
		log.Debug("cannot open local file", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		log.Warn("upload request failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		log.Warn("upload rejected", logger.Status(resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var asset Asset
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&asset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if asset.URL == "" {
		return nil, fmt.Errorf("%w: empty url in response", ErrUploadFailed)
	}
	return &asset, nil
}
