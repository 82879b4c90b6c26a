package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	apperrors "go-pattern-analyzer/internal/errors"
)

// PreparedImage is a normalized image ready for model invocation
type PreparedImage struct {
	Bytes  []byte
	Width  int
	Height int
	Format string
}

// ImagePrep is the external collaborator that acquires and normalizes the
// photograph. Resizing and edge-highlighting live behind this boundary; the
// pipeline only ever sees the prepared bytes and dimensions.
type ImagePrep interface {
	Prepare(ctx context.Context, imageURL string) (*PreparedImage, error)
	PrepareBytes(data []byte) (*PreparedImage, error)
}

// HTTPImagePrep fetches images over HTTP and reads their header for
// dimensions
type HTTPImagePrep struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPImagePrep creates an HTTP-backed image prep
func NewHTTPImagePrep(timeout time.Duration, maxBytes int64) ImagePrep {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImagePrep{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// Prepare fetches the image at the given URL
func (p *HTTPImagePrep) Prepare(ctx context.Context, imageURL string) (*PreparedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewNetworkError(
			fmt.Sprintf("image fetch returned status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes+1))
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read image body", err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("image exceeds the %d byte limit", p.maxBytes), nil)
	}
	return p.PrepareBytes(data)
}

// PrepareBytes decodes the image header to establish dimensions and format
// without decoding pixel data.
func (p *HTTPImagePrep) PrepareBytes(data []byte) (*PreparedImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewValidationError("unsupported or corrupt image data", err)
	}
	return &PreparedImage{
		Bytes:  data,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}
