package vectordb

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrInvalidDataURL marks a client-supplied data URL without a base64 payload.
var ErrInvalidDataURL = errors.New("invalid data URL")

var imageHTTPClient = &http.Client{Timeout: 10 * time.Second}

// FetchImageBase64 downloads the image at url and returns its bytes
// base64-encoded. Fetch failures are fatal for the request, not retried.
func FetchImageBase64(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}
	resp, err := imageHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image fetch failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}
	return base64.StdEncoding.EncodeToString(body), nil
}

// Base64FromDataURL strips the media-type prefix from a data URL like
// "data:image/png;base64,AAAA..." and returns the raw base64 payload.
func Base64FromDataURL(dataURL string) (string, error) {
	const marker = "base64,"
	i := strings.Index(dataURL, marker)
	if i == -1 {
		return "", ErrInvalidDataURL
	}
	return dataURL[i+len(marker):], nil
}
