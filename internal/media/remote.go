package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// RemoteStore serves images from fixed absolute URLs. Exists issues a HEAD
// request so a dead image host degrades to text fallbacks.
type RemoteStore struct {
	urls   map[string]string
	client *http.Client
	logger *slog.Logger
}

// NewRemoteStore creates a store over an object→URL table. A nil client
// gets one with a 5 second timeout.
func NewRemoteStore(urls map[string]string, client *http.Client, logger *slog.Logger) *RemoteStore {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &RemoteStore{urls: urls, client: client, logger: logger}
}

// URL returns the configured URL for object.
func (s *RemoteStore) URL(ctx context.Context, object string) (string, error) {
	u, ok := s.urls[object]
	if !ok || u == "" {
		return "", &StoreError{Op: "URL", Key: object, Err: ErrNotFound}
	}
	return u, nil
}

// Exists sends a HEAD request for object's URL. Hosts that refuse HEAD
// (405) are treated as serving the image.
func (s *RemoteStore) Exists(ctx context.Context, object string) (bool, error) {
	u, ok := s.urls[object]
	if !ok || u == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return false, &StoreError{Op: "Exists", Key: object, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, &StoreError{Op: "Exists", Key: object, Err: err}
	}
	resp.Body.Close()

	s.logger.Debug("checked remote image", "object", object, "status", resp.StatusCode)

	switch {
	case resp.StatusCode < http.StatusBadRequest:
		return true, nil
	case resp.StatusCode == http.StatusMethodNotAllowed:
		return true, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return false, nil
	case resp.StatusCode == http.StatusForbidden:
		return false, &StoreError{Op: "Exists", Key: object, Err: ErrAccessDenied}
	default:
		return false, &StoreError{Op: "Exists", Key: object, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}
