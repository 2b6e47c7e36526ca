package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const maxErrorBody = 512

// Fetcher reads blobs of one container through signed URLs.
type Fetcher struct {
	signer    *Signer
	container string
	client    *http.Client
	log       *slog.Logger
}

// NewFetcher binds a Fetcher to container. A nil client means http.DefaultClient.
func NewFetcher(signer *Signer, container string, client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{signer: signer, container: container, client: client, log: logger}
}

// Container returns the container this Fetcher reads from.
func (f *Fetcher) Container() string { return f.container }

// Fetch performs one GET of the blob and returns its body. Non-2xx
// responses are returned as *FetchError; nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := f.signer.SignedURL(f.container, name)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", f.container, name, err)
	}
	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		// the url.Error would carry the SAS token
		return nil, fmt.Errorf("fetch %s/%s: %w", f.container, name, unwrapURLError(err))
	}
	defer resp.Body.Close()

	f.log.DebugContext(ctx, "blob_fetch",
		"container", f.container,
		"blob", name,
		"status", resp.StatusCode,
		"latency_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Container:  f.container,
			Blob:       name,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", f.container, name, err)
	}
	return b, nil
}

// FetchText is Fetch for text blobs such as HTML templates.
func (f *Fetcher) FetchText(ctx context.Context, name string) (string, error) {
	b, err := f.Fetch(ctx, name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}
