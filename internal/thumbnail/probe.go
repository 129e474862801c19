package thumbnail

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober checks whether an image URL loads. It stands in for the browser's
// image error event: any transport error or non-2xx status is a failure.
type Prober struct {
	http *http.Client
}

func NewProber(httpClient *http.Client) *Prober {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &Prober{http: httpClient}
}

func (p *Prober) Probe(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("probe image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("probe image: status %d", resp.StatusCode)
	}
	return nil
}
