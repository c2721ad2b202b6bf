package storage

import (
	"context"
	"net/http"
	"time"
)

// HeadProber checks whether a freshly uploaded image URL actually serves,
// via a single HEAD request. Any transport error reads as unreachable.
type HeadProber struct {
	Client *http.Client
}

func (p HeadProber) Reachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
