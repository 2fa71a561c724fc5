package reference

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxBodyBytes = 4 << 20

// HTTPError is returned when the records API answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("records api responded %d", e.StatusCode)
}

// LiveSource reads reference lists from the records API. Only the first page is consumed.
type LiveSource struct {
	baseURL string
	http    *http.Client
}

func NewLiveSource(baseURL string, httpClient *http.Client, timeout time.Duration) *LiveSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &LiveSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (s *LiveSource) Fetch(ctx context.Context, entity Entity) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/records/all/"+string(entity), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entity, err)
	}
	return Decode(entity, body)
}
