package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxBodySize caps how much of a response body is buffered.
const maxBodySize = 8 << 20

// Response is a fully buffered HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError reports a non-2xx answer. The body is kept so callers can
// inspect an error payload.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %s; body: %s", e.Status, string(e.Body))
}

// Get performs a GET on url with the given headers and buffers the body.
// A non-2xx status yields both the Response and a *StatusError.
func Get(ctx context.Context, client *http.Client, url string, header http.Header) (*Response, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	out := &Response{StatusCode: resp.StatusCode, Body: body}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}
	return out, nil
}
