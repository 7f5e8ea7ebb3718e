package tdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/tgsession/internal/common"
	"github.com/dmitrijs2005/tgsession/internal/netx"
)

// DefaultLookupURL is where the local tdata decoding service listens.
const DefaultLookupURL = "http://127.0.0.1:18661/read_tdata"

// Record is one account object as returned by the lookup service.
type Record map[string]any

// Lookup decodes a tdata directory into account records.
type Lookup interface {
	LookupAccounts(ctx context.Context, dir string) ([]Record, error)
}

// HTTPLookup queries the decoding service over HTTP.
type HTTPLookup struct {
	baseURL string
	client  *http.Client
	secret  []byte
}

// HTTPOption customises an HTTPLookup.
type HTTPOption func(*HTTPLookup)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(l *HTTPLookup) { l.client = c }
}

// WithSecret enables bearer authentication with an HS256 token signed by secret.
func WithSecret(secret []byte) HTTPOption {
	return func(l *HTTPLookup) { l.secret = secret }
}

// NewHTTPLookup returns a lookup against baseURL, or DefaultLookupURL when empty.
func NewHTTPLookup(baseURL string, opts ...HTTPOption) *HTTPLookup {
	if baseURL == "" {
		baseURL = DefaultLookupURL
	}
	l := &HTTPLookup{baseURL: baseURL, client: http.DefaultClient}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LookupAccounts asks the service to decode dir.
//
// Errors wrap common.ErrExternalService for transport failures, error
// payloads and non-2xx answers, and common.ErrParse for a malformed body.
func (l *HTTPLookup) LookupAccounts(ctx context.Context, dir string) ([]Record, error) {
	u, err := url.Parse(l.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup url: %w", common.ErrExternalService, err)
	}
	q := u.Query()
	q.Set("session_file_path", dir)
	u.RawQuery = q.Encode()

	header := http.Header{}
	if len(l.secret) > 0 {
		token, err := GenerateToken(l.secret, tokenValidity)
		if err != nil {
			return nil, fmt.Errorf("%w: sign token: %w", common.ErrExternalService, err)
		}
		header.Set("Authorization", "Bearer "+token)
	}

	resp, err := netx.Get(ctx, l.client, u.String(), header)
	var statusErr *netx.StatusError
	if err != nil && !errors.As(err, &statusErr) {
		return nil, fmt.Errorf("%w: %w", common.ErrExternalService, err)
	}

	payload, perr := decodePayload(resp.Body)
	if perr != nil {
		if statusErr != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrExternalService, statusErr)
		}
		return nil, fmt.Errorf("%w: lookup response: %w", common.ErrParse, perr)
	}

	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := obj["error"]; ok && msg != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrExternalService, msg)
		}
	}
	if statusErr != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrExternalService, statusErr)
	}

	return collectRecords(payload), nil
}

func decodePayload(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

// collectRecords keeps the object members of an array, or of an object in
// key order. Anything else yields no records.
func collectRecords(payload any) []Record {
	records := []Record{}

	switch v := payload.(type) {
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				records = append(records, Record(m))
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
		for _, k := range keys {
			if m, ok := v[k].(map[string]any); ok {
				records = append(records, Record(m))
			}
		}
	}
	return records
}

// keyLess orders numeric keys numerically and before any other keys.
func keyLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
