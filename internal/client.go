package maestrotop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every backend request.
const DefaultTimeout = 10 * time.Second

var kindPaths = map[Kind]string{
	KindRoss:  "/api/v1/data/ross",
	KindEvent: "/api/v1/data/event",
	KindModel: "/api/v1/data/model",
}

const (
	filesPath  = "/api/v1/data/files"
	selectPath = "/api/v1/data/select"
)

// FetchError reports a failed dataset fetch: transport error or non-2xx
// response. It is per-kind; one kind failing never affects the others.
type FetchError struct {
	Kind   Kind
	Status string // HTTP status text, empty on transport errors
	Detail string // backend "detail" message when present
	Err    error  // underlying transport error, nil on HTTP failures
}

func (e *FetchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fetch %s", e.Kind)
	if e.Status != "" {
		fmt.Fprintf(&b, ": %s", e.Status)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to the NetMaestro data API.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient builds a client for the backend at rawURL. A zero timeout uses
// DefaultTimeout.
func NewClient(rawURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend url %q must include scheme and host", rawURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String()
}

// datasetPayload matches the backend's {file, columns, data} body. The event
// endpoint omits columns.
type datasetPayload struct {
	File    string   `json:"file"`
	Columns []string `json:"columns"`
	Data    []Record `json:"data"`
}

type errorPayload struct {
	Detail string `json:"detail"`
}

// Dataset fetches and decodes the dataset for kind. Any failure comes back
// as a *FetchError.
func (c *Client) Dataset(ctx context.Context, kind Kind) (*Dataset, error) {
	path, ok := kindPaths[kind]
	if !ok {
		return nil, &FetchError{Kind: kind, Detail: "unknown dataset kind"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return nil, &FetchError{Kind: kind, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{Kind: kind, Status: resp.Status}
		var ep errorPayload
		if json.NewDecoder(resp.Body).Decode(&ep) == nil {
			fe.Detail = ep.Detail
		}
		return nil, fe
	}

	var payload datasetPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{Kind: kind, Err: err}
	}
	return &Dataset{
		File:    payload.File,
		Columns: payload.Columns,
		Data:    payload.Data,
	}, nil
}

// FileListing is the backend's view of available and selected input files,
// keyed by category (simulations/events/models).
type FileListing struct {
	Files    map[string][]string `json:"files"`
	Selected map[string]string   `json:"selected"`
}

// Files lists the available data files and current selection per category.
func (c *Client) Files(ctx context.Context) (*FileListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(filesPath), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("list files: %s", resp.Status)
	}
	var listing FileListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode file listing: %w", err)
	}
	return &listing, nil
}

// Select tells the backend which file to use for a category. The caller is
// expected to invalidate the dataset cache on success so the next load
// reflects the new file.
func (c *Client) Select(ctx context.Context, category, file string) error {
	body, err := json.Marshal(map[string]string{
		"category": category,
		"file":     file,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(selectPath), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ep errorPayload
		if json.NewDecoder(resp.Body).Decode(&ep) == nil && ep.Detail != "" {
			return fmt.Errorf("select %s/%s: %s", category, file, ep.Detail)
		}
		return fmt.Errorf("select %s/%s: %s", category, file, resp.Status)
	}
	return nil
}
