package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Makepad-fr/travelgrid/internal/backend"
	"github.com/Makepad-fr/travelgrid/internal/model"
)

const collection = "items"

var _ backend.Backend = (*Backend)(nil)

// Options tune the HTTP side of the remote backend.
type Options struct {
	Timeout        time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	HTTPClient     *http.Client
	Logger         *slog.Logger
}

// Backend talks to a JSON document store that follows the Firebase Realtime
// Database REST conventions: <base>/items.json for the collection and
// <base>/items/<id>.json for one record.
type Backend struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// CollectionURL appends /items to base unless it is already there.
func CollectionURL(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if strings.HasSuffix(base, "/"+collection) {
		return base
	}
	return base + "/" + collection
}

// New returns a remote backend for the store rooted at base.
func New(base string, opt Options) *Backend {
	client := opt.HTTPClient
	if client == nil {
		timeout := opt.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if opt.RateLimitRPS > 0 {
		limit = rate.Limit(opt.RateLimitRPS)
	}
	burst := opt.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Backend{
		baseURL: CollectionURL(base),
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
}

// Name reports backend.NameRemote.
func (b *Backend) Name() string { return backend.NameRemote }

func (b *Backend) itemURL(id string) string {
	return b.baseURL + "/" + url.PathEscape(id) + ".json"
}

// do sends one request and fails with *model.BackendError on anything but 2xx.
// On success the caller owns resp.Body.
func (b *Backend) do(ctx context.Context, op, method, target string, body any) (*http.Response, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, &model.BackendError{Op: op, Err: err}
	}

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: json marshal: %w", op, err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Error("remote request failed", "op", op, "method", method, "err", err)
		return nil, &model.BackendError{Op: op, Err: err}
	}
	b.log.Debug("remote request", "op", op, "method", method,
		"status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &model.BackendError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

func (b *Backend) List(ctx context.Context) ([]model.Item, error) {
	resp, err := b.do(ctx, "fetch items", http.MethodGet, b.baseURL+".json", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// null when the collection is empty
	var records map[string]model.Fields
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil && err != io.EOF {
		return nil, fmt.Errorf("fetch items: decode: %w", err)
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	// push keys sort chronologically
	sort.Strings(keys)

	items := make([]model.Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, records[k].WithID(k))
	}
	return items, nil
}

type pushResult struct {
	Name string `json:"name"`
}

func (b *Backend) Add(ctx context.Context, f model.Fields) (string, error) {
	resp, err := b.do(ctx, "add item", http.MethodPost, b.baseURL+".json", f)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out pushResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("add item: decode: %w", err)
	}
	if out.Name == "" {
		return "", fmt.Errorf("add item: store returned no key")
	}
	return out.Name, nil
}

// Remove deletes id. An empty id is ignored: <base>/items/.json would
// address the whole collection.
func (b *Backend) Remove(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	resp, err := b.do(ctx, "remove item", http.MethodDelete, b.itemURL(id), nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Update sends a PATCH with only the non-zero fields, so the store keeps
// whatever f leaves out.
func (b *Backend) Update(ctx context.Context, id string, f model.Fields) error {
	return b.patch(ctx, "update item", id, f)
}

// Overwrite sends a PATCH carrying every field, with null for the blank
// ones, so the store drops them.
func (b *Backend) Overwrite(ctx context.Context, id string, f model.Fields) error {
	return b.patch(ctx, "overwrite item", id, f.Document())
}

// patch ignores an empty id for the same reason Remove does.
func (b *Backend) patch(ctx context.Context, op, id string, body any) error {
	if id == "" {
		return nil
	}
	resp, err := b.do(ctx, op, http.MethodPatch, b.itemURL(id), body)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (b *Backend) Close() error {
	b.client.CloseIdleConnections()
	return nil
}
