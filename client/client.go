package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	clienterrors "github.com/claralima1/Planner/client/internal/errors"
)

const studiesPath = "/api/estudos"

// Client is a typed SDK over the study service HTTP API.
//
// ListStudies answers from an in-process cache, then from the Mirror, then
// from the service. Every successful write invalidates both. A Client is
// safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	rest    *resty.Client
	mirror  Mirror

	mu     sync.Mutex
	cache  []Study
	cached bool
}

// New constructs a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		mirror:  NopMirror{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.rest = resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return c, nil
}

// BaseURL returns the service URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListStudies returns every study in insertion order.
func (c *Client) ListStudies(ctx context.Context) ([]Study, error) {
	if lst, ok := c.cachedList(); ok {
		listSourceTotal.WithLabelValues("cache").Inc()
		return lst, nil
	}

	if lst, ok := c.mirror.Load(); ok {
		listSourceTotal.WithLabelValues("mirror").Inc()
		c.store(lst, false)
		return cloneAll(lst), nil
	}

	var out []Study
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).Get(studiesPath)
	if err != nil {
		return nil, clienterrors.NewNetworkError("list studies", err)
	}
	if resp.IsError() {
		return nil, clienterrors.FromResponse(resp.StatusCode(), resp.Body())
	}
	if out == nil {
		out = []Study{}
	}
	listSourceTotal.WithLabelValues("remote").Inc()
	c.store(out, true)
	return cloneAll(out), nil
}

// GetStudy finds a study by id in the (possibly cached) list. The service has
// no single-item route.
func (c *Client) GetStudy(ctx context.Context, id int64) (*Study, error) {
	lst, err := c.ListStudies(ctx)
	if err != nil {
		return nil, err
	}
	for i := range lst {
		if lst[i].ID == id {
			return &lst[i], nil
		}
	}
	return nil, fmt.Errorf("study %d: %w", id, ErrNotFound)
}

// CreateStudy sends in to the service and returns the stored study.
func (c *Client) CreateStudy(ctx context.Context, in StudyInput) (*Study, error) {
	var out Study
	resp, err := c.rest.R().SetContext(ctx).SetBody(in).SetResult(&out).Post(studiesPath)
	if err := c.checkWrite("create study", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStudy merges the supplied fields of p into the stored study.
func (c *Client) UpdateStudy(ctx context.Context, p StudyPatch) (*Study, error) {
	var out Study
	resp, err := c.rest.R().SetContext(ctx).SetBody(p).SetResult(&out).Put(studiesPath)
	if err := c.checkWrite("update study", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStudy removes the study with the given id. Unknown ids succeed.
func (c *Client) DeleteStudy(ctx context.Context, id int64) (*DeleteResponse, error) {
	var out DeleteResponse
	body := struct {
		ID int64 `json:"id"`
	}{ID: id}
	resp, err := c.rest.R().SetContext(ctx).SetBody(body).SetResult(&out).Delete(studiesPath)
	if err := c.checkWrite("delete study", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Invalidate drops the in-process cache and clears the mirror.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cache = nil
	c.cached = false
	c.mu.Unlock()
	c.mirror.Clear()
	invalidationsTotal.Inc()
}

// checkWrite maps transport and status failures to errors and invalidates
// the cache only when the write succeeded.
func (c *Client) checkWrite(op string, resp *resty.Response, err error) error {
	if err != nil {
		return clienterrors.NewNetworkError(op, err)
	}
	if resp.IsError() {
		return clienterrors.FromResponse(resp.StatusCode(), resp.Body())
	}
	c.Invalidate()
	return nil
}

func (c *Client) cachedList() ([]Study, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cached {
		return nil, false
	}
	return cloneAll(c.cache), true
}

func (c *Client) store(lst []Study, persist bool) {
	c.mu.Lock()
	c.cache = cloneAll(lst)
	c.cached = true
	c.mu.Unlock()
	if persist {
		c.mirror.Save(lst)
	}
}

func cloneAll(lst []Study) []Study {
	out := make([]Study, len(lst))
	for i := range lst {
		out[i] = lst[i].Clone()
	}
	return out
}
