package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/signadot/protodoc/debug"
	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/ir"
	"github.com/signadot/protodoc/parse"

	"github.com/cenkalti/backoff/v4"
)

// HTTP loads documents by name relative to a base URL.  Transport errors and
// 5xx responses are retried with exponential backoff; 404 is ErrNotFound.
type HTTP struct {
	BaseURL    string
	Client     *http.Client
	MaxRetries uint64
	Timeout    time.Duration
	ParseOpts  []parse.ParseOption

	// newBackOff is replaced in tests.
	newBackOff func() backoff.BackOff
}

func NewHTTP(baseURL string) *HTTP {
	return &HTTP{
		BaseURL:    baseURL,
		Client:     http.DefaultClient,
		MaxRetries: 3,
		Timeout:    30 * time.Second,
	}
}

func (h *HTTP) Load(name string) (*ir.Node, error) {
	u, err := url.JoinPath(h.BaseURL, name)
	if err != nil {
		return nil, fmt.Errorf("bad document url for %q: %w", name, err)
	}
	ctx := context.Background()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	var d []byte
	op := func() error {
		var err error
		d, err = h.fetch(ctx, u)
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(h.backOff(), ctx)); err != nil {
		return nil, err
	}
	if debug.Load() {
		debug.Logf("loaded %s from %s", name, u)
	}
	var opts []parse.ParseOption
	if ff := format.FromExtension(name); ff != nil {
		opts = append(opts, parse.ParseFormat(*ff))
	}
	node, err := parse.Parse(d, append(opts, h.ParseOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", u, err)
	}
	return node, nil
}

func (h *HTTP) backOff() backoff.BackOff {
	var b backoff.BackOff
	if h.newBackOff != nil {
		b = h.newBackOff()
	} else {
		b = backoff.NewExponentialBackOff()
	}
	return backoff.WithMaxRetries(b, h.MaxRetries)
}

func (h *HTTP) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch %s: %w", u, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, u))
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("could not fetch %s: %s", u, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("could not fetch %s: %s", u, resp.Status))
	}
	d, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", u, err)
	}
	return d, nil
}
