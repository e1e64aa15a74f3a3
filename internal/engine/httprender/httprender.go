// Package httprender implements the conversion engine against a remote
// render service speaking a plain HTTP convert API.
package httprender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vexport/internal/config"
	"vexport/internal/domain"
	"vexport/internal/engine"
	"vexport/internal/port"
)

func init() {
	engine.RegisterProvider("httprender", func(cfg *config.EngineConfig) (port.Engine, error) {
		return New(cfg)
	})
}

// Engine posts specs to a remote render service. The service exposes
// POST {endpoint}/convert/{grammar}/{format} taking the raw spec as the
// request body and conversion options as query parameters.
type Engine struct {
	endpoint string
	client   *http.Client
}

var _ port.Engine = (*Engine)(nil)

// New creates an Engine for the render service at cfg.Endpoint.
func New(cfg *config.EngineConfig) (*Engine, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("httprender: endpoint is required")
	}
	return &Engine{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

func (e *Engine) VegaToSVG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) (string, error) {
	out, err := e.post(ctx, domain.GrammarVega, domain.FormatSVG, spec, vegaQuery(opts))
	return string(out), err
}

func (e *Engine) VegaToHTML(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) (string, error) {
	out, err := e.post(ctx, domain.GrammarVega, domain.FormatHTML, spec, vegaQuery(opts))
	return string(out), err
}

func (e *Engine) VegaToPNG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	return e.post(ctx, domain.GrammarVega, domain.FormatPNG, spec, vegaQuery(opts))
}

func (e *Engine) VegaToJPEG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	return e.post(ctx, domain.GrammarVega, domain.FormatJPEG, spec, vegaQuery(opts))
}

func (e *Engine) VegaToPDF(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	return e.post(ctx, domain.GrammarVega, domain.FormatPDF, spec, vegaQuery(opts))
}

func (e *Engine) VegaLiteToSVG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	out, err := e.post(ctx, domain.GrammarVegaLite, domain.FormatSVG, spec, vlQuery(opts))
	return string(out), err
}

func (e *Engine) VegaLiteToHTML(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	out, err := e.post(ctx, domain.GrammarVegaLite, domain.FormatHTML, spec, vlQuery(opts))
	return string(out), err
}

func (e *Engine) VegaLiteToPNG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	return e.post(ctx, domain.GrammarVegaLite, domain.FormatPNG, spec, vlQuery(opts))
}

func (e *Engine) VegaLiteToJPEG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	return e.post(ctx, domain.GrammarVegaLite, domain.FormatJPEG, spec, vlQuery(opts))
}

func (e *Engine) VegaLiteToPDF(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	return e.post(ctx, domain.GrammarVegaLite, domain.FormatPDF, spec, vlQuery(opts))
}

func (e *Engine) VegaLiteToVega(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	out, err := e.post(ctx, domain.GrammarVegaLite, domain.FormatVega, spec, vlQuery(opts))
	return string(out), err
}

// post sends the spec and returns the response body. A non-2xx status turns
// the body text into the failure message, verbatim.
func (e *Engine) post(ctx context.Context, g domain.Grammar, f domain.Format, spec json.RawMessage, query url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s/convert/%s/%s", e.endpoint, g, f)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(spec))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling render service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("render service error (status %d)", resp.StatusCode)
		}
		return nil, errors.New(msg)
	}
	return body, nil
}

func vegaQuery(opts domain.VegaOpts) url.Values {
	q := url.Values{}
	if opts.Scale > 0 {
		q.Set("scale", strconv.FormatFloat(opts.Scale, 'f', -1, 64))
	}
	if opts.PPI > 0 {
		q.Set("ppi", strconv.FormatFloat(opts.PPI, 'f', -1, 64))
	}
	if opts.Quality > 0 {
		q.Set("quality", strconv.Itoa(opts.Quality))
	}
	if opts.Renderer != "" {
		q.Set("renderer", string(opts.Renderer))
	}
	if opts.Bundle {
		q.Set("bundle", "true")
	}
	return q
}

func vlQuery(opts domain.VlOpts) url.Values {
	q := vegaQuery(domain.VegaOpts{
		Bundle:   opts.Bundle,
		Renderer: opts.Renderer,
		Scale:    opts.Scale,
		PPI:      opts.PPI,
		Quality:  opts.Quality,
	})
	if opts.Version != "" {
		q.Set("vl_version", string(opts.Version))
	}
	return q
}

// probeTimeout bounds the readiness probe so a hung render service does not
// wedge /readyz.
const probeTimeout = 5 * time.Second

// Ping checks that the render service answers at all. Used by the readiness
// probe, not by conversions.
func (e *Engine) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("render service unhealthy (status %d)", resp.StatusCode)
	}
	return nil
}
