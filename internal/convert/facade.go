// Package convert is the boundary between raw spec text and the conversion
// engine. It owns exactly three things: validating that the input parses as
// JSON, resolving caller options into an engine configuration, and tagging
// the heterogeneous engine outcome into a uniform Result. Everything else is
// delegated.
package convert

import (
	"context"
	"encoding/json"
	"fmt"

	"vexport/internal/domain"
	"vexport/internal/port"
	"vexport/internal/workpool"
)

// Fixed messages for locally-detected failures. The JSON messages name the
// grammar the operation targets so callers know which of the two specs was
// rejected.
const (
	MsgVegaNotJSON     = "Vega spec is not valid JSON"
	MsgVegaLiteNotJSON = "VegaLite spec is not valid JSON"
	MsgInvalidRenderer = "Invalid renderer provided"
)

// Facade exposes one synchronous operation per (grammar, format) pair. Each
// call builds a fresh engine handle, runs the conversion on the worker pool,
// and blocks until it completes. Every operation returns a Result under any
// input; nothing escapes as a panic or bare error.
type Facade struct {
	newEngine port.EngineFactory
	pool      *workpool.Pool
}

// New creates a Facade over the given engine factory and worker pool.
func New(newEngine port.EngineFactory, pool *workpool.Pool) *Facade {
	return &Facade{newEngine: newEngine, pool: pool}
}

// VegaToSVG renders a Vega spec to SVG markup.
func (f *Facade) VegaToSVG(spec string) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVega, domain.PayloadText)
	if !ok {
		return res
	}
	return f.dispatchText(func(ctx context.Context, eng port.Engine) (string, error) {
		return eng.VegaToSVG(ctx, raw, domain.VegaOpts{})
	})
}

// VegaToHTML renders a Vega spec to a standalone HTML document. bundle
// controls whether the JS dependencies are embedded; renderer must name one
// of the supported back-ends.
func (f *Facade) VegaToHTML(spec string, bundle bool, renderer string) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVega, domain.PayloadText)
	if !ok {
		return res
	}
	r, err := domain.ParseRenderer(renderer)
	if err != nil {
		return domain.Fail(domain.PayloadText, MsgInvalidRenderer)
	}
	return f.dispatchText(func(ctx context.Context, eng port.Engine) (string, error) {
		return eng.VegaToHTML(ctx, raw, domain.VegaOpts{Bundle: bundle, Renderer: r})
	})
}

// VegaToPNG renders a Vega spec to a PNG image.
func (f *Facade) VegaToPNG(spec string, scale, ppi float64) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVega, domain.PayloadBinary)
	if !ok {
		return res
	}
	return f.dispatchBinary(func(ctx context.Context, eng port.Engine) ([]byte, error) {
		return eng.VegaToPNG(ctx, raw, domain.VegaOpts{Scale: scale, PPI: ppi})
	})
}

// VegaToJPEG renders a Vega spec to a JPEG image. quality is handed to the
// engine as-is; out-of-range values are engine-reported failures.
func (f *Facade) VegaToJPEG(spec string, scale float64, quality int) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVega, domain.PayloadBinary)
	if !ok {
		return res
	}
	return f.dispatchBinary(func(ctx context.Context, eng port.Engine) ([]byte, error) {
		return eng.VegaToJPEG(ctx, raw, domain.VegaOpts{Scale: scale, Quality: quality})
	})
}

// VegaToPDF renders a Vega spec to a single-page PDF document.
func (f *Facade) VegaToPDF(spec string) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVega, domain.PayloadBinary)
	if !ok {
		return res
	}
	return f.dispatchBinary(func(ctx context.Context, eng port.Engine) ([]byte, error) {
		return eng.VegaToPDF(ctx, raw, domain.VegaOpts{})
	})
}

// VegaLiteToSVG renders a Vega-Lite spec to SVG markup.
func (f *Facade) VegaLiteToSVG(spec string) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVegaLite, domain.PayloadText)
	if !ok {
		return res
	}
	return f.dispatchText(func(ctx context.Context, eng port.Engine) (string, error) {
		return eng.VegaLiteToSVG(ctx, raw, vlOpts())
	})
}

// VegaLiteToHTML renders a Vega-Lite spec to a standalone HTML document.
func (f *Facade) VegaLiteToHTML(spec string, bundle bool, renderer string) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVegaLite, domain.PayloadText)
	if !ok {
		return res
	}
	r, err := domain.ParseRenderer(renderer)
	if err != nil {
		return domain.Fail(domain.PayloadText, MsgInvalidRenderer)
	}
	opts := vlOpts()
	opts.Bundle = bundle
	opts.Renderer = r
	return f.dispatchText(func(ctx context.Context, eng port.Engine) (string, error) {
		return eng.VegaLiteToHTML(ctx, raw, opts)
	})
}

// VegaLiteToPNG renders a Vega-Lite spec to a PNG image.
func (f *Facade) VegaLiteToPNG(spec string, scale, ppi float64) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVegaLite, domain.PayloadBinary)
	if !ok {
		return res
	}
	opts := vlOpts()
	opts.Scale = scale
	opts.PPI = ppi
	return f.dispatchBinary(func(ctx context.Context, eng port.Engine) ([]byte, error) {
		return eng.VegaLiteToPNG(ctx, raw, opts)
	})
}

// VegaLiteToJPEG renders a Vega-Lite spec to a JPEG image.
func (f *Facade) VegaLiteToJPEG(spec string, scale float64, quality int) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVegaLite, domain.PayloadBinary)
	if !ok {
		return res
	}
	opts := vlOpts()
	opts.Scale = scale
	opts.Quality = quality
	return f.dispatchBinary(func(ctx context.Context, eng port.Engine) ([]byte, error) {
		return eng.VegaLiteToJPEG(ctx, raw, opts)
	})
}

// VegaLiteToPDF renders a Vega-Lite spec to a single-page PDF document.
func (f *Facade) VegaLiteToPDF(spec string) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVegaLite, domain.PayloadBinary)
	if !ok {
		return res
	}
	return f.dispatchBinary(func(ctx context.Context, eng port.Engine) ([]byte, error) {
		return eng.VegaLiteToPDF(ctx, raw, vlOpts())
	})
}

// VegaLiteToVega compiles a Vega-Lite spec down to the equivalent Vega spec.
// The success payload is itself a JSON document.
func (f *Facade) VegaLiteToVega(spec string) domain.Result {
	return f.VegaLiteToVegaVersion(spec, string(domain.DefaultVlVersion))
}

// VegaLiteToVegaVersion is the legacy variant of VegaLiteToVega that accepts
// a Vega-Lite version string. Unrecognized versions fall back to the default
// version instead of failing.
func (f *Facade) VegaLiteToVegaVersion(spec, version string) domain.Result {
	raw, res, ok := intake(spec, domain.GrammarVegaLite, domain.PayloadText)
	if !ok {
		return res
	}
	opts := domain.VlOpts{Version: domain.ParseVlVersion(version)}
	return f.dispatchText(func(ctx context.Context, eng port.Engine) (string, error) {
		return eng.VegaLiteToVega(ctx, raw, opts)
	})
}

// intake parses the spec text. On failure it returns a Result carrying the
// fixed grammar-specific message; the engine is never invoked.
func intake(spec string, g domain.Grammar, kind domain.PayloadKind) (json.RawMessage, domain.Result, bool) {
	if !json.Valid([]byte(spec)) {
		msg := MsgVegaNotJSON
		if g == domain.GrammarVegaLite {
			msg = MsgVegaLiteNotJSON
		}
		return nil, domain.Fail(kind, msg), false
	}
	return json.RawMessage(spec), domain.Result{}, true
}

func vlOpts() domain.VlOpts {
	return domain.VlOpts{Version: domain.DefaultVlVersion}
}

// dispatchText builds a fresh engine handle, runs op on the worker pool, and
// waits for it. Engine error text is surfaced verbatim as the failure
// payload.
func (f *Facade) dispatchText(op func(context.Context, port.Engine) (string, error)) domain.Result {
	eng, err := f.newEngine()
	if err != nil {
		return domain.Fail(domain.PayloadText, err.Error())
	}
	var out string
	f.pool.Do(func() {
		defer recoverToError(&err)
		out, err = op(context.Background(), eng)
	})
	if err != nil {
		return domain.Fail(domain.PayloadText, err.Error())
	}
	return domain.OkText(out)
}

// dispatchBinary is dispatchText for operations whose success payload is a
// byte sequence. Failures are still textual.
func (f *Facade) dispatchBinary(op func(context.Context, port.Engine) ([]byte, error)) domain.Result {
	eng, err := f.newEngine()
	if err != nil {
		return domain.Fail(domain.PayloadBinary, err.Error())
	}
	var out []byte
	f.pool.Do(func() {
		defer recoverToError(&err)
		out, err = op(context.Background(), eng)
	})
	if err != nil {
		return domain.Fail(domain.PayloadBinary, err.Error())
	}
	return domain.OkBinary(out)
}

// recoverToError converts an engine panic into an ordinary failure so the
// operation still returns a tagged result.
func recoverToError(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("engine panic: %v", r)
	}
}
