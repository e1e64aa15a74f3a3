package port

import (
	"context"
	"encoding/json"

	"vexport/internal/domain"
)

// Engine abstracts the external Vega/Vega-Lite conversion engine. One method
// exists per (grammar, target format) pair; the set is closed and known at
// build time. Implementations do the actual compilation and rendering — the
// rest of the system treats them as a black box that either returns a payload
// or a typed failure.
//
// Engine handles are cheap and single-use: the facade builds a fresh one for
// every call and never pools them.
type Engine interface {
	VegaToSVG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) (string, error)
	VegaToHTML(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) (string, error)
	VegaToPNG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error)
	VegaToJPEG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error)
	VegaToPDF(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error)

	VegaLiteToSVG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error)
	VegaLiteToHTML(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error)
	VegaLiteToPNG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error)
	VegaLiteToJPEG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error)
	VegaLiteToPDF(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error)
	VegaLiteToVega(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error)
}

// EngineFactory builds a fresh engine handle for a single conversion.
type EngineFactory func() (Engine, error)
