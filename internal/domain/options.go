package domain

import "strings"

// Renderer selects the rendering back-end embedded in HTML output.
type Renderer string

const (
	RendererSVG    Renderer = "svg"
	RendererCanvas Renderer = "canvas"
	RendererHybrid Renderer = "hybrid"
)

// ParseRenderer maps a caller-supplied renderer name to a Renderer. The set
// is closed; anything else is an error the facade reports locally without
// touching the engine.
func ParseRenderer(s string) (Renderer, error) {
	switch Renderer(strings.ToLower(strings.TrimSpace(s))) {
	case RendererSVG:
		return RendererSVG, nil
	case RendererCanvas:
		return RendererCanvas, nil
	case RendererHybrid:
		return RendererHybrid, nil
	default:
		return "", ErrInvalidRenderer
	}
}

// VlVersion is a supported Vega-Lite minor version.
type VlVersion string

// Vega-Lite versions the engine was built against.
const (
	VlVersion5_8  VlVersion = "5.8"
	VlVersion5_14 VlVersion = "5.14"
	VlVersion5_15 VlVersion = "5.15"
	VlVersion5_16 VlVersion = "5.16"
	VlVersion5_17 VlVersion = "5.17"
	VlVersion5_19 VlVersion = "5.19"
	VlVersion5_20 VlVersion = "5.20"
)

// DefaultVlVersion is applied to every Vega-Lite-sourced conversion.
const DefaultVlVersion = VlVersion5_20

var vlVersions = map[VlVersion]bool{
	VlVersion5_8:  true,
	VlVersion5_14: true,
	VlVersion5_15: true,
	VlVersion5_16: true,
	VlVersion5_17: true,
	VlVersion5_19: true,
	VlVersion5_20: true,
}

// ParseVlVersion normalizes a version string ("5.20", "v5.20", "5_20") to a
// supported VlVersion. Unrecognized versions fall back to DefaultVlVersion
// rather than failing; existing callers rely on that leniency.
func ParseVlVersion(s string) VlVersion {
	norm := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v")
	norm = strings.ReplaceAll(norm, "_", ".")
	if vlVersions[VlVersion(norm)] {
		return VlVersion(norm)
	}
	return DefaultVlVersion
}

// VegaOpts configures a Vega-sourced conversion. Zero values mean "engine
// default"; numeric fields are passed through unvalidated, range checking is
// the engine's job.
type VegaOpts struct {
	Bundle   bool
	Renderer Renderer
	Scale    float64
	PPI      float64
	Quality  int
}

// VlOpts configures a Vega-Lite-sourced conversion.
type VlOpts struct {
	Version  VlVersion
	Bundle   bool
	Renderer Renderer
	Scale    float64
	PPI      float64
	Quality  int
}
