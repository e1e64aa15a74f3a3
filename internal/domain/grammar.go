package domain

import (
	"fmt"
	"strings"
)

// Grammar identifies the visualization grammar a spec is written in.
type Grammar string

const (
	GrammarVega     Grammar = "vega"
	GrammarVegaLite Grammar = "vega-lite"
)

// DisplayName returns the grammar name as it appears in user-facing messages.
func (g Grammar) DisplayName() string {
	if g == GrammarVegaLite {
		return "VegaLite"
	}
	return "Vega"
}

// ParseGrammar maps a route or CLI token to a Grammar.
func ParseGrammar(s string) (Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vega", "vg":
		return GrammarVega, nil
	case "vega-lite", "vegalite", "vl":
		return GrammarVegaLite, nil
	default:
		return "", fmt.Errorf("%w: unknown grammar %q", ErrUnknownGrammar, s)
	}
}

// Format represents the conversion target.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
	FormatVega Format = "vega"
)

// FormatContentTypes maps Format to its MIME content type.
var FormatContentTypes = map[Format]string{
	FormatSVG:  "image/svg+xml",
	FormatHTML: "text/html; charset=utf-8",
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatPDF:  "application/pdf",
	FormatVega: "application/json",
}

// FormatExtensions maps Format to the file extension (without dot) used for
// exported artifacts.
var FormatExtensions = map[Format]string{
	FormatSVG:  "svg",
	FormatHTML: "html",
	FormatPNG:  "png",
	FormatJPEG: "jpg",
	FormatPDF:  "pdf",
	FormatVega: "vg.json",
}

// ContentType returns the MIME content type for the format.
func (f Format) ContentType() string {
	return FormatContentTypes[f]
}

// Binary reports whether the format's success payload is a byte sequence
// rather than text.
func (f Format) Binary() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatPDF:
		return true
	default:
		return false
	}
}

// ParseFormat maps a route or CLI token to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "svg":
		return FormatSVG, nil
	case "html":
		return FormatHTML, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	case "vega", "vg":
		return FormatVega, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrUnknownFormat, s)
	}
}
