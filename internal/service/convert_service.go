package service

import (
	"context"
	"fmt"
	"time"

	"vexport/internal/convert"
	"vexport/internal/domain"
	"vexport/internal/observability"
)

// ConvertInput is the DTO for one conversion request.
type ConvertInput struct {
	Grammar  domain.Grammar
	Format   domain.Format
	Spec     string
	Bundle   bool
	Renderer string
	Scale    float64
	PPI      float64
	Quality  int
}

// ConvertService defines the conversion contract exposed to handlers and the
// export path.
type ConvertService interface {
	Convert(ctx context.Context, input ConvertInput) domain.Result
}

type convertService struct {
	facade *convert.Facade
}

// NewConvertService creates a ConvertService over the conversion facade.
func NewConvertService(facade *convert.Facade) ConvertService {
	return &convertService{facade: facade}
}

// Convert runs one conversion and records metrics. The request context is
// accepted for interface symmetry but deliberately not threaded through: a
// dispatched conversion runs to completion even if the caller goes away.
func (s *convertService) Convert(ctx context.Context, input ConvertInput) domain.Result {
	start := time.Now()
	res := s.dispatch(input)
	observability.ConversionDuration.
		WithLabelValues(string(input.Grammar), string(input.Format)).
		Observe(time.Since(start).Seconds())
	observability.ConversionsTotal.
		WithLabelValues(string(input.Grammar), string(input.Format), string(res.Status)).
		Inc()
	return res
}

// dispatch maps the (grammar, format) pair onto the matching facade
// operation. The pair set is closed; both enums are validated at the edge,
// so the defaults here only catch combinations that have no operation.
func (s *convertService) dispatch(in ConvertInput) domain.Result {
	switch in.Grammar {
	case domain.GrammarVega:
		switch in.Format {
		case domain.FormatSVG:
			return s.facade.VegaToSVG(in.Spec)
		case domain.FormatHTML:
			return s.facade.VegaToHTML(in.Spec, in.Bundle, in.Renderer)
		case domain.FormatPNG:
			return s.facade.VegaToPNG(in.Spec, in.Scale, in.PPI)
		case domain.FormatJPEG:
			return s.facade.VegaToJPEG(in.Spec, in.Scale, in.Quality)
		case domain.FormatPDF:
			return s.facade.VegaToPDF(in.Spec)
		}
	case domain.GrammarVegaLite:
		switch in.Format {
		case domain.FormatSVG:
			return s.facade.VegaLiteToSVG(in.Spec)
		case domain.FormatHTML:
			return s.facade.VegaLiteToHTML(in.Spec, in.Bundle, in.Renderer)
		case domain.FormatPNG:
			return s.facade.VegaLiteToPNG(in.Spec, in.Scale, in.PPI)
		case domain.FormatJPEG:
			return s.facade.VegaLiteToJPEG(in.Spec, in.Scale, in.Quality)
		case domain.FormatPDF:
			return s.facade.VegaLiteToPDF(in.Spec)
		case domain.FormatVega:
			return s.facade.VegaLiteToVega(in.Spec)
		}
	}
	kind := domain.PayloadText
	if in.Format.Binary() {
		kind = domain.PayloadBinary
	}
	return domain.Fail(kind, fmt.Sprintf("unsupported conversion: %s to %s", in.Grammar, in.Format))
}
