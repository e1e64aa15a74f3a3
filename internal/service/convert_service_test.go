package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vexport/internal/convert"
	"vexport/internal/domain"
	"vexport/internal/port"
	"vexport/internal/service"
	"vexport/internal/workpool"
	"vexport/mocks"
)

const vlSpec = `{"mark":"bar","data":{"values":[{"a":1}]}}`

func newConvertService(eng port.Engine) service.ConvertService {
	facade := convert.New(func() (port.Engine, error) { return eng, nil }, workpool.New(2))
	return service.NewConvertService(facade)
}

func TestConvert_DispatchesByGrammarAndFormat(t *testing.T) {
	tests := []struct {
		name   string
		input  service.ConvertInput
		method string
	}{
		{"vega svg", service.ConvertInput{Grammar: domain.GrammarVega, Format: domain.FormatSVG}, "VegaToSVG"},
		{"vega html", service.ConvertInput{Grammar: domain.GrammarVega, Format: domain.FormatHTML, Renderer: "svg"}, "VegaToHTML"},
		{"vega png", service.ConvertInput{Grammar: domain.GrammarVega, Format: domain.FormatPNG}, "VegaToPNG"},
		{"vega jpeg", service.ConvertInput{Grammar: domain.GrammarVega, Format: domain.FormatJPEG}, "VegaToJPEG"},
		{"vega pdf", service.ConvertInput{Grammar: domain.GrammarVega, Format: domain.FormatPDF}, "VegaToPDF"},
		{"vega-lite svg", service.ConvertInput{Grammar: domain.GrammarVegaLite, Format: domain.FormatSVG}, "VegaLiteToSVG"},
		{"vega-lite html", service.ConvertInput{Grammar: domain.GrammarVegaLite, Format: domain.FormatHTML, Renderer: "svg"}, "VegaLiteToHTML"},
		{"vega-lite png", service.ConvertInput{Grammar: domain.GrammarVegaLite, Format: domain.FormatPNG}, "VegaLiteToPNG"},
		{"vega-lite jpeg", service.ConvertInput{Grammar: domain.GrammarVegaLite, Format: domain.FormatJPEG}, "VegaLiteToJPEG"},
		{"vega-lite pdf", service.ConvertInput{Grammar: domain.GrammarVegaLite, Format: domain.FormatPDF}, "VegaLiteToPDF"},
		{"vega-lite vega", service.ConvertInput{Grammar: domain.GrammarVegaLite, Format: domain.FormatVega}, "VegaLiteToVega"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := new(mocks.MockEngine)
			if tt.input.Format.Binary() {
				eng.On(tt.method, mock.Anything, mock.Anything, mock.Anything).Return([]byte{1}, nil)
			} else {
				eng.On(tt.method, mock.Anything, mock.Anything, mock.Anything).Return("out", nil)
			}
			svc := newConvertService(eng)

			tt.input.Spec = vlSpec
			res := svc.Convert(context.Background(), tt.input)

			assert.True(t, res.OK(), "result: %+v", res)
			eng.AssertExpectations(t)
		})
	}
}

func TestConvert_UnsupportedCombination(t *testing.T) {
	svc := newConvertService(new(mocks.MockEngine))

	// vega→vega has no operation; it only exists as a vega-lite target
	res := svc.Convert(context.Background(), service.ConvertInput{
		Grammar: domain.GrammarVega,
		Format:  domain.FormatVega,
		Spec:    vlSpec,
	})

	assert.False(t, res.OK())
	assert.Contains(t, res.Text, "unsupported conversion")
}

func TestConvert_OptionsReachTheEngine(t *testing.T) {
	eng := new(mocks.MockEngine)
	eng.On("VegaLiteToJPEG", mock.Anything, json.RawMessage(vlSpec), mock.MatchedBy(func(opts domain.VlOpts) bool {
		return opts.Scale == 3 && opts.Quality == 55
	})).Return([]byte{1}, nil)
	svc := newConvertService(eng)

	res := svc.Convert(context.Background(), service.ConvertInput{
		Grammar: domain.GrammarVegaLite,
		Format:  domain.FormatJPEG,
		Spec:    vlSpec,
		Scale:   3,
		Quality: 55,
	})

	assert.True(t, res.OK())
	eng.AssertExpectations(t)
}

func TestConvert_FailurePropagates(t *testing.T) {
	svc := newConvertService(new(mocks.MockEngine))

	res := svc.Convert(context.Background(), service.ConvertInput{
		Grammar: domain.GrammarVegaLite,
		Format:  domain.FormatSVG,
		Spec:    "not json",
	})

	assert.False(t, res.OK())
	assert.Equal(t, "VegaLite spec is not valid JSON", res.Text)
}
