package vlconvert

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vexport/internal/config"
	"vexport/internal/domain"
)

func TestNew_MissingBinary(t *testing.T) {
	_, err := New(&config.EngineConfig{BinPath: "definitely-not-a-real-binary"})
	assert.ErrorContains(t, err, "not found")
}

func TestVegaArgs(t *testing.T) {
	args := vegaArgs(domain.VegaOpts{
		Bundle:   true,
		Renderer: domain.RendererCanvas,
		Scale:    2,
		PPI:      144,
		Quality:  80,
	})

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "--scale 2")
	assert.Contains(t, joined, "--ppi 144")
	assert.Contains(t, joined, "--quality 80")
	assert.Contains(t, joined, "--renderer canvas")
	assert.Contains(t, joined, "--bundle")
}

func TestVegaArgs_ZeroValuesOmitted(t *testing.T) {
	assert.Empty(t, vegaArgs(domain.VegaOpts{}))
}

func TestVlArgs_Version(t *testing.T) {
	args := vlArgs(domain.VlOpts{Version: domain.VlVersion5_20, Scale: 1.5})

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "--vl-version 5.20")
	assert.Contains(t, joined, "--scale 1.5")
}

// Integration tests below need a real vl-convert binary on PATH.

func requireBinary(t *testing.T) *Engine {
	t.Helper()
	if _, err := exec.LookPath("vl-convert"); err != nil {
		t.Skip("vl-convert binary not on PATH")
	}
	eng, err := New(&config.EngineConfig{BinPath: "vl-convert"})
	require.NoError(t, err)
	return eng
}

func TestIntegration_VegaLiteRoundTrip(t *testing.T) {
	eng := requireBinary(t)
	spec := json.RawMessage(`{"data":{"values":[{"a":"A","b":28}]},"mark":"bar","encoding":{"x":{"field":"a","type":"nominal"},"y":{"field":"b","type":"quantitative"}}}`)

	vg, err := eng.VegaLiteToVega(context.Background(), spec, domain.VlOpts{Version: domain.DefaultVlVersion})
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(vg)))

	svg, err := eng.VegaToSVG(context.Background(), json.RawMessage(vg), domain.VegaOpts{})
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")
}

func TestIntegration_SemanticErrorVerbatim(t *testing.T) {
	eng := requireBinary(t)

	// valid JSON, incomplete chart definition
	_, err := eng.VegaLiteToSVG(context.Background(), json.RawMessage(`{"mark":"bar"}`), domain.VlOpts{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "not valid JSON")
}
