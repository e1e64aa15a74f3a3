// Package vlconvert implements the conversion engine by shelling out to the
// vl-convert command-line binary.
package vlconvert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vexport/internal/config"
	"vexport/internal/domain"
	"vexport/internal/engine"
	"vexport/internal/port"
)

func init() {
	engine.RegisterProvider("vlconvert", func(cfg *config.EngineConfig) (port.Engine, error) {
		return New(cfg)
	})
}

// Engine runs one vl-convert subcommand per conversion. Handles are
// single-use and hold no state beyond the resolved binary path.
type Engine struct {
	bin     string
	timeout time.Duration
}

var _ port.Engine = (*Engine)(nil)

// New creates a vl-convert-backed Engine. The binary must be resolvable on
// PATH (or be an absolute path) or construction fails.
func New(cfg *config.EngineConfig) (*Engine, error) {
	bin := cfg.BinPath
	if bin == "" {
		bin = "vl-convert"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("vl-convert binary %q not found: %w", bin, err)
	}
	return &Engine{bin: path, timeout: cfg.Timeout()}, nil
}

func (e *Engine) VegaToSVG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) (string, error) {
	out, err := e.run(ctx, "vg2svg", spec, vegaArgs(opts))
	return string(out), err
}

func (e *Engine) VegaToHTML(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) (string, error) {
	out, err := e.run(ctx, "vg2html", spec, vegaArgs(opts))
	return string(out), err
}

func (e *Engine) VegaToPNG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	return e.run(ctx, "vg2png", spec, vegaArgs(opts))
}

func (e *Engine) VegaToJPEG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	return e.run(ctx, "vg2jpeg", spec, vegaArgs(opts))
}

func (e *Engine) VegaToPDF(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	return e.run(ctx, "vg2pdf", spec, vegaArgs(opts))
}

func (e *Engine) VegaLiteToSVG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	out, err := e.run(ctx, "vl2svg", spec, vlArgs(opts))
	return string(out), err
}

func (e *Engine) VegaLiteToHTML(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	out, err := e.run(ctx, "vl2html", spec, vlArgs(opts))
	return string(out), err
}

func (e *Engine) VegaLiteToPNG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	return e.run(ctx, "vl2png", spec, vlArgs(opts))
}

func (e *Engine) VegaLiteToJPEG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	return e.run(ctx, "vl2jpeg", spec, vlArgs(opts))
}

func (e *Engine) VegaLiteToPDF(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	return e.run(ctx, "vl2pdf", spec, vlArgs(opts))
}

func (e *Engine) VegaLiteToVega(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	out, err := e.run(ctx, "vl2vg", spec, vlArgs(opts))
	return string(out), err
}

// run writes the spec to a temp file, invokes one vl-convert subcommand, and
// reads the output file back. Whatever the binary prints to stderr is the
// failure message, verbatim.
func (e *Engine) run(ctx context.Context, sub string, spec json.RawMessage, args []string) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp("", "vexport-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "spec.json")
	outPath := filepath.Join(dir, "out")
	if err := os.WriteFile(inPath, spec, 0o600); err != nil {
		return nil, fmt.Errorf("writing spec: %w", err)
	}

	cmdArgs := append([]string{sub, "--input", inPath, "--output", outPath}, args...)
	cmd := exec.CommandContext(ctx, e.bin, cmdArgs...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("vl-convert %s: %w", sub, err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("reading output: %w", err)
	}
	return out, nil
}

func vegaArgs(opts domain.VegaOpts) []string {
	var args []string
	if opts.Scale > 0 {
		args = append(args, "--scale", formatFloat(opts.Scale))
	}
	if opts.PPI > 0 {
		args = append(args, "--ppi", formatFloat(opts.PPI))
	}
	if opts.Quality > 0 {
		args = append(args, "--quality", strconv.Itoa(opts.Quality))
	}
	if opts.Renderer != "" {
		args = append(args, "--renderer", string(opts.Renderer))
	}
	if opts.Bundle {
		args = append(args, "--bundle")
	}
	return args
}

func vlArgs(opts domain.VlOpts) []string {
	args := vegaArgs(domain.VegaOpts{
		Bundle:   opts.Bundle,
		Renderer: opts.Renderer,
		Scale:    opts.Scale,
		PPI:      opts.PPI,
		Quality:  opts.Quality,
	})
	if opts.Version != "" {
		args = append(args, "--vl-version", string(opts.Version))
	}
	return args
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
