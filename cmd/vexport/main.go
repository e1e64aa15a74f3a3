// Command vexport converts Vega and Vega-Lite specs from the command line,
// one subcommand per conversion: vg2svg, vl2png, vl2vg, and so on. The spec
// is read from a file argument or stdin; output goes to --output or stdout.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vexport/internal/config"
	"vexport/internal/convert"
	"vexport/internal/domain"
	"vexport/internal/engine"
	"vexport/internal/workpool"

	// Engine providers register themselves with the factory.
	_ "vexport/internal/engine/httprender"
	_ "vexport/internal/engine/vlconvert"
)

func main() {
	root, err := newRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// cliOpts carries the conversion flags shared across subcommands. Each
// subcommand registers only the flags its operation accepts.
type cliOpts struct {
	output    string
	bundle    bool
	renderer  string
	scale     float64
	ppi       float64
	quality   int
	vlVersion string
}

func newRootCmd() (*cobra.Command, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	facade := convert.New(engine.Factory(&cfg.Engine), workpool.New(cfg.Pool.Workers))

	root := &cobra.Command{
		Use:           "vexport",
		Short:         "Convert Vega and Vega-Lite specs to SVG, HTML, PNG, JPEG, PDF, or Vega",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	o := &cliOpts{
		scale:   cfg.Defaults.Scale,
		ppi:     cfg.Defaults.PPI,
		quality: cfg.Defaults.Quality,
	}

	ops := []struct {
		use      string
		short    string
		flags    func(c *cobra.Command)
		convert  func(spec string) domain.Result
	}{
		{
			use: "vg2svg [spec-file]", short: "Convert a Vega spec to SVG",
			convert: func(spec string) domain.Result { return facade.VegaToSVG(spec) },
		},
		{
			use: "vg2html [spec-file]", short: "Convert a Vega spec to a standalone HTML document",
			flags: func(c *cobra.Command) { htmlFlags(c, o) },
			convert: func(spec string) domain.Result {
				return facade.VegaToHTML(spec, o.bundle, o.renderer)
			},
		},
		{
			use: "vg2png [spec-file]", short: "Convert a Vega spec to PNG",
			flags: func(c *cobra.Command) { pngFlags(c, o) },
			convert: func(spec string) domain.Result {
				return facade.VegaToPNG(spec, o.scale, o.ppi)
			},
		},
		{
			use: "vg2jpeg [spec-file]", short: "Convert a Vega spec to JPEG",
			flags: func(c *cobra.Command) { jpegFlags(c, o) },
			convert: func(spec string) domain.Result {
				return facade.VegaToJPEG(spec, o.scale, o.quality)
			},
		},
		{
			use: "vg2pdf [spec-file]", short: "Convert a Vega spec to PDF",
			convert: func(spec string) domain.Result { return facade.VegaToPDF(spec) },
		},
		{
			use: "vl2svg [spec-file]", short: "Convert a Vega-Lite spec to SVG",
			convert: func(spec string) domain.Result { return facade.VegaLiteToSVG(spec) },
		},
		{
			use: "vl2html [spec-file]", short: "Convert a Vega-Lite spec to a standalone HTML document",
			flags: func(c *cobra.Command) { htmlFlags(c, o) },
			convert: func(spec string) domain.Result {
				return facade.VegaLiteToHTML(spec, o.bundle, o.renderer)
			},
		},
		{
			use: "vl2png [spec-file]", short: "Convert a Vega-Lite spec to PNG",
			flags: func(c *cobra.Command) { pngFlags(c, o) },
			convert: func(spec string) domain.Result {
				return facade.VegaLiteToPNG(spec, o.scale, o.ppi)
			},
		},
		{
			use: "vl2jpeg [spec-file]", short: "Convert a Vega-Lite spec to JPEG",
			flags: func(c *cobra.Command) { jpegFlags(c, o) },
			convert: func(spec string) domain.Result {
				return facade.VegaLiteToJPEG(spec, o.scale, o.quality)
			},
		},
		{
			use: "vl2pdf [spec-file]", short: "Convert a Vega-Lite spec to PDF",
			convert: func(spec string) domain.Result { return facade.VegaLiteToPDF(spec) },
		},
		{
			use: "vl2vg [spec-file]", short: "Compile a Vega-Lite spec to the equivalent Vega spec",
			flags: func(c *cobra.Command) {
				c.Flags().StringVar(&o.vlVersion, "vl-version", "", "Vega-Lite version (unknown versions fall back to the default)")
			},
			convert: func(spec string) domain.Result {
				if o.vlVersion != "" {
					return facade.VegaLiteToVegaVersion(spec, o.vlVersion)
				}
				return facade.VegaLiteToVega(spec)
			},
		},
	}

	for _, op := range ops {
		op := op
		c := &cobra.Command{
			Use:   op.use,
			Short: op.short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				spec, err := readSpec(args)
				if err != nil {
					return err
				}
				return writeResult(op.convert(spec), o.output)
			},
		}
		c.Flags().StringVarP(&o.output, "output", "o", "", "Output file (default stdout)")
		if op.flags != nil {
			op.flags(c)
		}
		root.AddCommand(c)
	}

	return root, nil
}

func htmlFlags(c *cobra.Command, o *cliOpts) {
	c.Flags().BoolVar(&o.bundle, "bundle", false, "Embed JS dependencies in the document")
	c.Flags().StringVar(&o.renderer, "renderer", string(domain.RendererSVG), "Renderer back-end (svg, canvas, hybrid)")
}

func pngFlags(c *cobra.Command, o *cliOpts) {
	c.Flags().Float64Var(&o.scale, "scale", o.scale, "Image scale factor")
	c.Flags().Float64Var(&o.ppi, "ppi", o.ppi, "Pixels per inch")
}

func jpegFlags(c *cobra.Command, o *cliOpts) {
	c.Flags().Float64Var(&o.scale, "scale", o.scale, "Image scale factor")
	c.Flags().IntVar(&o.quality, "quality", o.quality, "JPEG quality (0-100)")
}

// readSpec returns the spec text from the file argument, or stdin when no
// argument is given.
func readSpec(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading spec: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading spec from stdin: %w", err)
	}
	return string(data), nil
}

// writeResult writes a success payload to the output target, or surfaces the
// failure message as the command error.
func writeResult(res domain.Result, output string) error {
	if !res.OK() {
		return errors.New(res.Text)
	}

	payload := res.Binary
	if res.Kind == domain.PayloadText {
		payload = []byte(res.Text)
	}

	if output == "" || output == "-" {
		_, err := os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(output, payload, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
