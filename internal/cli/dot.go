package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/droptarget/pkg/cache"
	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

type dotOpts struct {
	view     string
	output   string   // output file; the extension picks the format
	strips   bool     // include insertion strips
	detailed bool     // add geometry and acceptance to labels
	dragging []string // element keys excluded as dragged
	scale    float64  // PNG scale factor
	cacheDir string   // render cache; defaults to the user cache dir
	noCache  bool
}

// dotCommand creates the dot command, which renders a view's box index as
// a Graphviz diagram.
func (c *CLI) dotCommand() *cobra.Command {
	opts := dotOpts{view: defaultView, scale: 2}

	cmd := &cobra.Command{
		Use:   "dot [scene]",
		Short: "Render the box index of a view as a Graphviz diagram",
		Long: `Dot builds the box index of a view and writes it as a node-link diagram:
node boxes linked from the innermost box containing them, optionally with
their insertion strips. Without --output the DOT source is printed.

The output format follows the file extension: .dot, .svg, .png or .pdf.
PNG and PDF export require rsvg-convert from librsvg. Rendered files are
cached by source and format; pass --no-cache to always re-render.`,
		Example: `  dndreplay dot page.toml
  dndreplay dot page.toml --strips --detailed -o index.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDot(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", opts.view, "view to index")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.dot, .svg, .png, .pdf)")
	cmd.Flags().BoolVar(&opts.strips, "strips", false, "include insertion strips")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show geometry and acceptance")
	cmd.Flags().StringArrayVar(&opts.dragging, "dragging", nil, "element key of a dragged node (repeatable)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "render cache directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the render cache")

	return cmd
}

func (c *CLI) runDot(cmd *cobra.Command, path string, opts dotOpts) error {
	format := formatDOT
	if opts.output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
		if err := validateFormat(format); err != nil {
			return err
		}
	}
	s, v, err := loadView(path, opts.view)
	if err != nil {
		return err
	}
	toInsert, err := draggedTemplates(v, opts.dragging)
	if err != nil {
		return err
	}

	ix := dnd.BuildIndex(v, toInsert, s.Config)
	dot := nodelink.ToDOT(ix, nodelink.Options{Strips: opts.strips, Detailed: opts.detailed})

	w := cmd.OutOrStdout()
	if opts.output == "" {
		_, err := fmt.Fprint(w, dot)
		return err
	}

	rc, err := openRenderCache(format, opts)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := renderDOT(cmd.Context(), rc, dot, format, opts.scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	printSuccess(w, "rendered %s index", v.Name())
	printStats(w, len(ix.NodeBoxes), len(ix.InsertionBoxes))
	printFile(w, opts.output)
	return nil
}

func validateFormat(format string) error {
	switch format {
	case formatDOT, formatSVG, formatPNG, formatPDF:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "unsupported output format %q (want dot, svg, png or pdf)", format)
}

func openRenderCache(format string, opts dotOpts) (cache.Cache, error) {
	if opts.noCache || format == formatDOT {
		return cache.NewNullCache(), nil
	}
	dir := opts.cacheDir
	if dir == "" {
		d, err := cache.DefaultDir(appName)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open render cache %s", dir)
	}
	return fc, nil
}

// renderDOT converts DOT source to format, showing a spinner while
// Graphviz runs. Results are looked up in and stored to rc.
func renderDOT(ctx context.Context, rc cache.Cache, dot, format string, scale float64) ([]byte, error) {
	if format == formatDOT {
		return []byte(dot), nil
	}

	logger := loggerFromContext(ctx)
	ropts := cache.RenderOpts{Format: format}
	if format == formatPNG {
		ropts.Scale = scale
	}
	key := cache.RenderKey(dot, ropts)
	if data, hit, err := rc.Get(ctx, key); err != nil {
		logger.Warn("render cache read failed", "err", err)
	} else if hit {
		logger.Debug("render cache hit", "format", format)
		return data, nil
	}

	spin := newSpinnerWithContext(ctx, "Rendering "+strings.ToUpper(format)+"...")
	spin.Start()
	defer spin.Stop()

	var (
		data []byte
		err  error
	)
	switch format {
	case formatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, scale)
	case formatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	default:
		data, err = nodelink.RenderSVG(ctx, dot)
	}
	if err != nil {
		return nil, err
	}
	if err := rc.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		logger.Warn("render cache write failed", "err", err)
	}
	return data, nil
}
