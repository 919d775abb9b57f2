package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/scene"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	view     string   // view to hit-test
	at       []string // pointer positions, "X,Y" in client coordinates
	free     bool     // resolve as if Meta/Ctrl were held
	dragging []string // element keys treated as the dragged nodes
}

// resolveCommand creates the resolve command for hit-testing points.
func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{view: defaultView}

	cmd := &cobra.Command{
		Use:   "resolve [scene]",
		Short: "Resolve the drop target under one or more points",
		Long: `Resolve builds the spatial index of a view and prints the insertion spec
each point resolves to. Points are client coordinates.

With --dragging, the named elements are excluded from the index as if they
were being dragged and acceptance is checked against their templates.`,
		Example: `  dndreplay resolve page.toml --at 200,50 --at 600,150
  dndreplay resolve page.toml --at 360,398 --free
  dndreplay resolve page.toml --at 360,250 --dragging a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", opts.view, "view to resolve in")
	cmd.Flags().StringArrayVar(&opts.at, "at", nil, "pointer position X,Y (repeatable)")
	cmd.Flags().BoolVar(&opts.free, "free", false, "force free positioning")
	cmd.Flags().StringArrayVar(&opts.dragging, "dragging", nil, "element key of a dragged node (repeatable)")

	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, path string, opts resolveOpts) error {
	points, err := parsePoints(opts.at)
	if err != nil {
		return err
	}
	s, v, err := loadView(path, opts.view)
	if err != nil {
		return err
	}
	toInsert, err := draggedTemplates(v, opts.dragging)
	if err != nil {
		return err
	}

	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)
	tg := dnd.NewTargeter(v, toInsert, nil, c.options(s))
	w := cmd.OutOrStdout()
	for _, p := range points {
		var spec dnd.InsertionSpec
		if opts.free {
			spec = tg.ResolveAbsolute(p)
		} else {
			spec = tg.Resolve(p)
		}
		printSpec(w, p, spec)
		printMarker(w, spec, s.Config)
	}
	tg.Clear()
	prog.done("Resolved " + pluralize(len(points), "point"))
	return nil
}

// draggedTemplates maps element keys to the templates they render.
func draggedTemplates(v *scene.View, keys []string) ([]dnd.TemplateID, error) {
	var out []dnd.TemplateID
	for _, k := range keys {
		n, ok := v.Node(k)
		if !ok {
			return nil, errors.New(errors.ErrCodeNodeNotFound, "view %s has no node %q", v.Name(), k)
		}
		out = append(out, n.Template)
	}
	return out, nil
}

// printMarker prints where the insertion marker for spec is drawn.
func printMarker(w io.Writer, spec dnd.InsertionSpec, cfg dnd.Config) {
	if box, ok := dnd.MarkerBox(spec, dnd.Options{Config: cfg}.WithDefaults().Config); ok {
		printDetail(w, "marker %s", box)
	}
}
