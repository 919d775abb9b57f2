package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/scene"
)

type insertOpts struct {
	tag   string
	style map[string]string
	from  string
	to    string
	steps int
	free  bool
	views []string // restrict the palette drag to these views
}

// insertCommand creates the insert command, which drags a new node in from
// the palette across every visible view.
func (c *CLI) insertCommand() *cobra.Command {
	opts := insertOpts{tag: "div", steps: 1}

	cmd := &cobra.Command{
		Use:   "insert [scene]",
		Short: "Drag a new node in from the palette and drop it",
		Long: `Insert creates one targeter per visible view and drags a new node with the
given tag to --to. The first view that resolves a target wins the pointer;
the node is created and inserted there and the document tree is printed.`,
		Example: `  dndreplay insert page.toml --tag div --to 500,250
  dndreplay insert page.toml --tag span --to 1100,100 --views mobile
  dndreplay insert page.toml --tag div --to 50,50 --free --style width=20px`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInsert(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.tag, "tag", opts.tag, "tag of the new node")
	cmd.Flags().StringToStringVar(&opts.style, "style", nil, "style of the new node, e.g. width=20px")
	cmd.Flags().StringVar(&opts.from, "from", "", "palette position X,Y (defaults to --to)")
	cmd.Flags().StringVar(&opts.to, "to", "", "drop point X,Y (required)")
	cmd.Flags().IntVar(&opts.steps, "steps", opts.steps, "number of pointer moves")
	cmd.Flags().BoolVar(&opts.free, "free", false, "force free positioning")
	cmd.Flags().StringSliceVar(&opts.views, "views", nil, "only target these views (comma-separated)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (c *CLI) runInsert(cmd *cobra.Command, path string, opts insertOpts) error {
	to, err := parsePoint(opts.to)
	if err != nil {
		return err
	}
	from := to
	if opts.from != "" {
		if from, err = parsePoint(opts.from); err != nil {
			return err
		}
	}
	if opts.steps < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--steps must be >= 1, got %d", opts.steps)
	}
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	for _, name := range opts.views {
		if _, ok := s.View(name); !ok {
			return errors.New(errors.ErrCodeNotFound, "scene %s has no view %q", s.Name, name)
		}
	}

	factory := func(ed dnd.Editor) (dnd.TemplateID, bool) {
		if len(opts.views) > 0 && !slices.Contains(opts.views, ed.Name()) {
			return "", false
		}
		v, ok := ed.(*scene.View)
		if !ok {
			return "", false
		}
		return v.Document().NewNode(opts.tag, dnd.Style(opts.style)), true
	}

	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)
	m := dnd.BuildInsertManager(s.Editors(), factory, c.options(s))
	if len(m.Targeters()) == 0 {
		m.Clear()
		return errors.New(errors.ErrCodeNotFound, "no visible view can host a new %s", opts.tag)
	}

	mods := dnd.Modifiers{Ctrl: opts.free}
	for _, p := range interpolate(from, to, opts.steps) {
		if err := cmd.Context().Err(); err != nil {
			m.Clear()
			return err
		}
		m.Drag(p, mods)
	}

	w := cmd.OutOrStdout()
	view, spec := m.Tentative()
	printSpec(w, to, spec)
	if view != nil {
		printKeyValue(w, "view", view.Name())
	}

	ed, node, ok, err := m.EndDrag(factory)
	if err != nil {
		return err
	}
	prog.done("Replayed " + pluralize(opts.steps, "move"))
	if !ok {
		printWarning(w, "nothing inserted")
		return nil
	}
	printSuccess(w, "inserted %s into %s", node, ed.Name())
	printTree(w, s.Name, s.Doc)
	return nil
}
