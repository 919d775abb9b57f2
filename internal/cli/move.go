package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
)

type moveOpts struct {
	view  string
	nodes []string // element keys to drag
	from  string
	to    string
	steps int  // pointer moves between from and to
	free  bool // hold Meta for the whole gesture
}

// moveCommand creates the move command, which drags existing nodes and
// commits the drop.
func (c *CLI) moveCommand() *cobra.Command {
	opts := moveOpts{view: defaultView, steps: 1}

	cmd := &cobra.Command{
		Use:   "move [scene]",
		Short: "Drag nodes from one point to another and commit the drop",
		Long: `Move focuses the given elements, starts a move gesture at --from and
replays --steps pointer moves ending at --to. The drop is committed and the
resulting document tree is printed.`,
		Example: `  dndreplay move page.toml --node a --node b --from 330,260 --to 360,441
  dndreplay move page.toml --node stack --from 330,260 --to 360,398 --free`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMove(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", opts.view, "view to drag in")
	cmd.Flags().StringArrayVar(&opts.nodes, "node", nil, "element key to drag (repeatable, required)")
	cmd.Flags().StringVar(&opts.from, "from", "", "gesture start X,Y (required)")
	cmd.Flags().StringVar(&opts.to, "to", "", "drop point X,Y (required)")
	cmd.Flags().IntVar(&opts.steps, "steps", opts.steps, "number of pointer moves")
	cmd.Flags().BoolVar(&opts.free, "free", false, "force free positioning")
	_ = cmd.MarkFlagRequired("node")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (c *CLI) runMove(cmd *cobra.Command, path string, opts moveOpts) error {
	from, err := parsePoint(opts.from)
	if err != nil {
		return err
	}
	to, err := parsePoint(opts.to)
	if err != nil {
		return err
	}
	if opts.steps < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--steps must be >= 1, got %d", opts.steps)
	}
	s, v, err := loadView(path, opts.view)
	if err != nil {
		return err
	}
	if err := v.Focus(opts.nodes...); err != nil {
		return err
	}

	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)
	m := dnd.NewMoveManager(v, v.Focused(), from, c.options(s))
	mods := dnd.Modifiers{Meta: opts.free}
	for _, p := range interpolate(from, to, opts.steps) {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		if err := m.Drag(p, mods); err != nil {
			return err
		}
		logger.Debug("drag", "at", p, "spec", dnd.Describe(m.Tentative()))
	}

	w := cmd.OutOrStdout()
	printSpec(w, to, m.Tentative())
	if err := m.EndDrag(); err != nil {
		return err
	}
	prog.done("Replayed " + pluralize(opts.steps, "move"))

	if m.Aborted() {
		printError(w, "gesture aborted, document unchanged")
		return nil
	}
	res := m.Result()
	switch {
	case res.Spec == nil || dnd.IsRejected(res.Spec):
		printWarning(w, "nothing moved")
	case len(res.Failed) > 0:
		printWarning(w, "moved %s, %d refused: %s", pluralize(len(res.Inserted), "node"), len(res.Failed), joinIDs(res.Failed))
	default:
		printSuccess(w, "moved %s", pluralize(len(res.Inserted), "node"))
	}
	if len(res.Skipped) > 0 {
		printDetail(w, "skipped fixed: %s", joinIDs(res.Skipped))
	}
	printTree(w, s.Name, s.Doc)
	return nil
}

func joinIDs(ids []dnd.TemplateID) string {
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = string(id)
	}
	return strings.Join(ss, ", ")
}
