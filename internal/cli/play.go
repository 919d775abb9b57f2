package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/scene"
)

type playOpts struct {
	view  string
	nodes []string
	at    string // gesture start; defaults to the middle of the first node
}

// playCommand creates the play command, an interactive move gesture.
func (c *CLI) playCommand() *cobra.Command {
	opts := playOpts{view: defaultView}

	cmd := &cobra.Command{
		Use:   "play [scene]",
		Short: "Step a move gesture interactively with the arrow keys",
		Long: `Play starts a move gesture for the given elements and lets you walk the
pointer over the view with the arrow keys, showing the resolved target and
its marker after every step. Enter drops, q cancels.`,
		Example: `  dndreplay play page.toml --node a
  dndreplay play page.toml --node x --at 10,10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", opts.view, "view to drag in")
	cmd.Flags().StringArrayVar(&opts.nodes, "node", nil, "element key to drag (repeatable, required)")
	cmd.Flags().StringVar(&opts.at, "at", "", "gesture start X,Y")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}

func (c *CLI) runPlay(cmd *cobra.Command, path string, opts playOpts) error {
	s, v, err := loadView(path, opts.view)
	if err != nil {
		return err
	}
	if err := v.Focus(opts.nodes...); err != nil {
		return err
	}
	start, err := playStart(v, opts.at)
	if err != nil {
		return err
	}

	cfg := dnd.Options{Config: s.Config}.WithDefaults().Config
	mgr := dnd.NewMoveManager(v, v.Focused(), start, c.options(s))
	model := NewPlayModel(v, mgr, cfg, start)

	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	result, ok := final.(PlayModel)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "unexpected model %T", final)
	}
	if result.Err != nil {
		return result.Err
	}

	w := cmd.OutOrStdout()
	if !result.Dropped {
		printWarning(w, "cancelled after %s", pluralize(result.Moves, "move"))
		return nil
	}
	printSpec(w, result.Pointer, mgr.Result().Spec)
	printTree(w, s.Name, s.Doc)
	return nil
}

// playStart parses at, or falls back to the middle of the first focused
// element.
func playStart(v *scene.View, at string) (geom.Pt, error) {
	if at != "" {
		return parsePoint(at)
	}
	for _, sel := range v.Focused() {
		if els := v.ElementsFor(sel); len(els) > 0 {
			return els[0].Box.Mid(), nil
		}
	}
	return geom.Pt{}, errors.New(errors.ErrCodeNodeNotFound, "focused nodes are not rendered in view %s", v.Name())
}
