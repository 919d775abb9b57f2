package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/droptarget/pkg/dnd"
)

type lassoOpts struct {
	view      string
	rect      string // "LEFT,TOP,WIDTH,HEIGHT"
	forceFree bool
	noAdopt   bool
}

// lassoCommand creates the lasso command, which resolves the parent of a
// node drawn by dragging out a rectangle.
func (c *CLI) lassoCommand() *cobra.Command {
	opts := lassoOpts{view: defaultView}

	cmd := &cobra.Command{
		Use:   "lasso [scene]",
		Short: "Resolve the parent and adoptees of a drawn rectangle",
		Long: `Lasso finds the innermost accepting node whose padding box contains the
rectangle, and the absolutely positioned children of that node lying inside
it, which a drawn node would adopt.`,
		Example: `  dndreplay lasso page.toml --rect 425,5,100,100
  dndreplay lasso page.toml --rect 25,225,50,50 --force-free`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLasso(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", opts.view, "view to resolve in")
	cmd.Flags().StringVar(&opts.rect, "rect", "", "rectangle LEFT,TOP,WIDTH,HEIGHT (required)")
	cmd.Flags().BoolVar(&opts.forceFree, "force-free", false, "position freely even inside layout containers")
	cmd.Flags().BoolVar(&opts.noAdopt, "no-adopt", false, "do not collect adoptees")
	_ = cmd.MarkFlagRequired("rect")

	return cmd
}

func (c *CLI) runLasso(cmd *cobra.Command, path string, opts lassoOpts) error {
	rect, err := parseRect(opts.rect)
	if err != nil {
		return err
	}
	s, v, err := loadView(path, opts.view)
	if err != nil {
		return err
	}

	tg := dnd.NewTargeter(v, nil, nil, c.options(s))
	spec, adoptees := tg.ResolveLassoAndAdoptees(rect, opts.forceFree, opts.noAdopt)
	defer tg.Clear()

	w := cmd.OutOrStdout()
	printSpec(w, rect.TopLeft(), spec)
	if spec == nil {
		return nil
	}
	if len(adoptees) == 0 {
		printDetail(w, "no adoptees")
		return nil
	}
	printInfo(w, "adopts %s", pluralize(len(adoptees), "node"))
	for _, a := range adoptees {
		printKeyValue(w, "  "+a.Node.Key(), a.Box.String())
	}
	return nil
}
