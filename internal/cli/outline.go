package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/outline"
	"github.com/matzehuels/droptarget/pkg/scene"
)

type outlineOpts struct {
	nodes []string // template ids to drag
	over  string   // hovered row, "ID" or "ID#SLOT"
	at    string   // pointer in outline coordinates; the gesture starts at the row's middle
}

// outlineCommand creates the outline command, which reorders templates by
// dropping them onto a row of the document outline.
func (c *CLI) outlineCommand() *cobra.Command {
	var opts outlineOpts

	cmd := &cobra.Command{
		Use:   "outline [scene]",
		Short: "Drop templates onto a row of the document outline",
		Long: fmt.Sprintf(`Outline lays the document out as a fully expanded outline and drags the
given templates over one row. The top and bottom slivers of a row insert
above or below it, the middle inserts as a child, and moving left past the
dedent threshold climbs to ancestors.

Rows are %gx%gpx and indent by %gpx per level.`, scene.RowWidth, scene.RowHeight, scene.IndentWidth),
		Example: `  dndreplay outline page.toml --node stack --over row
  dndreplay outline page.toml --node x --over card#header`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOutline(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.nodes, "node", nil, "template id to drag (repeatable, required)")
	cmd.Flags().StringVar(&opts.over, "over", "", "hovered row: ID or ID#SLOT (required)")
	cmd.Flags().StringVar(&opts.at, "at", "", "pointer X,Y in outline coordinates")
	_ = cmd.MarkFlagRequired("node")
	_ = cmd.MarkFlagRequired("over")

	return cmd
}

func (c *CLI) runOutline(cmd *cobra.Command, path string, opts outlineOpts) error {
	item, err := parseItem(opts.over)
	if err != nil {
		return err
	}
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	doc := s.Doc

	row, ok := doc.Row(doc.Owner(item.Node), item)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "no outline row %s", item)
	}
	start := row.Rect.Mid()
	p := start
	if opts.at != "" {
		if p, err = parsePoint(opts.at); err != nil {
			return err
		}
	}

	clips := make([]outline.Clip, len(opts.nodes))
	for i, n := range opts.nodes {
		id := dnd.TemplateID(n)
		if _, ok := doc.Template(id); !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "no template %q", n)
		}
		clips[i] = outline.Clip{Node: id, Owner: doc.Owner(id)}
	}

	m := outline.NewManager(doc, c.options(s))
	w := cmd.OutOrStdout()
	if !m.DragStart(clips, start) {
		printError(w, "these templates cannot be dragged in the outline")
		return nil
	}
	out := m.Drag(p, row)
	if out == nil {
		m.EndDrag()
		printWarning(w, "no insertion at %s over %s", p, item)
		return nil
	}

	printInfo(w, "%s %s", out.Insertion, out.Item)
	printDetail(w, "marker on %s at indent %d", out.Marker.Item, out.Marker.Indent)
	if !out.Insertion.Allowed() {
		m.EndDrag()
		if out.Reason != nil {
			printError(w, "%s", out.Reason)
		}
		return nil
	}

	inserted, err := m.Drop()
	if err != nil {
		return err
	}
	if len(inserted) == 0 {
		printWarning(w, "nothing inserted")
		return nil
	}
	printSuccess(w, "inserted %s", joinIDs(inserted))
	printTree(w, s.Name, doc)
	return nil
}
