package scene

import (
	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/outline"
)

var _ outline.Tree = (*Document)(nil)

// Outline row geometry used by [Document.Rows].
const (
	RowHeight   = 20.0
	IndentWidth = 16.0
	RowWidth    = 320.0
)

func (d *Document) Kind(id dnd.TemplateID) (dnd.NodeKind, bool) {
	t, ok := d.tpls[id]
	if !ok {
		return 0, false
	}
	return t.Kind, true
}

func (d *Document) Parent(id dnd.TemplateID) (dnd.TemplateID, bool) {
	t, ok := d.tpls[id]
	if !ok || t.Parent == "" {
		return "", false
	}
	return t.Parent, true
}

func (d *Document) Children(id dnd.TemplateID) []dnd.TemplateID {
	if t, ok := d.tpls[id]; ok {
		return t.Children
	}
	return nil
}

func (d *Document) IsTextBlock(id dnd.TemplateID) bool {
	t, ok := d.tpls[id]
	return ok && t.Text
}

func (d *Document) ParentSlot(id dnd.TemplateID) (outline.Item, bool) {
	t, ok := d.tpls[id]
	if !ok || t.Parent == "" {
		return outline.Item{}, false
	}
	if p := d.tpls[t.Parent]; p.Kind != dnd.KindComponent {
		return outline.Item{}, false
	}
	return outline.SlotItem(t.Parent, t.SlotParam), true
}

func (d *Document) CanAddChildren(target outline.Item, cand dnd.TemplateID) *dnd.Reason {
	return d.CanAddChild(target.Node, target.Slot, cand)
}

func (d *Document) CanAddSiblings(target outline.Item, cand dnd.TemplateID) *dnd.Reason {
	if target.IsSlot() {
		return dnd.Reject(dnd.ReasonSiblingToSlot, target.Node)
	}
	return d.CanAddSibling(target.Node, cand)
}

// TryInsertAt moves node relative to the target row.
func (d *Document) TryInsertAt(node dnd.TemplateID, loc outline.RelLoc, target outline.Item) bool {
	switch loc {
	case outline.RelAppend:
		return d.InsertChild(node, target.Node, target.Slot)
	case outline.RelBefore, outline.RelAfter:
		if target.IsSlot() {
			return false
		}
		return d.InsertSibling(node, target.Node, loc == outline.RelAfter)
	}
	return false
}

// Rows lays out the tree at root as a fully expanded outline. Component
// instances get one row per slot argument, holding the templates passed to
// that slot.
func (d *Document) Rows(root dnd.TemplateID) []outline.Row {
	var rows []outline.Row
	add := func(item outline.Item, indent int, showing bool) {
		rows = append(rows, outline.Row{
			Item:            item,
			Rect:            geom.NewBox(float64(len(rows))*RowHeight, float64(indent)*IndentWidth, RowWidth-float64(indent)*IndentWidth, RowHeight),
			ChildrenShowing: showing,
			Indent:          indent,
		})
	}
	var walk func(id dnd.TemplateID, indent int)
	walk = func(id dnd.TemplateID, indent int) {
		t, ok := d.tpls[id]
		if !ok {
			return
		}
		if t.Kind != dnd.KindComponent {
			add(outline.NodeItem(id), indent, len(t.Children) > 0)
			for _, c := range t.Children {
				walk(c, indent+1)
			}
			return
		}
		add(outline.NodeItem(id), indent, len(t.Slots) > 0)
		for _, param := range t.Slots {
			var args []dnd.TemplateID
			for _, c := range t.Children {
				if d.tpls[c].SlotParam == param {
					args = append(args, c)
				}
			}
			add(outline.SlotItem(id, param), indent+1, len(args) > 0)
			for _, c := range args {
				walk(c, indent+2)
			}
		}
	}
	walk(root, 0)
	return rows
}

// Row returns the outline row of item within the tree at root.
func (d *Document) Row(root dnd.TemplateID, item outline.Item) (outline.Row, bool) {
	for _, r := range d.Rows(root) {
		if r.Item == item {
			return r, true
		}
	}
	return outline.Row{}, false
}
