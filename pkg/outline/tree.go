package outline

import (
	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/geom"
)

// Item is one row of the outline: a template, or the slot argument Slot of
// the component instance Node.
type Item struct {
	Node dnd.TemplateID
	Slot string
}

// NodeItem returns the row for a template.
func NodeItem(id dnd.TemplateID) Item { return Item{Node: id} }

// SlotItem returns the row for a component instance's slot argument.
func SlotItem(id dnd.TemplateID, param string) Item { return Item{Node: id, Slot: param} }

// IsSlot reports whether the row is a slot argument.
func (i Item) IsSlot() bool { return i.Slot != "" }

func (i Item) String() string {
	if i.IsSlot() {
		return string(i.Node) + "#" + i.Slot
	}
	return string(i.Node)
}

// RelLoc is where a node lands relative to the target row.
type RelLoc string

const (
	RelBefore RelLoc = "before"
	RelAfter  RelLoc = "after"
	RelAppend RelLoc = "append"
)

// Row is a rendered outline row.
type Row struct {
	Item            Item
	Rect            geom.Box
	ChildrenShowing bool
	Indent          int
}

// Clip is a dragged template together with the tree that owns it.
type Clip struct {
	Node  dnd.TemplateID
	Owner dnd.TemplateID
}

// Tree is the document behind the outline.
type Tree interface {
	// Kind reports the template's kind; false for unknown templates.
	Kind(id dnd.TemplateID) (dnd.NodeKind, bool)
	// Parent returns the parent template; false for roots.
	Parent(id dnd.TemplateID) (dnd.TemplateID, bool)
	// Children lists a tag's children or a slot's default contents.
	Children(id dnd.TemplateID) []dnd.TemplateID
	IsTextBlock(id dnd.TemplateID) bool
	// Owner returns the root of the tree id belongs to.
	Owner(id dnd.TemplateID) dnd.TemplateID
	// ParentSlot returns the slot row a component argument sits under.
	ParentSlot(id dnd.TemplateID) (Item, bool)

	CanAddChildren(target Item, cand dnd.TemplateID) *dnd.Reason
	CanAddSiblings(target Item, cand dnd.TemplateID) *dnd.Reason

	TryInsertAt(node dnd.TemplateID, loc RelLoc, target Item) bool
	Clone(id dnd.TemplateID) (dnd.TemplateID, bool)
	Remove(id dnd.TemplateID)
	SelectNew(nodes []dnd.TemplateID)
}
