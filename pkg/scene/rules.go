package scene

import (
	"slices"

	"github.com/matzehuels/droptarget/pkg/dnd"
)

var (
	atomicTags   = []string{"input", "textarea", "select", "br", "hr", "video", "iframe", "svg", "button"}
	listTags     = []string{"ul", "ol"}
	tableNonLeaf = []string{"table", "thead", "tbody", "tfoot", "tr"}
	tableSubTags = []string{"thead", "tbody", "tfoot", "tr", "td", "th"}
)

// CanAddChild reports whether cand may become a child of parent. param
// selects a slot of a component instance; empty means its "children" slot.
// cand may be empty to ask about children in general.
func (d *Document) CanAddChild(parent dnd.TemplateID, param string, cand dnd.TemplateID) *dnd.Reason {
	p, ok := d.tpls[parent]
	if !ok {
		return &dnd.Reason{Code: dnd.ReasonAtomic, Target: parent, Detail: "unknown template"}
	}
	if p.Locked {
		return dnd.Reject(dnd.ReasonLocked, parent)
	}
	if cand != "" && d.IsAncestor(cand, parent) {
		return dnd.Reject(dnd.ReasonSelfDescendant, parent)
	}

	var c *Template
	if cand != "" {
		c = d.tpls[cand]
	}

	switch p.Kind {
	case dnd.KindComponent:
		if param == "" {
			if !p.HasSlot("children") {
				return dnd.Reject(dnd.ReasonComponentInstance, parent)
			}
			return nil
		}
		if !p.HasSlot(param) {
			return &dnd.Reason{Code: dnd.ReasonSlotType, Target: parent, Detail: "no slot " + param}
		}
		return nil
	case dnd.KindSlot:
		return nil
	}

	switch {
	case p.Tag == "img":
		return dnd.Reject(dnd.ReasonImage, parent)
	case slices.Contains(atomicTags, p.Tag):
		return dnd.Reject(dnd.ReasonAtomic, parent)
	case p.Text:
		return dnd.Reject(dnd.ReasonTextBlock, parent)
	case slices.Contains(tableNonLeaf, p.Tag):
		return dnd.Reject(dnd.ReasonTableNonLeaf, parent)
	}
	if c != nil {
		isItem := c.Kind == dnd.KindTag && c.Tag == "li"
		isList := slices.Contains(listTags, p.Tag)
		if isList && !isItem {
			return dnd.Reject(dnd.ReasonNonListItemToList, parent)
		}
		if isItem && !isList {
			return dnd.Reject(dnd.ReasonListItemToNonList, parent)
		}
	}
	return nil
}

// CanAddSibling reports whether cand may be placed next to anchor.
func (d *Document) CanAddSibling(anchor, cand dnd.TemplateID) *dnd.Reason {
	a, ok := d.tpls[anchor]
	if !ok {
		return &dnd.Reason{Code: dnd.ReasonSiblingToRoot, Target: anchor, Detail: "unknown template"}
	}
	if a.Parent == "" {
		return dnd.Reject(dnd.ReasonSiblingToRoot, anchor)
	}
	if a.Kind == dnd.KindTag && slices.Contains(tableSubTags, a.Tag) {
		return dnd.Reject(dnd.ReasonSiblingToTableSub, anchor)
	}
	if p := d.tpls[a.Parent]; p != nil && p.Text {
		return dnd.Reject(dnd.ReasonTextBlock, a.Parent)
	}
	param := a.SlotParam
	if p := d.tpls[a.Parent]; p != nil && p.Kind != dnd.KindComponent {
		param = ""
	}
	return d.CanAddChild(a.Parent, param, cand)
}
