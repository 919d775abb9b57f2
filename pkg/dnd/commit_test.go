package dnd_test

import (
	"testing"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/geom"
)

func TestInsertBySpecGrid(t *testing.T) {
	v := mainView(t)
	node := v.Document().NewNode("div", dnd.Style{"position": "absolute", "left": "3px"})
	tg := dnd.NewTargeter(v, []dnd.TemplateID{node}, nil, dnd.Options{})

	ok, err := dnd.InsertBySpec(v, tg.Resolve(geom.Pt{X: 530, Y: 450}), node)
	if err != nil || !ok {
		t.Fatalf("InsertBySpec = %v, %v", ok, err)
	}
	tpl, _ := v.Document().Template(node)
	if tpl.Parent != "grid" {
		t.Errorf("parent = %s, want grid", tpl.Parent)
	}
	if tpl.Style.Get("grid-row") != "2" || tpl.Style.Get("grid-column") != "2" {
		t.Errorf("style = %v, want grid-row 2 grid-column 2", tpl.Style)
	}
	if tpl.Style.Has("position") || tpl.Style.Has("left") {
		t.Errorf("free positioning kept in a grid cell: %v", tpl.Style)
	}
}

func TestInsertBySpecFree(t *testing.T) {
	v := mainView(t)
	node := v.Document().NewNode("div", nil)
	tg := dnd.NewTargeter(v, []dnd.TemplateID{node}, nil, dnd.Options{})
	spec := tg.Resolve(geom.Pt{X: 500, Y: 250})

	ok, err := dnd.InsertBySpec(v, spec, node)
	if err != nil || !ok {
		t.Fatalf("InsertBySpec = %v, %v", ok, err)
	}
	tpl, _ := v.Document().Template(node)
	if tpl.Parent != "emptyfree" {
		t.Errorf("parent = %s, want emptyfree", tpl.Parent)
	}
	// Offsets are relative to the parent's padding box.
	if tpl.Style.Get("left") != "80px" || tpl.Style.Get("top") != "30px" {
		t.Errorf("style = %v, want left 80px top 30px", tpl.Style)
	}
}

func TestInsertBySpecOutsidePadding(t *testing.T) {
	v := mainView(t)
	node := v.Document().NewNode("div", nil)
	ix := dnd.NewTargeter(v, nil, nil, dnd.Options{}).Index()

	var target *dnd.NodeBox
	for _, nb := range ix.NodeBoxes {
		if nb.Selectable.Key() == "emptyfree" {
			target = nb
		}
	}
	spec := &dnd.FreeInsertion{Target: target, Point: geom.Pt{X: 5, Y: 5}}
	ok, err := dnd.InsertBySpec(v, spec, node)
	if err != nil || !ok {
		t.Fatalf("InsertBySpec = %v, %v", ok, err)
	}
	tpl, _ := v.Document().Template(node)
	if tpl.Style.Get("position") != "absolute" || tpl.Style.Has("left") {
		t.Errorf("style = %v, want absolute without offsets", tpl.Style)
	}
}

func TestInsertBySpecSlotted(t *testing.T) {
	v := mainView(t)
	node := v.Document().NewNode("span", nil)
	tg := dnd.NewTargeter(v, []dnd.TemplateID{node}, nil, dnd.Options{})

	ok, err := dnd.InsertBySpec(v, tg.Resolve(geom.Pt{X: 200, Y: 300}), node)
	if err != nil || !ok {
		t.Fatalf("InsertBySpec = %v, %v", ok, err)
	}
	tpl, _ := v.Document().Template(node)
	if tpl.Parent != "card" || tpl.SlotParam != "children" {
		t.Errorf("placed under %s[%s], want card[children]", tpl.Parent, tpl.SlotParam)
	}
	if tpl.Style.Has("position") {
		t.Errorf("slotted child got free positioning: %v", tpl.Style)
	}
}

func TestInsertBySpecRefused(t *testing.T) {
	v := mainView(t)
	li := v.Document().NewNode("li", nil)
	tg := dnd.NewTargeter(v, nil, nil, dnd.Options{})

	// The index was built without a candidate, so the container accepts
	// in general but the document refuses a list item.
	ok, err := dnd.InsertBySpec(v, tg.Resolve(geom.Pt{X: 500, Y: 250}), li)
	if err != nil {
		t.Fatalf("InsertBySpec: %v", err)
	}
	if ok {
		t.Error("list item inserted outside a list")
	}
}

func TestInsertBySpecErrors(t *testing.T) {
	v := mainView(t)
	node := v.Document().NewNode("div", nil)
	target := &dnd.NodeBox{Selectable: dnd.SlotReference{Template: "card", Param: "children"}}

	tests := []struct {
		name string
		spec dnd.InsertionSpec
	}{
		{"nothing", nil},
		{"rejected", &dnd.RejectedInsertion{Target: target, Reason: dnd.Reject(dnd.ReasonImage, "img")}},
		{"grid into slot", &dnd.GridInsertion{Target: target}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := dnd.InsertBySpec(v, tt.spec, node)
			if ok {
				t.Error("InsertBySpec reported success")
			}
			if !errors.Is(err, errors.ErrCodeInternal) {
				t.Errorf("error = %v, want INTERNAL", err)
			}
		})
	}
}
