package dnd

import (
	"slices"
	"testing"

	"github.com/matzehuels/droptarget/pkg/geom"
)

func sibling(loc Loc, flow geom.Orientation, box geom.Box) *SiblingInsertion {
	return &SiblingInsertion{Box: &InsertionBox{
		Loc:     loc,
		Anchor:  &RenderedNode{ID: "anchor", Template: "anchor"},
		Box:     box,
		FlowDir: flow,
	}}
}

func TestCommitOrder(t *testing.T) {
	nodes := []TemplateID{"a", "b", "c"}
	target := &NodeBox{Selectable: &RenderedNode{ID: "p"}}
	tests := []struct {
		name string
		spec InsertionSpec
		want []TemplateID
	}{
		{"before", sibling(LocBefore, geom.Vertical, geom.Box{}), []TemplateID{"a", "b", "c"}},
		{"after", sibling(LocAfter, geom.Vertical, geom.Box{}), []TemplateID{"c", "b", "a"}},
		{"top", sibling(LocTop, geom.Vertical, geom.Box{}), []TemplateID{"a", "b", "c"}},
		{"bottom", sibling(LocBottom, geom.Vertical, geom.Box{}), []TemplateID{"c", "b", "a"}},
		{"right", sibling(LocRight, geom.Horizontal, geom.Box{}), []TemplateID{"c", "b", "a"}},
		{"free", &FreeInsertion{Target: target}, []TemplateID{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commitOrder(tt.spec, nodes)
			if !slices.Equal(got, tt.want) {
				t.Errorf("commitOrder = %v, want %v", got, tt.want)
			}
		})
	}
	if !slices.Equal(nodes, []TemplateID{"a", "b", "c"}) {
		t.Errorf("commitOrder modified its input: %v", nodes)
	}
}

func TestMarkerBox(t *testing.T) {
	cfg := DefaultConfig()
	target := &NodeBox{Selectable: &RenderedNode{ID: "p"}, Box: geom.NewBox(10, 10, 50, 50)}

	tests := []struct {
		name string
		spec InsertionSpec
		want geom.Box
		ok   bool
	}{
		{"vertical strip collapses to a line", sibling(LocBefore, geom.Vertical, geom.FromSides(96, 0, 100, 104)), geom.FromSides(100, 0, 100, 100), true},
		{"horizontal strip collapses to a line", sibling(LocAfter, geom.Horizontal, geom.FromSides(0, 96, 104, 100)), geom.FromSides(0, 100, 100, 100), true},
		{"free", &FreeInsertion{Target: target}, target.Box, true},
		{"grid", &GridInsertion{Target: target}, target.Box, true},
		{"rejected", &RejectedInsertion{Target: target, Reason: Reject(ReasonImage, "p")}, target.Box, true},
		{"nothing", nil, geom.Box{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MarkerBox(tt.spec, cfg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("MarkerBox = %s, %v; want %s, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	target := &NodeBox{Selectable: &RenderedNode{ID: "p"}}
	tests := []struct {
		spec InsertionSpec
		want string
	}{
		{nil, "nothing"},
		{sibling(LocAfter, geom.Vertical, geom.Box{}), "after anchor"},
		{&FreeInsertion{Target: target, Slotted: true, Point: geom.Pt{X: 1, Y: 2}}, "child of p (slotted) at (1,2)"},
		{&FreeInsertion{Target: target, Point: geom.Pt{X: 1, Y: 2}}, "child of p (free) at (1,2)"},
		{&GridInsertion{Target: target, Area: GridArea{Rows: Span{1, 1}, Cols: Span{2, 2}}}, "cell of p " + GridArea{Rows: Span{1, 1}, Cols: Span{2, 2}}.String()},
		{&RejectedInsertion{Target: target, Reason: Reject(ReasonImage, "p")}, "rejected by p: CantAddToImg(p)"},
	}
	for _, tt := range tests {
		if got := Describe(tt.spec); got != tt.want {
			t.Errorf("Describe = %q, want %q", got, tt.want)
		}
	}
}

func TestLocIsTrailing(t *testing.T) {
	for loc, want := range map[Loc]bool{
		LocBefore: false, LocTop: false, LocLeft: false,
		LocAfter: true, LocBottom: true, LocRight: true,
	} {
		if got := loc.IsTrailing(); got != want {
			t.Errorf("%s.IsTrailing() = %v, want %v", loc, got, want)
		}
	}
}

func TestGridCellAt(t *testing.T) {
	g := &GridInfo{
		Rows: []Track{{Start: 0, Size: 10}, {Start: 10, Size: 20}},
		Cols: []Track{{Start: 100, Size: 50}},
	}
	tests := []struct {
		p        geom.Pt
		row, col int
	}{
		{geom.Pt{X: 120, Y: 5}, 1, 1},
		{geom.Pt{X: 120, Y: 10}, 2, 1},
		{geom.Pt{X: 0, Y: -5}, 1, 1},
		{geom.Pt{X: 500, Y: 500}, 2, 1},
	}
	for _, tt := range tests {
		row, col := g.CellAt(tt.p)
		if row != tt.row || col != tt.col {
			t.Errorf("CellAt(%s) = %d,%d, want %d,%d", tt.p, row, col, tt.row, tt.col)
		}
	}
	if row, col := (&GridInfo{}).CellAt(geom.Pt{}); row != 1 || col != 1 {
		t.Errorf("empty grid CellAt = %d,%d, want 1,1", row, col)
	}
}

func TestStyleKind(t *testing.T) {
	tests := []struct {
		style Style
		want  ContainerKind
	}{
		{Style{}, ContainerFree},
		{Style{"display": "flex"}, ContainerFlexRow},
		{Style{"display": "inline-flex", "flex-direction": "column-reverse"}, ContainerFlexColumn},
		{Style{"display": "grid"}, ContainerGrid},
		{Style{"display": "content-layout"}, ContainerContentLayout},
		{Style{"display": "block"}, ContainerFree},
	}
	for _, tt := range tests {
		if got := tt.style.Kind(); got != tt.want {
			t.Errorf("%v.Kind() = %s, want %s", tt.style, got, tt.want)
		}
	}
	if !(Style{"flex-direction": "row-reverse"}).FlexReverse() {
		t.Error("row-reverse should be reversed")
	}
	if !(Style{"position": "fixed"}).OutOfFlow() || !(Style{"float": "left"}).OutOfFlow() {
		t.Error("fixed and floated nodes are out of flow")
	}
	if (Style{"position": "relative"}).OutOfFlow() {
		t.Error("relative nodes stay in flow")
	}
}
