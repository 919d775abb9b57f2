package dnd_test

import (
	"testing"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/scene"
)

// want describes an expected insertion spec. kind "" means nothing.
type want struct {
	kind    string
	target  string // node box key, or anchor id for siblings
	loc     dnd.Loc
	slotted bool
	reason  dnd.ReasonCode
}

func checkSpec(t *testing.T, spec dnd.InsertionSpec, w want) {
	t.Helper()
	if w.kind == "" {
		if spec != nil {
			t.Fatalf("got %s, want nothing", dnd.Describe(spec))
		}
		return
	}
	if spec == nil {
		t.Fatalf("got nothing, want %s", w.kind)
	}
	if spec.Kind() != w.kind {
		t.Fatalf("got %s, want kind %s", dnd.Describe(spec), w.kind)
	}
	switch s := spec.(type) {
	case *dnd.SiblingInsertion:
		if s.Box.Anchor.ID != w.target || s.Box.Loc != w.loc {
			t.Errorf("got %s %s, want %s %s", s.Box.Loc, s.Box.Anchor.ID, w.loc, w.target)
		}
	case *dnd.FreeInsertion:
		if s.Target.Selectable.Key() != w.target {
			t.Errorf("target = %s, want %s", s.Target.Selectable.Key(), w.target)
		}
		if s.Slotted != w.slotted {
			t.Errorf("slotted = %v, want %v", s.Slotted, w.slotted)
		}
	case *dnd.GridInsertion:
		if s.Target.Selectable.Key() != w.target {
			t.Errorf("target = %s, want %s", s.Target.Selectable.Key(), w.target)
		}
	case *dnd.RejectedInsertion:
		if s.Target.Selectable.Key() != w.target {
			t.Errorf("target = %s, want %s", s.Target.Selectable.Key(), w.target)
		}
		if s.Reason.Code != w.reason {
			t.Errorf("reason = %s, want %s", s.Reason.Code, w.reason)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Pt
		want want
	}{
		{"strip between flex children", geom.Pt{X: 200, Y: 50}, want{kind: "sibling", target: "y", loc: dnd.LocBefore}},
		{"strip beats container", geom.Pt{X: 360, Y: 398}, want{kind: "sibling", target: "e", loc: dnd.LocBefore}},
		{"flex gap picks nearest strip", geom.Pt{X: 360, Y: 470}, want{kind: "sibling", target: "e", loc: dnd.LocAfter}},
		{"empty flex child", geom.Pt{X: 50, Y: 50}, want{kind: "free", target: "x", slotted: true}},
		{"free container", geom.Pt{X: 600, Y: 150}, want{kind: "free", target: "free"}},
		{"empty free container", geom.Pt{X: 500, Y: 250}, want{kind: "free", target: "emptyfree"}},
		{"grid", geom.Pt{X: 530, Y: 450}, want{kind: "grid", target: "grid"}},
		{"image refuses", geom.Pt{X: 650, Y: 250}, want{kind: "rejected", target: "img", reason: dnd.ReasonImage}},
		{"text refuses", geom.Pt{X: 50, Y: 230}, want{kind: "rejected", target: "cardtext", reason: dnd.ReasonTextBlock}},
		{"component instance falls through", geom.Pt{X: 350, Y: 160}, want{kind: "free", target: "body"}},
		{"locked is invisible", geom.Pt{X: 700, Y: 400}, want{kind: "free", target: "body"}},
		{"slot argument", geom.Pt{X: 200, Y: 300}, want{kind: "free", target: "card#children", slotted: true}},
		{"outside frame", geom.Pt{X: 900, Y: 300}, want{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := dnd.NewTargeter(mainView(t), nil, nil, dnd.Options{})
			checkSpec(t, tg.Resolve(tt.p), tt.want)
		})
	}
}

func TestResolveGridCell(t *testing.T) {
	tg := dnd.NewTargeter(mainView(t), nil, nil, dnd.Options{})
	tests := []struct {
		p        geom.Pt
		row, col int
	}{
		{geom.Pt{X: 430, Y: 350}, 1, 1},
		{geom.Pt{X: 530, Y: 350}, 1, 2},
		{geom.Pt{X: 430, Y: 450}, 2, 1},
		{geom.Pt{X: 530, Y: 450}, 2, 2},
	}
	for _, tt := range tests {
		g, ok := tg.Resolve(tt.p).(*dnd.GridInsertion)
		if !ok {
			t.Fatalf("Resolve(%s) is not a grid insertion", tt.p)
		}
		if g.Area.Rows.Start != tt.row || g.Area.Cols.Start != tt.col {
			t.Errorf("Resolve(%s) = %s, want row %d col %d", tt.p, g.Area, tt.row, tt.col)
		}
	}
}

func TestResolveOnlyChildDragged(t *testing.T) {
	v := mainView(t)
	tg := dnd.NewTargeter(v, []dnd.TemplateID{"only"}, nil, dnd.Options{})
	checkSpec(t, tg.Resolve(geom.Pt{X: 250, Y: 450}), want{})

	// A sibling container still takes the node.
	checkSpec(t, tg.Resolve(geom.Pt{X: 50, Y: 50}), want{kind: "free", target: "x", slotted: true})
}

func TestResolveDraggedStripsHidden(t *testing.T) {
	v := mainView(t)
	// a is dragged, so its leading strip is gone and the pointer falls into
	// the stack itself.
	tg := dnd.NewTargeter(v, []dnd.TemplateID{"a"}, nil, dnd.Options{})
	spec := tg.Resolve(geom.Pt{X: 360, Y: 250})
	if s, ok := spec.(*dnd.SiblingInsertion); ok && s.Box.Anchor.ID == "a" {
		t.Fatalf("resolved to dragged node strip: %s", dnd.Describe(spec))
	}
	checkSpec(t, spec, want{kind: "sibling", target: "b", loc: dnd.LocBefore})
}

const crossScene = `
name = "cross"

[[template]]
id = "root"
tag = "body"
children = ["bar"]

[[template]]
id = "bar"
tag = "div"
style = { display = "flex" }
children = ["pic1", "pic2"]

[[template]]
id = "pic1"
tag = "img"

[[template]]
id = "pic2"
tag = "img"

[[view]]
name = "main"
frame = [0, 0, 400, 300]

[[view.element]]
key = "root"
template = "root"
box = [0, 0, 400, 300]

[[view.element]]
key = "bar"
template = "bar"
parent = "root"
box = [0, 0, 300, 100]

[[view.element]]
key = "pic1"
template = "pic1"
parent = "bar"
box = [0, 0, 100, 100]

[[view.element]]
key = "pic2"
template = "pic2"
parent = "bar"
box = [100, 0, 100, 100]
`

func TestResolveSiblingSides(t *testing.T) {
	s, err := scene.Parse([]byte(crossScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, _ := s.View("main")

	tests := []struct {
		name string
		p    geom.Pt
		want want
		box  geom.Box
	}{
		{"leading half", geom.Pt{X: 30, Y: 50}, want{kind: "sibling", target: "pic1", loc: dnd.LocBefore}, geom.FromSides(0, -4, 4, 100)},
		{"trailing half", geom.Pt{X: 70, Y: 50}, want{kind: "sibling", target: "pic1", loc: dnd.LocAfter}, geom.FromSides(0, 96, 104, 100)},
		{"cross axis top", geom.Pt{X: 50, Y: 6}, want{kind: "sibling", target: "pic1", loc: dnd.LocTop}, geom.FromSides(-4, 0, 100, 4)},
		{"cross axis bottom", geom.Pt{X: 150, Y: 92}, want{kind: "sibling", target: "pic2", loc: dnd.LocBottom}, geom.FromSides(96, 100, 200, 104)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := dnd.NewTargeter(v, nil, nil, dnd.Options{})
			spec := tg.Resolve(tt.p)
			checkSpec(t, spec, tt.want)
			if s, ok := spec.(*dnd.SiblingInsertion); ok && s.Box.Box != tt.box {
				t.Errorf("strip = %s, want %s", s.Box.Box, tt.box)
			}
		})
	}
}

func TestResolveCursorOffset(t *testing.T) {
	off := geom.Pt{X: -5, Y: -8}
	tg := dnd.NewTargeter(mainView(t), nil, &off, dnd.Options{})
	f, ok := tg.Resolve(geom.Pt{X: 600, Y: 150}).(*dnd.FreeInsertion)
	if !ok {
		t.Fatal("want a free insertion")
	}
	if want := (geom.Pt{X: 595, Y: 142}); f.Point != want {
		t.Errorf("Point = %s, want %s", f.Point, want)
	}
}

func TestResolveAbsolute(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Pt
		want want
	}{
		{"strip ignored", geom.Pt{X: 360, Y: 398}, want{kind: "free", target: "stack"}},
		{"flex child is free", geom.Pt{X: 50, Y: 50}, want{kind: "free", target: "x"}},
		{"grid is free", geom.Pt{X: 530, Y: 450}, want{kind: "free", target: "grid"}},
		{"refusal reported", geom.Pt{X: 650, Y: 250}, want{kind: "rejected", target: "img", reason: dnd.ReasonImage}},
		{"outside frame", geom.Pt{X: 900, Y: 300}, want{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := dnd.NewTargeter(mainView(t), nil, nil, dnd.Options{})
			checkSpec(t, tg.ResolveAbsolute(tt.p), tt.want)
		})
	}
}

func TestResolveLassoAndAdoptees(t *testing.T) {
	v := mainView(t)
	tests := []struct {
		name      string
		rect      geom.Box
		forceFree bool
		noAdopt   bool
		want      want
		adoptees  []string
	}{
		{"adopts enclosed absolute child", geom.NewBox(5, 425, 100, 100), false, false, want{kind: "free", target: "free"}, []string{"abs"}},
		{"no adoption", geom.NewBox(5, 425, 100, 100), false, true, want{kind: "free", target: "free"}, nil},
		{"partial overlap not adopted", geom.NewBox(20, 440, 100, 100), false, false, want{kind: "free", target: "free"}, nil},
		{"flow parent is slotted", geom.NewBox(255, 330, 10, 10), false, false, want{kind: "free", target: "a", slotted: true}, nil},
		{"force free", geom.NewBox(255, 330, 10, 10), true, false, want{kind: "free", target: "a"}, nil},
		{"outside every node", geom.NewBox(-10, -10, 5, 5), false, false, want{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := dnd.NewTargeter(v, nil, nil, dnd.Options{})
			spec, adoptees := tg.ResolveLassoAndAdoptees(tt.rect, tt.forceFree, tt.noAdopt)
			checkSpec(t, spec, tt.want)
			if f, ok := spec.(*dnd.FreeInsertion); ok && f.Point != tt.rect.TopLeft() {
				t.Errorf("Point = %s, want %s", f.Point, tt.rect.TopLeft())
			}
			var got []string
			for _, a := range adoptees {
				got = append(got, a.Node.ID)
			}
			if len(got) != len(tt.adoptees) {
				t.Fatalf("adoptees = %v, want %v", got, tt.adoptees)
			}
			for i := range got {
				if got[i] != tt.adoptees[i] {
					t.Errorf("adoptees[%d] = %s, want %s", i, got[i], tt.adoptees[i])
				}
			}
		})
	}
}

const offsetFrameScene = `
[[template]]
id = "page"
tag = "body"
children = ["canvas"]

[[template]]
id = "canvas"
tag = "div"
style = { position = "relative" }
children = ["pin"]

[[template]]
id = "pin"
tag = "div"
style = { position = "absolute", left = "50px", top = "50px" }

[[view]]
name = "side"
frame = [100, 50, 400, 300]
element = [
  { key = "page", template = "page", box = [100, 50, 400, 300] },
  { key = "canvas", template = "canvas", parent = "page", box = [100, 50, 300, 200] },
  { key = "pin", template = "pin", parent = "canvas", box = [150, 100, 40, 40] },
]
`

func TestResolveLassoAdopteeBoxInFrame(t *testing.T) {
	s, err := scene.Parse([]byte(offsetFrameScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, _ := s.View("side")

	tg := dnd.NewTargeter(v, nil, nil, dnd.Options{})
	spec, adoptees := tg.ResolveLassoAndAdoptees(geom.NewBox(90, 140, 100, 100), false, false)
	checkSpec(t, spec, want{kind: "free", target: "canvas"})
	if len(adoptees) != 1 || adoptees[0].Node.ID != "pin" {
		t.Fatalf("adoptees = %v, want [pin]", adoptees)
	}
	if want := geom.NewBox(50, 50, 40, 40); adoptees[0].Box != want {
		t.Errorf("adoptee box = %s, want frame box %s", adoptees[0].Box, want)
	}
	if adoptees[0].Element.Box == adoptees[0].Box {
		t.Error("adoptee box should not be the client box")
	}
}

func TestTargeterMarkers(t *testing.T) {
	v := mainView(t)
	tg := dnd.NewTargeter(v, nil, nil, dnd.Options{})

	first := tg.Resolve(geom.Pt{X: 600, Y: 150})
	tg.Resolve(geom.Pt{X: 900, Y: 300})
	tg.Resolve(geom.Pt{X: 900, Y: 310})
	second := tg.Resolve(geom.Pt{X: 500, Y: 250})
	if tg.Live() != second || v.Tentative() != second {
		t.Fatalf("live spec not mirrored to the view")
	}
	tg.Clear()

	markers := v.Markers()
	want := []dnd.InsertionSpec{first, nil, second, nil}
	if len(markers) != len(want) {
		t.Fatalf("markers = %d updates, want %d", len(markers), len(want))
	}
	for i := range want {
		if markers[i] != want[i] {
			t.Errorf("markers[%d] = %s, want %s", i, dnd.Describe(markers[i]), dnd.Describe(want[i]))
		}
	}
	if tg.Live() != nil || v.Tentative() != nil {
		t.Error("Clear should drop the live spec")
	}
}

func TestTargeterInvalidate(t *testing.T) {
	tg := dnd.NewTargeter(mainView(t), nil, nil, dnd.Options{})
	before := tg.Index()
	if tg.Index() != before {
		t.Fatal("index rebuilt without invalidation")
	}
	tg.Invalidate()
	after := tg.Index()
	if after == before {
		t.Fatal("Invalidate should force a rebuild")
	}
	if len(after.NodeBoxes) != len(before.NodeBoxes) {
		t.Errorf("rebuilt index has %d boxes, want %d", len(after.NodeBoxes), len(before.NodeBoxes))
	}
}
