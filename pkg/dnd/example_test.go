package dnd_test

import (
	"fmt"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/scene"
)

const exampleScene = `
[[template]]
id = "page"
tag = "body"
children = ["list", "canvas"]

[[template]]
id = "list"
tag = "div"
style = { display = "flex" }
children = ["a", "b"]

[[template]]
id = "a"
tag = "div"

[[template]]
id = "b"
tag = "div"

[[template]]
id = "canvas"
tag = "div"

[[view]]
name = "main"
frame = [0, 0, 400, 200]
element = [
  { key = "page", template = "page", box = [0, 0, 400, 200] },
  { key = "list", template = "list", parent = "page", box = [0, 0, 300, 100] },
  { key = "a", template = "a", parent = "list", box = [0, 0, 100, 100] },
  { key = "b", template = "b", parent = "list", box = [100, 0, 100, 100] },
  { key = "canvas", template = "canvas", parent = "page", box = [0, 100, 400, 100] },
]
`

func ExampleTargeter_Resolve() {
	s, err := scene.Parse([]byte(exampleScene))
	if err != nil {
		panic(err)
	}
	v, _ := s.View("main")

	tg := dnd.NewTargeter(v, nil, nil, dnd.Options{})
	fmt.Println(dnd.Describe(tg.Resolve(geom.Pt{X: 100, Y: 50})))
	fmt.Println(dnd.Describe(tg.Resolve(geom.Pt{X: 50, Y: 150})))
	fmt.Println(dnd.Describe(tg.Resolve(geom.Pt{X: 350, Y: 50})))
	fmt.Println(dnd.Describe(tg.Resolve(geom.Pt{X: 500, Y: 50})))
	// Output:
	// before b
	// child of canvas (free) at (50,150)
	// child of page (free) at (350,50)
	// nothing
}

func ExampleNewMoveManager() {
	s, err := scene.Parse([]byte(exampleScene))
	if err != nil {
		panic(err)
	}
	v, _ := s.View("main")
	if err := v.Focus("a"); err != nil {
		panic(err)
	}

	m := dnd.NewMoveManager(v, v.Focused(), geom.Pt{X: 50, Y: 50}, dnd.Options{})
	if err := m.Drag(geom.Pt{X: 200, Y: 50}, dnd.Modifiers{}); err != nil {
		panic(err)
	}
	fmt.Println(dnd.Describe(m.Tentative()))
	if err := m.EndDrag(); err != nil {
		panic(err)
	}
	fmt.Print(s.Doc)
	// Output:
	// after b
	// page <body>
	//   list <div>
	//     b <div>
	//     a <div>
	//   canvas <div>
}
