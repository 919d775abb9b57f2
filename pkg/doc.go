// Package pkg provides the core libraries for Droptarget, a spatial targeting
// engine for drag-and-drop on a rendered canvas.
//
// # Overview
//
// A visual editor renders a document tree to screen boxes. While the user
// drags, the editor needs to know where the dragged nodes would land: inside
// a container, before or after a sibling, in a grid cell, or nowhere. The
// pkg directory is organized into these areas:
//
//  1. [dnd] - Targeting engine (box index, resolution, drag managers)
//  2. [outline] - Row-based targeting for the layers panel tree
//  3. [scene] - A TOML-described in-memory host implementing the engine's contracts
//  4. [render] - Diagnostic rendering of box indexes (Graphviz node-link)
//  5. [geom], [errors], [observability], [cache], [buildinfo] - Shared support
//
// # Architecture
//
// The typical data flow for one drag gesture:
//
//	Rendered elements (host view)
//	         ↓
//	    [dnd.BuildIndex] (node boxes innermost first + insertion strips)
//	         ↓
//	    [dnd.Targeter] (pointer → InsertionSpec, marker shown on the view)
//	         ↓
//	    [dnd.MoveManager] / [dnd.InsertManager] (gesture lifecycle)
//	         ↓
//	    host mutation API (one undo step, or nothing on abort)
//
// # Quick Start
//
// Resolve a pointer against a scene file:
//
//	s, _ := scene.Load("page.toml")
//	v, _ := s.View("main")
//
//	tg := dnd.NewTargeter(v, nil, nil, dnd.Options{Config: s.Config})
//	spec := tg.Resolve(geom.Pt{X: 200, Y: 50})
//	fmt.Println(dnd.Describe(spec)) // before y
//
// Move focused nodes with a gesture:
//
//	_ = v.Focus("a", "b")
//	m := dnd.NewMoveManager(v, v.Focused(), start, dnd.Options{})
//	_ = m.Drag(p, dnd.Modifiers{})
//	_ = m.EndDrag()
//
// # Main Packages
//
// [dnd] - The engine. It owns no document: hosts implement [dnd.View] and
// [dnd.Editor]. Acceptance predicates return a nil reason to accept.
//
// [outline] - Targeting over the rows of a tree panel. Rows are split into
// above, child and below bands; horizontal movement dedents.
//
// [scene] - Documents, templates and rendered views decoded from TOML. Used
// by the dndreplay CLI and by the engine's tests.
//
// [render/nodelink] - Box index diagrams via Graphviz (DOT, SVG, PNG, PDF).
//
// [cache] - File cache for rendered diagrams keyed by source hash.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/dnd/...     # Specific package
//	go test -run Example      # Examples only
//
// [dnd]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/dnd
// [dnd.BuildIndex]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/dnd#BuildIndex
// [dnd.Targeter]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/dnd#Targeter
// [dnd.MoveManager]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/dnd#MoveManager
// [dnd.InsertManager]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/dnd#InsertManager
// [dnd.View]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/dnd#View
// [dnd.Editor]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/dnd#Editor
// [outline]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/outline
// [scene]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/render/nodelink
// [geom]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/geom
// [errors]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/observability
// [cache]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/cache
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/droptarget/pkg/buildinfo
package pkg
