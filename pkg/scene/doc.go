// Package scene is an in-memory host for the drag-and-drop engine.
//
// A [Scene] holds a template [Document] and one or more [View]s. Each view
// is a fixed render pass: a tree of elements with pre-computed client
// boxes, resolved to the rendered nodes, component instances, slot
// arguments and slot placeholders they stand for. Views implement
// [dnd.Editor] and the document implements [outline.Tree], so every
// gesture the engine supports can be replayed against a scene.
//
// # Scene files
//
// Scenes are TOML:
//
//	name = "page"
//
//	[config]              # optional engine constants
//	strip_thickness = 4.0
//
//	[[template]]
//	id = "row"
//	tag = "div"
//	style = { display = "flex" }
//	children = ["x", "y"]
//
//	[[view]]
//	name = "main"
//	frame = [0, 0, 800, 600]   # left, top, width, height
//
//	[[view.element]]
//	key = "row"
//	template = "row"
//	box = [0, 0, 400, 100]
//
// Templates are tags, component instances (component = "Card", with slots)
// or slots (slot = "param"). Elements reference a template, or are marked
// internal to a component, or name a slot argument of the enclosing
// instance (slot = "children"). Elements without a key get a generated one.
//
// # Mutations
//
// Mutations change the document only. Element boxes describe the render
// pass the scene was loaded with and do not move; a host that re-renders
// would load a new scene.
package scene
