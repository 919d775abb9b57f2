// Package dnd computes where a dragged node would land on a rendered canvas.
//
// Given the on-screen boxes of one render pass and a pointer position, the
// engine resolves a single [InsertionSpec]: insert as a child, insert before
// or after a sibling, insert into a grid cell, or a rejection carrying a
// [Reason]. Drag managers wrap a [Targeter] per gesture and commit the final
// spec through the host's tree mutation API.
//
// # Host contracts
//
// The engine owns no document. Hosts implement [View] (queries, acceptance
// and mutation for one rendered frame) and [Editor] (focus, undo scopes and
// move manipulators on top of a view). Acceptance predicates return a nil
// [*Reason] to accept.
//
// # Box index
//
// [BuildIndex] walks the rendered elements breadth first and reverses the
// result, so innermost boxes come first and the root comes last. Nodes that
// accept siblings get thin insertion strips along their leading and trailing
// edges; strips between two renderings of the same template are left out.
//
// # Resolution
//
// [Targeter.Resolve] applies, first match wins:
//
//  1. A pointer inside an insertion strip drops next to its anchor.
//  2. A pointer inside the frame but outside every node targets the root.
//  3. For each containing node, innermost first: a measured grid yields a
//     cell; an accepting container takes the node as a child, or for flow
//     layouts the nearest child strip; a node taking siblings yields its
//     leading or trailing strip; any other refusal except "component
//     instance" is reported as a rejection.
//  4. Otherwise nothing is targeted.
//
// [Targeter.ResolveAbsolute] only targets node interiors as free children.
// [Targeter.ResolveLassoAndAdoptees] picks a parent for a drawn rectangle
// and the absolutely positioned children it encloses.
//
// # Gestures
//
//	m := dnd.NewMoveManager(editor, editor.Focused(), start, dnd.Options{})
//	for _, p := range points {
//	    if err := m.Drag(p, dnd.Modifiers{}); err != nil {
//	        return err // aborted and cleaned up
//	    }
//	}
//	return m.EndDrag()
//
// Everything runs synchronously on the caller's goroutine. Managers are
// not safe for concurrent use.
package dnd
