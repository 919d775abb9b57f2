package dnd_test

import (
	"testing"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/scene"
)

const pagePath = "../scene/testdata/page.toml"

func loadScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Load(pagePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func mainView(t *testing.T) *scene.View {
	t.Helper()
	v, ok := loadScene(t).View("main")
	if !ok {
		t.Fatal("no main view")
	}
	return v
}

func nodeBox(t *testing.T, ix *dnd.Index, key string) *dnd.NodeBox {
	t.Helper()
	for _, nb := range ix.NodeBoxes {
		if nb.Selectable.Key() == key {
			return nb
		}
	}
	t.Fatalf("no node box %q", key)
	return nil
}

func hasNodeBox(ix *dnd.Index, key string) bool {
	for _, nb := range ix.NodeBoxes {
		if nb.Selectable.Key() == key {
			return true
		}
	}
	return false
}

func children(t *testing.T, v *scene.View, id dnd.TemplateID) []dnd.TemplateID {
	t.Helper()
	tpl, ok := v.Document().Template(id)
	if !ok {
		t.Fatalf("no template %q", id)
	}
	return tpl.Children
}

// newDiv is an insert factory creating a fresh div in the editor's document.
func newDiv(ed dnd.Editor) (dnd.TemplateID, bool) {
	v, ok := ed.(*scene.View)
	if !ok {
		return "", false
	}
	return v.Document().NewNode("div", nil), true
}
