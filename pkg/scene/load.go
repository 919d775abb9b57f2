package scene

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/geom"
)

// Scene is a document together with the views that render it.
type Scene struct {
	Name   string
	Config dnd.Config
	Doc    *Document
	Views  []*View
}

// View returns the view with the given name.
func (s *Scene) View(name string) (*View, bool) {
	for _, v := range s.Views {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

// Editors returns every view as a [dnd.Editor], in file order.
func (s *Scene) Editors() []dnd.Editor {
	out := make([]dnd.Editor, len(s.Views))
	for i, v := range s.Views {
		out[i] = v
	}
	return out
}

type sceneFile struct {
	Name      string         `toml:"name"`
	Config    dnd.Config     `toml:"config"`
	Templates []templateFile `toml:"template"`
	Views     []viewFile     `toml:"view"`
}

type templateFile struct {
	ID        string            `toml:"id"`
	Tag       string            `toml:"tag"`
	Component string            `toml:"component"`
	Slot      string            `toml:"slot"`
	Slots     []string          `toml:"slots"`
	SlotParam string            `toml:"slot_param"`
	Style     map[string]string `toml:"style"`
	Children  []string          `toml:"children"`
	Locked    bool              `toml:"locked"`
	Text      bool              `toml:"text"`
}

type viewFile struct {
	Name         string        `toml:"name"`
	Frame        []float64     `toml:"frame"`
	Zoom         float64       `toml:"zoom"`
	Hidden       bool          `toml:"hidden"`
	Editing      string        `toml:"editing"`
	ShowDefaults bool          `toml:"show_defaults"`
	Focus        []string      `toml:"focus"`
	Elements     []elementFile `toml:"element"`
}

type elementFile struct {
	Key      string    `toml:"key"`
	Template string    `toml:"template"`
	Parent   string    `toml:"parent"`
	Slot     string    `toml:"slot"`
	Internal bool      `toml:"internal"`
	Box      []float64 `toml:"box"`
	Padding  []float64 `toml:"padding"`
	Hidden   bool      `toml:"hidden"`
	GridRows []float64 `toml:"grid_rows"`
	GridCols []float64 `toml:"grid_cols"`
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene %s", path)
	}
	return Parse(data)
}

// Parse decodes a scene from TOML. A [config] table overrides individual
// engine constants; missing keys keep their defaults.
func Parse(data []byte) (*Scene, error) {
	f := sceneFile{Config: dnd.DefaultConfig()}
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if err := f.Config.Validate(); err != nil {
		return nil, err
	}

	doc, err := buildDocument(f.Templates)
	if err != nil {
		return nil, err
	}
	s := &Scene{Name: f.Name, Config: f.Config, Doc: doc}
	for i, vf := range f.Views {
		v, err := buildView(doc, vf)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "view %d", i)
		}
		if _, dup := s.View(v.name); dup {
			return nil, errors.New(errors.ErrCodeInvalidScene, "duplicate view %q", v.name)
		}
		s.Views = append(s.Views, v)
	}
	return s, nil
}

func buildDocument(tfs []templateFile) (*Document, error) {
	doc := NewDocument()
	order := make([]dnd.TemplateID, 0, len(tfs))
	for _, tf := range tfs {
		if err := errors.ValidateID(tf.ID); err != nil {
			return nil, err
		}
		t := &Template{
			ID:        dnd.TemplateID(tf.ID),
			Tag:       tf.Tag,
			Style:     dnd.Style(tf.Style),
			Slots:     tf.Slots,
			SlotParam: tf.SlotParam,
			Locked:    tf.Locked,
			Text:      tf.Text,
		}
		switch {
		case tf.Component != "":
			t.Kind, t.Tag = dnd.KindComponent, tf.Component
		case tf.Slot != "":
			t.Kind, t.Param = dnd.KindSlot, tf.Slot
		case tf.Tag != "":
			t.Kind = dnd.KindTag
		default:
			return nil, errors.New(errors.ErrCodeInvalidScene, "template %s needs a tag, component or slot", tf.ID)
		}
		for _, c := range tf.Children {
			t.Children = append(t.Children, dnd.TemplateID(c))
		}
		if err := doc.Add(t); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "template %s", tf.ID)
		}
		order = append(order, t.ID)
	}
	if err := doc.Link(order); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "link templates")
	}
	return doc, nil
}

func parseBox(vals []float64, what string) (geom.Box, error) {
	if len(vals) != 4 {
		return geom.Box{}, fmt.Errorf("%s: want [left, top, width, height], got %v", what, vals)
	}
	return geom.NewBox(vals[1], vals[0], vals[2], vals[3]), nil
}

func tracks(start float64, sizes []float64) []dnd.Track {
	out := make([]dnd.Track, len(sizes))
	for i, s := range sizes {
		out[i] = dnd.Track{Start: start, Size: s}
		start += s
	}
	return out
}

func buildView(doc *Document, vf viewFile) (*View, error) {
	if err := errors.ValidateID(vf.Name); err != nil {
		return nil, err
	}
	frame, err := parseBox(vf.Frame, "frame")
	if err != nil {
		return nil, err
	}
	zoom := vf.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	v := &View{
		doc:          doc,
		name:         vf.Name,
		frame:        frame,
		zoom:         zoom,
		visible:      !vf.Hidden,
		body:         &dnd.Element{ID: "#frame", Box: frame, Padding: frame, Scaled: frame},
		entries:      make(map[string]*entry),
		byKey:        make(map[string]*entry),
		inContext:    make(map[string]bool),
		showDefaults: vf.ShowDefaults,
	}
	v.body.Bounds = v.ClientToFrame().ApplyBox(frame)

	if vf.Editing != "" {
		t, ok := doc.Template(dnd.TemplateID(vf.Editing))
		if !ok {
			return nil, fmt.Errorf("editing %s: %w", vf.Editing, ErrUnknownTemplate)
		}
		v.component = &dnd.RenderedNode{ID: "editing:" + string(t.ID), Template: t.ID, Kind: t.Kind, Tag: t.Tag}
		v.inContext[v.component.ID] = true
	}

	for i := range vf.Elements {
		if vf.Elements[i].Key == "" {
			vf.Elements[i].Key = "el-" + uuid.New().String()[:8]
		}
		ef := vf.Elements[i]
		if err := errors.ValidateID(ef.Key); err != nil {
			return nil, err
		}
		if _, dup := v.entries[ef.Key]; dup {
			return nil, fmt.Errorf("duplicate element key %q", ef.Key)
		}
		box, err := parseBox(ef.Box, "element "+ef.Key)
		if err != nil {
			return nil, err
		}
		padding := box
		if ef.Padding != nil {
			if padding, err = parseBox(ef.Padding, "element "+ef.Key+" padding"); err != nil {
				return nil, err
			}
		}
		el := &dnd.Element{
			ID:      ef.Key,
			Box:     box,
			Padding: padding,
			Scaled:  box,
			Bounds:  v.ClientToFrame().ApplyBox(box),
			Hidden:  ef.Hidden,
		}
		e := &entry{el: el}
		if len(ef.GridRows) > 0 || len(ef.GridCols) > 0 {
			e.grid = &dnd.GridInfo{Rows: tracks(padding.Top, ef.GridRows), Cols: tracks(padding.Left, ef.GridCols)}
		}
		v.entries[ef.Key] = e
		v.order = append(v.order, e)
	}

	for _, ef := range vf.Elements {
		e := v.entries[ef.Key]
		if ef.Parent == "" {
			v.body.Children = append(v.body.Children, e.el)
			continue
		}
		p, ok := v.entries[ef.Parent]
		if !ok {
			return nil, fmt.Errorf("element %s: unknown parent %q", ef.Key, ef.Parent)
		}
		e.parent = p
		p.children = append(p.children, e)
		p.el.Children = append(p.el.Children, e.el)
	}

	// Parents are resolved before their children.
	var resolve func(e *entry, ef elementFile) error
	resolved := make(map[*entry]bool)
	files := make(map[*entry]elementFile, len(vf.Elements))
	for _, ef := range vf.Elements {
		files[v.entries[ef.Key]] = ef
	}
	resolve = func(e *entry, ef elementFile) error {
		if resolved[e] {
			return nil
		}
		resolved[e] = true
		if e.parent != nil {
			if err := resolve(e.parent, files[e.parent]); err != nil {
				return err
			}
		}
		return v.resolveEntry(e, ef)
	}
	for _, ef := range vf.Elements {
		if err := resolve(v.entries[ef.Key], ef); err != nil {
			return nil, err
		}
	}

	if len(vf.Focus) > 0 {
		if err := v.Focus(vf.Focus...); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// contextOf reports whether children of p render user content: true at the
// top level and under slot arguments, false inside component internals.
func contextOf(p *entry) bool {
	if p == nil {
		return true
	}
	if p.slot != nil {
		return true
	}
	if p.instance != nil {
		return false
	}
	return p.inContext
}

func (v *View) resolveEntry(e *entry, ef elementFile) error {
	key := ef.Key
	inCtx := contextOf(e.parent) && !ef.Internal

	if ef.Slot != "" {
		var owner *dnd.RenderedNode
		for p := e.parent; p != nil; p = p.parent {
			if p.instance != nil {
				owner = p.instance
				break
			}
		}
		if owner == nil {
			return fmt.Errorf("element %s: slot %q outside a component instance", key, ef.Slot)
		}
		ref := dnd.SlotReference{Owner: owner, Template: owner.Template, Param: ef.Slot}
		e.slot = &ref
		e.sel = ref
		e.inContext = v.inContext[owner.ID]
		v.byKey[ref.Key()] = e
		return nil
	}

	if ef.Internal || ef.Template == "" {
		n := &dnd.RenderedNode{ID: key, Template: dnd.TemplateID(key), Kind: dnd.KindTag, Tag: "div"}
		e.sel = n
		v.byKey[n.ID] = e
		return nil
	}

	t, ok := v.doc.Template(dnd.TemplateID(ef.Template))
	if !ok {
		return fmt.Errorf("element %s: %w %s", key, ErrUnknownTemplate, ef.Template)
	}
	node := &dnd.RenderedNode{ID: key, Template: t.ID, Kind: t.Kind, Tag: t.Tag}
	e.inContext = inCtx

	switch t.Kind {
	case dnd.KindComponent:
		// The element is the instance's root; the root itself belongs to the
		// component definition.
		e.instance = node
		root := &dnd.RenderedNode{ID: key + "/root", Template: t.ID + "/root", Kind: dnd.KindTag, Tag: "div"}
		e.sel = root
		v.byKey[root.ID] = e
		v.byKey[node.ID] = e
		v.inContext[node.ID] = inCtx
		if inCtx {
			e.outer = node
		}
	case dnd.KindSlot:
		ph := dnd.SlotPlaceholder{Node: node, Owner: v.component, Param: t.Param}
		e.sel = ph
		v.byKey[ph.Key()] = e
		v.inContext[node.ID] = inCtx
		if inCtx {
			e.outer = ph
		}
	default:
		e.sel = node
		v.byKey[node.ID] = e
		v.inContext[node.ID] = inCtx
		if inCtx {
			e.outer = node
		}
	}
	return nil
}
