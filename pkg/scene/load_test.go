package scene

import (
	"testing"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
)

func TestLoad(t *testing.T) {
	s := loadPage(t)

	if s.Name != "page" {
		t.Errorf("Name = %q, want page", s.Name)
	}
	if s.Config != dnd.DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", s.Config)
	}
	if len(s.Views) != 2 || len(s.Editors()) != 2 {
		t.Fatalf("got %d views, want 2", len(s.Views))
	}
	main, ok := s.View("main")
	if !ok {
		t.Fatal("View(main) not found")
	}
	if got := len(main.Body().Children); got != 1 {
		t.Errorf("main body has %d top-level elements, want 1", got)
	}
	if _, ok := s.View("nope"); ok {
		t.Error("View(nope) should not be found")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.toml")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseConfigOverride(t *testing.T) {
	s, err := Parse([]byte(`
[config]
dedent_threshold = 32.0
`))
	if err != nil {
		t.Fatal(err)
	}
	want := dnd.DefaultConfig()
	want.DedentThreshold = 32
	if s.Config != want {
		t.Errorf("Config = %+v, want %+v", s.Config, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{
			name: "syntax",
			src:  `name = `,
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "negative config",
			src:  "[config]\nstrip_thickness = -1.0\n",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "template without kind",
			src:  "[[template]]\nid = \"a\"\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "bad template id",
			src:  "[[template]]\nid = \"a b\"\ntag = \"div\"\n",
			code: errors.ErrCodeInvalidID,
		},
		{
			name: "unknown child",
			src:  "[[template]]\nid = \"a\"\ntag = \"div\"\nchildren = [\"b\"]\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "bad frame",
			src:  "[[view]]\nname = \"v\"\nframe = [0, 0, 10]\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "unknown element template",
			src:  "[[view]]\nname = \"v\"\nframe = [0, 0, 10, 10]\n[[view.element]]\ntemplate = \"ghost\"\nbox = [0, 0, 1, 1]\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "unknown parent",
			src:  "[[template]]\nid = \"a\"\ntag = \"div\"\n[[view]]\nname = \"v\"\nframe = [0, 0, 10, 10]\n[[view.element]]\ntemplate = \"a\"\nparent = \"ghost\"\nbox = [0, 0, 1, 1]\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "slot outside component",
			src:  "[[view]]\nname = \"v\"\nframe = [0, 0, 10, 10]\n[[view.element]]\nslot = \"children\"\nbox = [0, 0, 1, 1]\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "duplicate view",
			src:  "[[view]]\nname = \"v\"\nframe = [0, 0, 10, 10]\n[[view]]\nname = \"v\"\nframe = [0, 0, 10, 10]\n",
			code: errors.ErrCodeInvalidScene,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Parse() code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestParseGeneratesElementKeys(t *testing.T) {
	s, err := Parse([]byte(`
[[template]]
id = "root"
tag = "div"

[[view]]
name = "v"
frame = [0, 0, 100, 100]

[[view.element]]
template = "root"
box = [0, 0, 100, 100]
`))
	if err != nil {
		t.Fatal(err)
	}
	els := s.Views[0].Elements()
	if len(els) != 1 || len(els[0].ID) != len("el-")+8 {
		t.Errorf("Elements() = %v, want one generated key", els)
	}
}
