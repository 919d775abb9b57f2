package dnd

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/droptarget/pkg/errors"
)

func TestOptionsWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want Config
	}{
		{
			name: "zero config uses defaults",
			opts: Options{},
			want: DefaultConfig(),
		},
		{
			name: "preserves non-zero values",
			opts: Options{Config: Config{StripThickness: 2, StripExtension: 1, DedentThreshold: 30, MarkerInset: 1}},
			want: Config{StripThickness: 2, StripExtension: 1, DedentThreshold: 30, MarkerInset: 1},
		},
		{
			name: "partial config is kept as is",
			opts: Options{Config: Config{StripThickness: 6}},
			want: Config{StripThickness: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.WithDefaults()
			if got.Config != tt.want {
				t.Errorf("Config = %+v, want %+v", got.Config, tt.want)
			}
			if got.Logger == nil {
				t.Error("Logger should not be nil after WithDefaults")
			}
		})
	}
}

func TestOptionsWithDefaultsPreservesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	opts := Options{Logger: logger}.WithDefaults()
	opts.Logger.Debug("probe")

	if opts.Logger != logger {
		t.Error("custom logger was replaced")
	}
	if !bytes.Contains(buf.Bytes(), []byte("probe")) {
		t.Errorf("custom logger not used, output %q", buf.String())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"zero", Config{}, false},
		{"negative thickness", Config{StripThickness: -1}, true},
		{"negative extension", Config{StripExtension: -1}, true},
		{"negative dedent", Config{DedentThreshold: -0.5}, true},
		{"negative inset", Config{MarkerInset: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}
