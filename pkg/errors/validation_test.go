package errors

import (
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "root", false},
		{"valid with dash", "list-item", false},
		{"valid with underscore", "_slot", false},
		{"valid qualified", "card#children", false},
		{"valid with colon", "main:3", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"space", "two words", true},
		{"newline", "foo\nbar", true},
		{"leading dash", "-x", true},
		{"slash", "a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseFloats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		n       int
		want    []float64
		wantErr bool
	}{
		{"point", "10,20", 2, []float64{10, 20}, false},
		{"spaces", " 1.5 , -2 ", 2, []float64{1.5, -2}, false},
		{"rect", "0,0,100,40", 4, []float64{0, 0, 100, 40}, false},
		{"too few", "10", 2, nil, true},
		{"not a number", "a,b", 2, nil, true},
		{"infinite", "Inf,1", 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFloats(tt.input, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFloats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidPoint) {
					t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPoint)
				}
				return
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ParseFloats(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
