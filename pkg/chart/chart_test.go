package chart

import (
	"reflect"
	"testing"

	"github.com/matzehuels/suechart/pkg/errors"
)

func TestCatalogOrder(t *testing.T) {
	cat := Catalog()
	if got, want := len(cat), 21; got != want {
		t.Fatalf("catalog size = %d, want %d", got, want)
	}
	if cat[0] != TypeArc || cat[4] != TypeLine || cat[20] != TypeTimeline {
		t.Errorf("catalog order changed: %v", cat)
	}

	// Catalog returns a copy
	cat[0] = "mutated"
	if c, _ := TypeAt(0); c != TypeArc {
		t.Error("Catalog() must not expose the internal slice")
	}
}

func TestTypeAt(t *testing.T) {
	if got, ok := TypeAt(4); !ok || got != TypeLine {
		t.Errorf("TypeAt(4) = %q, %v; want line, true", got, ok)
	}
	for _, i := range []int{-1, 21} {
		if _, ok := TypeAt(i); ok {
			t.Errorf("TypeAt(%d) should be out of range", i)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"line", TypeLine, false},
		{"stackedBar-mekko", TypeStackedBarMekko, false},
		{"pie", "", true},
		{"Line", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidType) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidType)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][]string
		wantErr bool
	}{
		{
			name:  "simple",
			input: "a\tb\n1\t2\n3\t4",
			want:  [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name:  "trailing newline",
			input: "a\tb\n1\t2\n",
			want:  [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "windows line endings",
			input: "a\tb\r\n1\t2\r\n",
			want:  [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "single column",
			input: "x\n1\n2",
			want:  [][]string{{"x"}, {"1"}, {"2"}},
		},
		{
			name:  "empty cells kept",
			input: "a\t\tc\n1\t\t3",
			want:  [][]string{{"a", "", "c"}, {"1", "", "3"}},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "blank lines", input: "\n \n", wantErr: true},
		{name: "ragged", input: "a\tb\n1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTable(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTable() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeParse) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeParse)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTable(t *testing.T) {
	rows, err := ParseTable(ExampleTable)
	if err != nil {
		t.Fatalf("ParseTable(ExampleTable) error: %v", err)
	}
	if got := FormatTable(rows); got != ExampleTable {
		t.Errorf("FormatTable() = %q, want %q", got, ExampleTable)
	}
}

func TestNew(t *testing.T) {
	c := New(TypeLine, [][]string{{"a"}})
	if c.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", c.Style, DefaultStyle)
	}
	if !reflect.DeepEqual(c.SignalSettings, DefaultSignalSettings()) {
		t.Errorf("SignalSettings = %v", c.SignalSettings)
	}
	if c.Width != 0 || c.Height != 0 {
		t.Error("New() should leave size unset")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := New(TypeLine, [][]string{{"a", "b"}}).WithSize(300, 200)

	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown type", func(c *Config) { c.ChartType = "pie" }, errors.ErrCodeInvalidType},
		{"bad style", func(c *Config) { c.Style = "../admin" }, errors.ErrCodeInvalidStyle},
		{"empty style", func(c *Config) { c.Style = "" }, errors.ErrCodeInvalidStyle},
		{"no data", func(c *Config) { c.Data = nil }, errors.ErrCodeInvalidInput},
		{"zero width", func(c *Config) { c.Width = 0 }, errors.ErrCodeInvalidInput},
		{"negative height", func(c *Config) { c.Height = -1 }, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid.Clone()
			tt.mutate(&c)
			err := c.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	configs := []Config{
		New(TypeLine, [][]string{{"a", "b"}, {"1", "2"}}).WithSize(300, 200),
		New(TypeTreemap, [][]string{{"ä", "\"quoted\""}, {"|||||", "\\"}}).WithSize(12.5, 99.75),
		{ChartType: TypeArc, Data: [][]string{{"x"}}, Style: "print", SignalSettings: map[string]any{"k": "v", "n": 1.5}, Width: 1, Height: 1},
	}

	for _, c := range configs {
		raw, err := c.Marshal()
		if err != nil {
			t.Fatalf("Marshal() error: %v", err)
		}
		got, err := Unmarshal(raw)
		if err != nil {
			t.Fatalf("Unmarshal() error: %v", err)
		}
		if !reflect.DeepEqual(got, c) {
			t.Errorf("round trip = %#v, want %#v", got, c)
		}
	}
}

func TestConfigClone(t *testing.T) {
	c := New(TypeLine, [][]string{{"a"}})
	cp := c.Clone()
	cp.Data[0][0] = "changed"
	cp.SignalSettings[SignalHeightPerStep] = 1.0

	if c.Data[0][0] != "a" {
		t.Error("Clone() shares data rows")
	}
	if c.SignalSettings[SignalHeightPerStep] != 150.0 {
		t.Error("Clone() shares signal settings")
	}
}
