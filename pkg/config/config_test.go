package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Size != 100 || cfg.MinSectors != 6 || cfg.Radius != 50 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.InnerRadius != 20 {
		t.Errorf("InnerRadius = %g, want 20", cfg.InnerRadius)
	}
	if cfg.SectorSpace != 3 {
		t.Errorf("SectorSpace = %g, want 3", cfg.SectorSpace)
	}
	if cfg.TransitionFallback != 600*time.Millisecond {
		t.Errorf("TransitionFallback = %s", cfg.TransitionFallback)
	}
	if cfg.Classes.Container != "menuHolder" || cfg.Classes.Disabled != "dummy" {
		t.Errorf("unexpected classes: %+v", cfg.Classes)
	}
	if !reflect.DeepEqual(cfg.Keys.Back, []string{"Escape", "Backspace"}) {
		t.Errorf("Keys.Back = %v", cfg.Keys.Back)
	}
	if cfg.Icons.Close != "#close" || cfg.Icons.Back != "#return" {
		t.Errorf("unexpected icons: %+v", cfg.Icons)
	}
}

func TestMergeRecordsRecursively(t *testing.T) {
	base := Values{"a": Values{"x": 0, "z": 3}, "b": 1}

	got := Merge(base, Values{"a": Values{"x": 1}}, Values{"a": map[string]any{"y": 2}})

	want := Values{"a": Values{"x": 1, "y": 2, "z": 3}, "b": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge() = %v, want %v", got, want)
	}
}

func TestMergeIsAssociativePerKey(t *testing.T) {
	a := Values{"classes": Values{"menu": "m2"}}
	b := Values{"classes": Values{"open": "o2"}}

	oneShot := Merge(Defaults(), a, b)
	stepwise := Merge(Merge(Defaults(), a), b)

	if !reflect.DeepEqual(oneShot, stepwise) {
		t.Fatalf("merge not associative:\n%v\n%v", oneShot, stepwise)
	}

	classes := oneShot["classes"].(Values)
	if classes["menu"] != "m2" || classes["open"] != "o2" || classes["sector"] != "sector" {
		t.Fatalf("classes not merged: %v", classes)
	}
}

func TestMergeReplacesArraysAndScalars(t *testing.T) {
	base := Values{
		"list": []any{"a", "b", "c"},
		"rec":  Values{"x": 1},
	}

	got := Merge(base, Values{"list": []any{"z"}, "rec": "flat"})

	if !reflect.DeepEqual(got["list"], []any{"z"}) {
		t.Errorf("array merged element-wise: %v", got["list"])
	}
	if got["rec"] != "flat" {
		t.Errorf("scalar did not replace record: %v", got["rec"])
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Values{"rec": Values{"x": 1}, "list": []any{"a"}}
	over := Values{"rec": Values{"y": 2}}

	got := Merge(base, over)
	got["rec"].(Values)["x"] = 99
	got["list"].([]any)[0] = "changed"

	if base["rec"].(Values)["x"] != 1 {
		t.Error("base record mutated")
	}
	if _, ok := base["rec"].(Values)["y"]; ok {
		t.Error("overlay key leaked into base")
	}
	if base["list"].([]any)[0] != "a" {
		t.Error("base array mutated")
	}

	d := Defaults()
	d["size"] = 1
	if Defaults()["size"] != 100 {
		t.Error("Defaults() returned shared state")
	}
}

func TestResolve(t *testing.T) {
	cfg, err := Resolve(Values{
		"size":             432,
		"multiInnerRadius": 0.2,
		"classes":          Values{"container": "menuHolder2", "menu": "menu2"},
		"keys":             Values{"select": []any{"Enter", " "}},
		"unknownFutureKey": Values{"anything": true},
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if cfg.Size != 432 {
		t.Errorf("Size = %d", cfg.Size)
	}
	if cfg.InnerRadius != 10 {
		t.Errorf("InnerRadius = %g, want 10", cfg.InnerRadius)
	}
	if cfg.Classes.Container != "menuHolder2" || cfg.Classes.Menu != "menu2" || cfg.Classes.Sector != "sector" {
		t.Errorf("classes = %+v", cfg.Classes)
	}
	if !reflect.DeepEqual(cfg.Keys.Select, []string{"Enter", " "}) {
		t.Errorf("Keys.Select = %v", cfg.Keys.Select)
	}
	if !reflect.DeepEqual(cfg.Keys.Back, []string{"Escape", "Backspace"}) {
		t.Errorf("Keys.Back = %v", cfg.Keys.Back)
	}
}

func TestResolveExplicitRadii(t *testing.T) {
	cfg, err := Resolve(Values{"radius": 40, "innerRadius": 0, "sectorSpace": 0})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.InnerRadius != 0 || cfg.SectorSpace != 0 {
		t.Errorf("explicit zero radii not kept: inner=%g space=%g", cfg.InnerRadius, cfg.SectorSpace)
	}
}

func TestResolveDurationString(t *testing.T) {
	cfg, err := Resolve(Values{"transitionFallback": "1.5s"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.TransitionFallback != 1500*time.Millisecond {
		t.Errorf("TransitionFallback = %s", cfg.TransitionFallback)
	}
}

func TestResolveInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   Values
	}{
		{"zero size", Values{"size": 0}},
		{"negative radius", Values{"radius": -1}},
		{"inner above outer", Values{"innerRadius": 60}},
		{"negative space", Values{"sectorSpace": -2}},
		{"negative min sectors", Values{"minSectors": -1}},
		{"zero fallback", Values{"transitionFallback": "0s"}},
		{"undecodable", Values{"radius": "wide"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.in); !errors.Is(err, ErrInvalid) {
				t.Fatalf("error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestResolveAcceptsSmallMinSectors(t *testing.T) {
	cfg, err := Resolve(Values{"minSectors": 2})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.MinSectors != 2 {
		t.Errorf("MinSectors = %d", cfg.MinSectors)
	}
}

func TestParseAndLoadFile(t *testing.T) {
	data := []byte(`
size: 400
closeOnClick: false
classes:
  menu: menu2
nested:
  title: false
`)
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if _, ok := v["classes"].(Values); !ok {
		t.Fatalf("nested map not normalized: %T", v["classes"])
	}

	cfg, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Size != 400 || cfg.CloseOnClick || cfg.Nested.Title {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Classes.Menu != "menu2" || cfg.Classes.Inner != "inner" {
		t.Errorf("classes = %+v", cfg.Classes)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("size: [1, 2")); err == nil {
		t.Fatal("expected parse error")
	}
}
