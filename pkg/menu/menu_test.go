package menu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestItemCopyDoesNotShareItems(t *testing.T) {
	orig := Item{ID: "more", Items: []Item{{ID: "eat"}, {ID: "sleep"}}}

	c := orig.Copy()
	c.Items[0].ID = "changed"
	c.Title = "changed"

	if orig.Items[0].ID != "eat" {
		t.Fatalf("copy mutated original sub-item: %q", orig.Items[0].ID)
	}
	if orig.Title != "" {
		t.Fatalf("copy mutated original title: %q", orig.Title)
	}
}

func TestIsBranch(t *testing.T) {
	if (Item{ID: "leaf"}).IsBranch() {
		t.Error("leaf reported as branch")
	}
	if !(Item{ID: "branch", Items: []Item{}}).IsBranch() {
		t.Error("branch with empty items reported as leaf")
	}
}

func TestPreselectedIndex(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  int
	}{
		{"empty", nil, -1},
		{"none flagged", []Item{{ID: "a"}, {ID: "b"}}, 0},
		{"second flagged", []Item{{ID: "a"}, {ID: "b", Selected: true}}, 1},
		{"first of many", []Item{{ID: "a"}, {ID: "b", Selected: true}, {ID: "c", Selected: true}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreselectedIndex(tt.items); got != tt.want {
				t.Errorf("PreselectedIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		menu    Menu
		wantErr error
	}{
		{
			name: "ids unique per level only",
			menu: Menu{Items: []Item{
				{ID: "a", Items: []Item{{ID: "x"}}},
				{ID: "b", Items: []Item{{ID: "x"}}},
			}},
		},
		{
			name:    "duplicate siblings",
			menu:    Menu{Items: []Item{{ID: "a"}, {ID: "a"}}},
			wantErr: ErrDuplicateID,
		},
		{
			name:    "duplicate nested",
			menu:    Menu{Items: []Item{{ID: "a", Items: []Item{{ID: "x"}, {ID: "x"}}}}},
			wantErr: ErrDuplicateID,
		},
		{
			name:    "empty id",
			menu:    Menu{Items: []Item{{Title: "no id"}}},
			wantErr: ErrEmptyID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.menu.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWalkAndDepth(t *testing.T) {
	m := Menu{Items: []Item{
		{ID: "walk"},
		{ID: "weapon", Items: []Item{
			{ID: "firearm", Items: []Item{{ID: "glock"}}},
			{ID: "knife"},
		}},
	}}

	var visited []string
	m.Walk(func(path []string, item *Item) {
		p := ""
		for _, s := range path {
			p += s + "/"
		}
		visited = append(visited, p+item.ID)
	})

	want := []string{"walk", "weapon", "weapon/firearm", "weapon/firearm/glock", "weapon/knife"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for k := range want {
		if visited[k] != want[k] {
			t.Errorf("visited[%d] = %q, want %q", k, visited[k], want[k])
		}
	}

	if d := m.Depth(); d != 3 {
		t.Errorf("Depth() = %d, want 3", d)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
title: demo
items:
  - id: walk
    title: Walk
    icon: "#walk"
  - id: more
    title: More...
    fontSize: 60%
    items:
      - id: eat
        title: Eat
      - id: sleep
        selected: true
`)
	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(m.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(m.Items))
	}
	more := m.Items[1]
	if !more.IsBranch() || len(more.Items) != 2 {
		t.Fatalf("more is not a branch with 2 items: %+v", more)
	}
	if more.FontSize != "60%" {
		t.Errorf("FontSize = %q, want 60%%", more.FontSize)
	}
	if !more.Items[1].Selected {
		t.Error("sleep should be pre-selected")
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("items:\n  - id: a\n  - id: a\n"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("error = %v, want ErrDuplicateID", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	if err := os.WriteFile(path, []byte("items:\n  - id: one\n    title: One\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if m.Items[0].Title != "One" {
		t.Errorf("Title = %q, want One", m.Items[0].Title)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
