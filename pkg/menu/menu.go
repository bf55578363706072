package menu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateID is returned when two siblings share the same id.
var ErrDuplicateID = errors.New("duplicate item id")

// ErrEmptyID is returned when an item has no id.
var ErrEmptyID = errors.New("empty item id")

// Menu represents the root menu structure.
type Menu struct {
	// Title of the menu
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Version of the menu definition
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Items is the list of top level menu items
	Items []Item `json:"items" yaml:"items"`
}

// Validate walks through the menu tree and checks that every id is set
// and unique within its sibling list. Ids are not required to be globally unique.
func (m *Menu) Validate() error {
	return validateLevel(m.Items, nil)
}

// Walk visits every item of the tree depth-first. The path holds the ids of
// the ancestors of the visited item, outermost first.
func (m *Menu) Walk(visit func(path []string, item *Item)) {
	walkLevel(m.Items, nil, visit)
}

// Depth returns the deepest nesting level of the tree; a flat menu has depth 1.
func (m *Menu) Depth() int {
	depth := 0
	m.Walk(func(path []string, _ *Item) {
		if len(path)+1 > depth {
			depth = len(path) + 1
		}
	})
	return depth
}

// validateLevel recursively checks one sibling list and all its sub-lists.
func validateLevel(items []Item, path []string) error {
	seen := make(map[string]struct{}, len(items))
	for k := range items {
		id := items[k].ID
		if id == "" {
			return fmt.Errorf("item %d under %q: %w", k, strings.Join(path, "/"), ErrEmptyID)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("item %q under %q: %w", id, strings.Join(path, "/"), ErrDuplicateID)
		}
		seen[id] = struct{}{}

		if items[k].IsBranch() {
			if err := validateLevel(items[k].Items, append(path, id)); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkLevel recursively visits a sibling list.
func walkLevel(items []Item, path []string, visit func(path []string, item *Item)) {
	for k := range items {
		visit(path, &items[k])
		if items[k].IsBranch() {
			walkLevel(items[k].Items, append(path[:len(path):len(path)], items[k].ID), visit)
		}
	}
}
