package menu

// Item represents an individual entry of a radial menu, which may contain sub-items.
// An Item with sub-items is a branch: activating it opens a nested menu.
// An Item without sub-items is a leaf: activating it fires the selection callback.
type Item struct {
	// ID is the unique identifier for the menu item within the scope of its parent.
	ID string `json:"id" yaml:"id"`

	// Title is the optional label rendered inside the sector.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Icon is an optional icon reference (e.g. "#walk") rendered inside the sector.
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Selected marks the item pre-selected when its menu level is shown.
	Selected bool `json:"selected,omitempty" yaml:"selected,omitempty"`

	// FontSize overrides the default title font size (e.g. "60%").
	FontSize string `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`

	// Items are the sub-items of this menu item.
	Items []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// IsBranch reports whether activating the item opens a nested menu.
func (i Item) IsBranch() bool {
	return i.Items != nil
}

// Copy returns a copy of the item that shares no slices with the receiver.
func (i Item) Copy() Item {
	c := i
	if i.Items != nil {
		c.Items = CopyItems(i.Items)
	}
	return c
}

// CopyItems deep-copies a list of items.
func CopyItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for k := range items {
		out[k] = items[k].Copy()
	}
	return out
}

// PreselectedIndex returns the index of the first item flagged as selected,
// 0 when none is flagged, or -1 for an empty list.
func PreselectedIndex(items []Item) int {
	if len(items) == 0 {
		return -1
	}
	for k := range items {
		if items[k].Selected {
			return k
		}
	}
	return 0
}
