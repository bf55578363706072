package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalid is returned when a resolved option value cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// LayoutConfig is the resolved, immutable configuration of one menu instance.
type LayoutConfig struct {
	Size                int
	MinSectors          int
	Radius              float64
	InnerRadius         float64
	SectorSpace         float64
	CloseOnClick        bool
	CloseOnClickOutside bool
	FontSize            string
	TransitionFallback  time.Duration
	Nested              Nested
	Icons               Icons
	Classes             ClassNames
	Keys                KeyBindings
}

// Nested controls the center button of nested menus.
type Nested struct {
	// Title shows the parent item's title in the center.
	Title bool `mapstructure:"title"`

	// UseParentIcon shows the parent item's icon instead of the back icon.
	UseParentIcon bool `mapstructure:"useParentIcon"`
}

// Icons binds the center button icons.
type Icons struct {
	Close     string  `mapstructure:"close"`
	CloseSize float64 `mapstructure:"closeSize"`
	Back      string  `mapstructure:"back"`
	BackSize  float64 `mapstructure:"backSize"`
}

// ClassNames is the class-name table, one entry per semantic role.
type ClassNames struct {
	Container string `mapstructure:"container"`
	Menu      string `mapstructure:"menu"`
	Inner     string `mapstructure:"inner"`
	Outer     string `mapstructure:"outer"`
	Open      string `mapstructure:"open"`
	Closed    string `mapstructure:"closed"`
	Sector    string `mapstructure:"sector"`
	Selected  string `mapstructure:"selected"`
	Nested    string `mapstructure:"nested"`
	Disabled  string `mapstructure:"disabled"`
	Center    string `mapstructure:"center"`
	Icons     string `mapstructure:"icons"`
}

// KeyBindings lists the key names bound to each navigation action.
// Key names compare case-insensitively.
type KeyBindings struct {
	Back     []string `mapstructure:"back"`
	Select   []string `mapstructure:"select"`
	Forward  []string `mapstructure:"forward"`
	Backward []string `mapstructure:"backward"`
}

// options mirrors the record layout; absent radii are derived from the multipliers.
type options struct {
	Size                int           `mapstructure:"size"`
	MinSectors          int           `mapstructure:"minSectors"`
	Radius              float64       `mapstructure:"radius"`
	InnerRadius         *float64      `mapstructure:"innerRadius"`
	MultiInnerRadius    float64       `mapstructure:"multiInnerRadius"`
	SectorSpace         *float64      `mapstructure:"sectorSpace"`
	MultiSectorSpace    float64       `mapstructure:"multiSectorSpace"`
	CloseOnClick        bool          `mapstructure:"closeOnClick"`
	CloseOnClickOutside bool          `mapstructure:"closeOnClickOutside"`
	FontSize            string        `mapstructure:"fontSize"`
	TransitionFallback  time.Duration `mapstructure:"transitionFallback"`
	Nested              Nested        `mapstructure:"nested"`
	Icons               Icons         `mapstructure:"icons"`
	Classes             ClassNames    `mapstructure:"classes"`
	Keys                KeyBindings   `mapstructure:"keys"`
}

// Default returns the configuration resolved from the defaults alone.
func Default() LayoutConfig {
	cfg, err := Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("default configuration does not resolve: %v", err))
	}
	return cfg
}

// Resolve merges the user records over the defaults and decodes the result.
// Unknown keys are ignored.
func Resolve(user ...Values) (LayoutConfig, error) {
	merged := Merge(Defaults(), user...)

	var opt options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opt,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return LayoutConfig{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(merged)); err != nil {
		return LayoutConfig{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg := LayoutConfig{
		Size:                opt.Size,
		MinSectors:          opt.MinSectors,
		Radius:              opt.Radius,
		InnerRadius:         opt.Radius * opt.MultiInnerRadius,
		SectorSpace:         opt.Radius * opt.MultiSectorSpace,
		CloseOnClick:        opt.CloseOnClick,
		CloseOnClickOutside: opt.CloseOnClickOutside,
		FontSize:            opt.FontSize,
		TransitionFallback:  opt.TransitionFallback,
		Nested:              opt.Nested,
		Icons:               opt.Icons,
		Classes:             opt.Classes,
		Keys:                opt.Keys,
	}
	if opt.InnerRadius != nil {
		cfg.InnerRadius = *opt.InnerRadius
	}
	if opt.SectorSpace != nil {
		cfg.SectorSpace = *opt.SectorSpace
	}

	if err := cfg.Validate(); err != nil {
		return LayoutConfig{}, err
	}

	return cfg, nil
}

// Validate checks the values the layout math cannot work with.
// A minSectors below 4 is accepted; it only produces very wide sectors.
func (c LayoutConfig) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalid, c.Size)
	case c.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalid, c.Radius)
	case c.InnerRadius < 0 || c.InnerRadius >= c.Radius:
		return fmt.Errorf("%w: inner radius must be in [0, %g), got %g", ErrInvalid, c.Radius, c.InnerRadius)
	case c.SectorSpace < 0:
		return fmt.Errorf("%w: sector space must not be negative, got %g", ErrInvalid, c.SectorSpace)
	case c.MinSectors < 0:
		return fmt.Errorf("%w: minSectors must not be negative, got %d", ErrInvalid, c.MinSectors)
	case c.TransitionFallback <= 0:
		return fmt.Errorf("%w: transition fallback must be positive, got %s", ErrInvalid, c.TransitionFallback)
	}
	return nil
}
