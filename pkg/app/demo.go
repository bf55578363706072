package app

import (
	_ "embed"

	"github.com/mchmarny/radial-menu/pkg/menu"
)

//go:embed demo.yaml
var demoMenu []byte

// DemoMenu returns the built-in demo menu, served when no item file is given.
func DemoMenu() *menu.Menu {
	m, err := menu.Parse(demoMenu)
	if err != nil {
		panic("embedded demo menu is invalid: " + err.Error())
	}
	return m
}
