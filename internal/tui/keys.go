package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the console
type KeyMap struct {
	// Load generation
	Low    key.Binding
	Medium key.Binding
	High   key.Binding
	Stop   key.Binding

	// Manual calls
	CreateUser  key.Binding
	GetProduct  key.Binding
	CreateOrder key.Binding
	ToggleArch  key.Binding

	// Navigation
	Focus  key.Binding
	Blur   key.Binding
	Submit key.Binding
	Quit   key.Binding
	Force  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Low: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "low load"),
		),
		Medium: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "medium load"),
		),
		High: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "high load"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop load"),
		),
		CreateUser: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "create user"),
		),
		GetProduct: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "get product"),
		),
		CreateOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "create order"),
		),
		ToggleArch: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "switch architecture"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run field action"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
