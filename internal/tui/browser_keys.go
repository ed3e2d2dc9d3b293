package tui

import "github.com/charmbracelet/bubbles/key"

// browserKeys are the bindings handled by the browser before the table.
type browserKeys struct {
	Quit     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Retry    key.Binding
}

func defaultBrowserKeys() browserKeys {
	return browserKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "previous page"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry failed load"),
		),
	}
}
