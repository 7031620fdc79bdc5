// Package tuimsg holds messages sent from scenes to the root model.
package tuimsg

// ClientSelectedMsg signals a client has been selected in the list
type ClientSelectedMsg struct {
	Name string
}

// WhatIfRequestedMsg asks the root model to compare a client against templates
type WhatIfRequestedMsg struct {
	Client    string
	Templates []string
}
