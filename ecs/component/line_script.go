package component

import "github.com/d5/tengo/v2"

// LineScript moves a line's endpoints from a tengo script each tick.
type LineScript struct {
	Path     string
	Compiled *tengo.Compiled
}

var LineScriptComponent = NewComponent[LineScript]()
