package component

import "github.com/milk9111/spriteline/line"

// StretchedLine attaches a live segment to the entity whose Transform it
// drives.
type StretchedLine struct {
	Name string
	Line *line.StretchedLine
}

var StretchedLineComponent = NewComponent[StretchedLine]()
