package layout

import "github.com/mattn/go-runewidth"

// CellMeasurer measures text as fixed-width cells: each display column is
// Advance times the font size wide. Wide (East Asian) runes take two columns.
type CellMeasurer struct {
	Advance float64
}

// Width implements Measurer.
func (c CellMeasurer) Width(font Font, text string) float64 {
	return float64(runewidth.StringWidth(text)) * font.Size * c.Advance
}

// Courier is the advance of the Courier core font.
var Courier = CellMeasurer{Advance: 0.6}
