package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dayplan/pkg/glyph"
)

// Legend prints one table per glyph group.
func (pp *PrettyPrint) Legend(glyphs []glyph.Glyph) {
	bold := color.New(color.Bold)
	for _, g := range glyph.Groups() {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Symbol"), bold.Sprint("Meaning"))
		rows := 0
		for _, v := range glyphs {
			if v.Group == g {
				tbl.AddRow(v.Key, v.Symbol, v.Meaning)
				rows++
			}
		}
		if rows == 0 {
			continue
		}
		_, _ = fmt.Fprintln(pp.out(), color.New(color.Bold, color.Underline).Sprint(string(g)))
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}
