// Package key prints the legend for the marks used in day views.
package key

import (
	"context"
	"io"

	"tableflip.dev/dayplan/pkg/glyph"
	"tableflip.dev/dayplan/pkg/printers"
)

// Key prints the glyph legend, optionally limited to one group.
type Key struct {
	Group  glyph.Group
	Format printers.Format
	Out    io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	glyphs := glyph.Defaults()
	if k.Group != "" {
		glyphs = glyph.In(k.Group)
	}
	if k.Format.Structured() {
		return printers.Encode(k.Out, k.Format, glyphs)
	}
	pp := printers.PrettyPrint{Out: k.Out}
	pp.Legend(glyphs)
	return nil
}
