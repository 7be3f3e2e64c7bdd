package glyph

import (
	"testing"
)

func TestGroupsCoverDefaults(t *testing.T) {
	total := 0
	for _, g := range Groups() {
		in := In(g)
		if len(in) == 0 {
			t.Fatalf("group %s has no glyphs", g)
		}
		total += len(in)
	}
	if total != len(Defaults()) {
		t.Fatalf("groups hold %d glyphs, defaults has %d", total, len(Defaults()))
	}
}

func TestSymbolsAreDistinct(t *testing.T) {
	seen := map[string]string{}
	for _, v := range Defaults() {
		if prev, dup := seen[v.Symbol]; dup {
			t.Fatalf("%s reused by %s and %s", v.Symbol, prev, v.Key)
		}
		seen[v.Symbol] = v.Key
	}
}
