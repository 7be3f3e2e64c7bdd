// Package glyph names the marks the planner prints next to tasks.
package glyph

// Group sorts glyphs into legend sections.
type Group string

const (
	Priority Group = "Priority"
	Kind     Group = "Kind"
	State    Group = "State"
)

// Glyph is one printed mark and what it means.
type Glyph struct {
	Key     string `json:"key" yaml:"key"`
	Symbol  string `json:"symbol" yaml:"symbol"`
	Meaning string `json:"meaning" yaml:"meaning"`
	Group   Group  `json:"group" yaml:"group"`
}

const (
	High     = "▲"
	Medium   = "·"
	Low      = "▽"
	Routine  = "↻"
	OneOff   = "•"
	Done     = "✓"
	Overdue  = "!"
	Reminder = "🔔"
)

// Groups lists legend sections in print order.
func Groups() []Group {
	return []Group{Priority, Kind, State}
}

// Defaults returns every glyph in legend order.
func Defaults() []Glyph {
	return []Glyph{
		{Key: "high", Symbol: High, Meaning: "high priority", Group: Priority},
		{Key: "medium", Symbol: Medium, Meaning: "medium priority", Group: Priority},
		{Key: "low", Symbol: Low, Meaning: "low priority", Group: Priority},
		{Key: "routine", Symbol: Routine, Meaning: "routine, copied to the next day on rollover", Group: Kind},
		{Key: "one-off", Symbol: OneOff, Meaning: "one-off, cleared on rollover once done", Group: Kind},
		{Key: "done", Symbol: Done, Meaning: "completed", Group: State},
		{Key: "overdue", Symbol: Overdue, Meaning: "end time has passed and the task is not done", Group: State},
		{Key: "reminder", Symbol: Reminder, Meaning: "reminder fired", Group: State},
	}
}

// In returns the glyphs of one group.
func In(g Group) []Glyph {
	var out []Glyph
	for _, v := range Defaults() {
		if v.Group == g {
			out = append(out, v)
		}
	}
	return out
}
