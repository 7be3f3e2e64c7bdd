package tui

import (
	"bytes"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-shellwords"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeInput:
		return m.inputKey(msg)
	case modeConfirmDelete:
		return m.confirmDeleteKey(msg)
	case modeRollover:
		return m.rolloverKey(msg)
	case modeDetail, modeHelp:
		return m.paneKey(msg)
	}
	return m.normalKey(msg)
}

func (m *Model) normalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m.quit()
	case "j", "down":
		m.move(1)
	case "k", "up":
		m.move(-1)
	case "g", "home":
		m.move(-len(m.order))
	case "G", "end":
		m.move(len(m.order))
	case "h", "left":
		m.planner.PrevDay()
		m.refresh()
	case "l", "right":
		m.planner.NextDay()
		m.refresh()
	case "t":
		m.planner.Today()
		m.refresh()
	case "[":
		m.planner.PrevMonth()
		m.refresh()
	case "]":
		m.planner.NextMonth()
		m.refresh()
	case "o":
		return m, m.ask(promptDate, "", "YYYY-MM-DD, today, tomorrow or yesterday", "")
	case "f":
		return m, m.ask(promptFilter, "", "person, routine, one-off or all", "")
	case "a":
		return m, m.ask(promptAdd, "", `[HH:MM] [45m] [!high] ["@Name"] [+routine] title`, "")
	case "space", "x":
		m.toggle()
	case "enter":
		m.openDetail()
	case "m":
		if t, ok := m.current(); ok {
			return m, m.ask(promptMove, t.ID, "HH:MM", t.StartTime)
		}
	case "c":
		if t, ok := m.current(); ok {
			return m, m.ask(promptComment, t.ID, "comment", "")
		}
	case "n":
		if t, ok := m.current(); ok {
			return m, m.ask(promptNote, t.ID, "notes", t.Notes)
		}
	case "@":
		if t, ok := m.current(); ok {
			return m, m.ask(promptAttach, t.ID, "path to a file", "")
		}
	case "d":
		m.requestDelete()
	case "r":
		m.beginRollover()
	case "esc":
		for _, t := range m.toasts {
			m.planner.DismissToast(t.ID)
		}
		m.refresh()
	case "?":
		m.openHelp()
	}
	return m, nil
}

func (m *Model) ask(p prompt, target, placeholder, value string) tea.Cmd {
	m.mode = modeInput
	m.prompt = p
	m.target = target
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.input.Blur()
	m.mode = modeNormal
	m.target = ""
}

func (m *Model) inputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.submit()
	case "esc":
		m.closePrompt()
		m.status = "cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	p, id := m.prompt, m.target
	m.closePrompt()
	if value == "" && p != promptNote && p != promptFilter {
		m.status = "cancelled"
		return nil
	}

	var err error
	switch p {
	case promptAdd:
		var d task.Draft
		if d, err = parseDraft(value); err == nil {
			var t task.Task
			if t, err = m.planner.Add(m.ctx, d); err == nil {
				m.selected = t.ID
				m.status = fmt.Sprintf("added %q at %s", t.Title, t.StartTime)
			}
		}
	case promptMove:
		var t task.Task
		if t, err = m.planner.Reschedule(m.ctx, id, value); err == nil {
			m.status = fmt.Sprintf("moved %q to %s", t.Title, t.StartTime)
		}
	case promptComment:
		if _, err = m.planner.Comment(m.ctx, id, value); err == nil {
			m.status = "comment added"
		}
	case promptNote:
		if _, err = m.planner.SetNotes(m.ctx, id, value); err == nil {
			m.status = "notes saved"
		}
	case promptFilter:
		err = m.applyFilter(value)
	case promptDate:
		var date string
		if date, err = parseDate(value, m.planner); err == nil {
			err = m.planner.SelectDate(date)
		}
	case promptAttach:
		src := app.FileFromPath(value)
		errc := m.planner.AttachFile(m.ctx, id, src)
		m.status = "attaching " + src.Name
		return func() tea.Msg {
			return attachedMsg{id: id, name: src.Name, err: <-errc}
		}
	}
	if err != nil {
		m.status = "error: " + describe(err)
	}
	m.refresh()
	return nil
}

func (m *Model) applyFilter(value string) error {
	f := m.planner.Filter()
	switch strings.ToLower(value) {
	case "", "all", "clear":
		m.planner.SetFilter(schedule.AllPeople, schedule.AllKinds)
		m.status = "filter cleared"
		return nil
	}
	if k, err := schedule.ParseKind(value); err == nil {
		m.planner.SetFilter(f.Person, k)
		m.status = "showing " + string(k) + " tasks"
		return nil
	}
	m.planner.SetFilter(value, f.Kind)
	m.status = "showing tasks for " + value
	return nil
}

func (m *Model) toggle() {
	t, ok := m.current()
	if !ok {
		return
	}
	got, err := m.planner.Toggle(m.ctx, t.ID)
	if err != nil {
		m.status = "error: " + describe(err)
	} else if got.IsDone() {
		m.status = fmt.Sprintf("done: %s", got.Title)
	}
	m.refresh()
}

func (m *Model) requestDelete() {
	t, ok := m.current()
	if !ok {
		return
	}
	if _, err := m.planner.RequestDelete(t.ID); err != nil {
		m.status = "error: " + describe(err)
		return
	}
	m.target = t.ID
	m.mode = modeConfirmDelete
}

func (m *Model) confirmDeleteKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		t, ok, err := m.planner.ConfirmDelete(m.ctx)
		switch {
		case err != nil:
			m.status = "error: " + describe(err)
		case ok:
			m.status = fmt.Sprintf("deleted %q", t.Title)
		}
	case "n", "N", "esc":
		_ = m.planner.CancelDelete()
		m.status = "kept"
	default:
		return m, nil
	}
	m.mode = modeNormal
	m.target = ""
	m.refresh()
	return m, nil
}

func (m *Model) beginRollover() {
	plan, err := m.planner.BeginRollover(m.ctx)
	if err != nil {
		m.status = "error: " + describe(err)
		return
	}
	m.plan = plan
	m.mode = modeRollover
}

func (m *Model) rolloverKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		res, err := m.planner.CommitRollover(m.ctx)
		if err != nil {
			_ = m.planner.CancelRollover()
			m.status = "error: " + describe(err)
			break
		}
		_ = m.planner.FinishRollover()
		s := res.Plan.Summary()
		m.status = fmt.Sprintf("rolled over to %s: %s copied, %s cleared",
			res.Plan.To, plural(s.Cloned, "task"), plural(s.Purged, "task"))
	case "n", "N", "esc":
		_ = m.planner.CancelRollover()
		m.status = "rollover cancelled"
	default:
		return m, nil
	}
	m.mode = modeNormal
	m.refresh()
	return m, nil
}

func (m *Model) openDetail() {
	t, ok := m.current()
	if !ok {
		return
	}
	var buf bytes.Buffer
	pp := printers.PrettyPrint{ShowID: true, Width: max(m.width-8, 20), Out: &buf}
	pp.Task(t, m.planner.IsOverdue(t))
	m.pane.SetContent(buf.String())
	m.pane.SetYOffset(0)
	m.mode = modeDetail
}

func (m *Model) openHelp() {
	m.pane.SetContent(renderHelp(max(m.width-8, 20)))
	m.pane.SetYOffset(0)
	m.mode = modeHelp
}

func (m *Model) paneKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "?":
		m.mode = modeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

// parseDraft reads the quick-add line. Leading tokens set the start time
// (HH:MM), a duration with a unit (45m, 1h30m), a priority (!high), an
// assignee (@Name, quoted when it has spaces) and +routine. The rest is the
// title.
func parseDraft(line string) (task.Draft, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return task.Draft{}, err
	}
	d := task.Draft{}
	i := 0
	for ; i < len(words); i++ {
		w := words[i]
		if start, err := timeutil.NormalizeClock(w); err == nil && d.StartTime == "" {
			d.StartTime = start
			continue
		}
		if strings.IndexFunc(w, isLetter) > 0 && d.DurationMinutes == 0 {
			if n, err := timeutil.ParseMinutes(w); err == nil {
				d.DurationMinutes = n
				continue
			}
		}
		switch {
		case strings.HasPrefix(w, "!") && len(w) > 1:
			p, err := task.ParsePriority(w[1:])
			if err != nil {
				return task.Draft{}, err
			}
			d.Priority = p
			continue
		case strings.HasPrefix(w, "@") && len(w) > 1:
			d.Assignee = w[1:]
			continue
		case w == "+routine":
			d.Routine = true
			continue
		}
		break
	}
	d.Title = strings.Join(words[i:], " ")
	return d, nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func parseDate(raw string, p *app.Planner) (string, error) {
	today := timeutil.DateOf(p.Now())
	var n int
	switch strings.ToLower(raw) {
	case "today":
		return today, nil
	case "tomorrow":
		n = 1
	case "yesterday":
		n = -1
	default:
		if !timeutil.ValidDate(raw) {
			return "", fmt.Errorf("%q is not a YYYY-MM-DD date", raw)
		}
		return raw, nil
	}
	return timeutil.AddDays(today, n)
}

func describe(err error) string {
	switch {
	case app.IsNotFound(err):
		return "no such task"
	case app.IsTitleRequired(err):
		return "a title is required"
	}
	return err.Error()
}
