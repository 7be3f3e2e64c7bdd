// Package shell is a line-oriented interactive front end for the planner.
// Each line is one command; flags are parsed per command with pflag.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/glyph"
	"tableflip.dev/dayplan/pkg/notify"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/runner/schedule"
	sched "tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

var errQuit = errors.New("shell: quit")

// Shell reads commands from In until EOF or quit.
type Shell struct {
	Planner *app.Planner
	In      io.Reader
	Out     io.Writer
	// TickPeriod drives reminders in the background; 0 disables them.
	TickPeriod time.Duration
	// Confirm answers yes/no questions. Nil asks on the terminal.
	Confirm func(label string) (bool, error)
	ShowID  bool

	reader   *bufio.Reader
	out      *syncWriter
	commands map[string]*command

	seenMu sync.Mutex
	seen   map[string]struct{}

	inflight sync.WaitGroup
}

type command struct {
	name  string
	usage string
	short string
	run   func(ctx context.Context, args []string) error
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

func (s *Shell) init() {
	if s.In == nil {
		s.In = os.Stdin
	}
	if s.Out == nil {
		s.Out = color.Output
	}
	s.reader = bufio.NewReader(s.In)
	s.out = &syncWriter{w: s.Out}
	s.seen = make(map[string]struct{})
	s.commands = make(map[string]*command)

	s.register("help", "help", "List commands.", s.help, "?")
	s.register("day", "day [today|next|prev|<date>]", "Show or move the selected day.", s.day, "d")
	s.register("cal", "cal [next|prev]", "Show the month calendar.", s.cal)
	s.register("add", "add [-i] [--start HH:MM] [--duration D] [--assignee NAME] [--priority P] [--routine] [--notify N] <title>", "Add a task to the selected day.", s.add, "a")
	s.register("show", "show <id>", "Show task details.", s.show)
	s.register("done", "done <id>", "Mark a task done.", s.done)
	s.register("toggle", "toggle <id>", "Flip a task between todo and done.", s.toggle, "t")
	s.register("status", "status <id> <todo|in-progress|done>", "Set a task's status.", s.status)
	s.register("move", "move <id> <HH:MM>", "Reschedule within the same day.", s.move, "mv")
	s.register("edit", "edit <id> [--title T] [--assignee A] [--priority P] [--duration D] [--routine=BOOL] [--notify N]", "Edit task fields.", s.edit)
	s.register("note", "note <id> <text>", "Replace the task notes.", s.note)
	s.register("comment", "comment <id> <text>", "Comment on a task.", s.comment, "c")
	s.register("rm", "rm <id>", "Delete a task after confirmation.", s.remove, "delete")
	s.register("attach", "attach <id> <path>", "Attach a file in the background.", s.attach)
	s.register("detach", "detach <id> <attachment-id>", "Remove an attachment.", s.detach)
	s.register("save", "save <id> <attachment-id> [path]", "Write an attachment to disk.", s.save)
	s.register("filter", "filter [--person NAME] [--kind all|routine|one-off] | filter clear", "Narrow the timeline.", s.filter, "f")
	s.register("people", "people", "List names to filter on.", s.people)
	s.register("key", "key", "Explain the marks in the timeline.", s.legend)
	s.register("user", "user [name]", "Show or change the acting user.", s.user)
	s.register("rollover", "rollover", "Copy routine tasks to tomorrow and clear completed ones.", s.rollover)
	s.register("toasts", "toasts", "List visible reminders.", s.toasts)
	s.register("dismiss", "dismiss <toast-id>", "Hide a reminder.", s.dismiss)
	s.register("quit", "quit", "Leave the shell.", func(context.Context, []string) error { return errQuit }, "exit", "q")
}

func (s *Shell) register(name, usage, short string, run func(context.Context, []string) error, aliases ...string) {
	c := &command{name: name, usage: usage, short: short, run: run}
	s.commands[name] = c
	for _, a := range aliases {
		s.commands[a] = c
	}
}

func (s *Shell) Do(ctx context.Context) error {
	if s.Planner == nil {
		return errors.New("shell: planner is required")
	}
	s.init()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.TickPeriod > 0 {
		go func() {
			_ = notify.Run(ctx, s.Planner.Clock, s.TickPeriod, func(ctx context.Context, now time.Time) {
				s.Planner.Tick(ctx, now)
				s.flushToasts(now)
			})
		}()
	}

	s.printf("dayplan shell, %s. Type help for commands.\n\n", s.Planner.User())
	if err := s.showDay(ctx); err != nil {
		return err
	}

	for {
		s.flushToasts(s.Planner.Now())
		s.printf("%s> ", s.Planner.SelectedDate())
		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			s.printf("\n")
			break
		}
		if err != nil {
			return err
		}
		if err := s.exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			s.printf("%s\n", color.New(color.FgRed).Sprintf("error: %v", describe(err)))
		}
	}
	s.inflight.Wait()
	return nil
}

func (s *Shell) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) exec(ctx context.Context, line string) error {
	fields, err := shellwords.Parse(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	c, ok := s.commands[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
	return c.run(ctx, fields[1:])
}

func describe(err error) error {
	switch {
	case app.IsNotFound(err):
		return errors.New("no such task")
	case app.IsTitleRequired(err):
		return errors.New("a title is required, nothing was added")
	}
	return err
}

func (s *Shell) pp() *printers.PrettyPrint {
	return &printers.PrettyPrint{ShowID: s.ShowID, Out: s.out}
}

func (s *Shell) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(s.out)
	return fs
}

func (s *Shell) flushToasts(now time.Time) {
	var fresh []notify.Toast
	s.seenMu.Lock()
	for _, t := range s.Planner.Toasts(now) {
		if _, ok := s.seen[t.ID]; ok {
			continue
		}
		s.seen[t.ID] = struct{}{}
		fresh = append(fresh, t)
	}
	s.seenMu.Unlock()
	if len(fresh) > 0 {
		s.pp().Toasts(fresh)
	}
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func (s *Shell) help(context.Context, []string) error {
	seen := map[*command]bool{}
	var cmds []*command
	for _, c := range s.commands {
		if !seen[c] {
			seen[c] = true
			cmds = append(cmds, c)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].name < cmds[j].name })

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	for _, c := range cmds {
		tbl.AddRow(bold.Sprint(c.name), c.short, c.usage)
	}
	s.printf("%s\n", tbl)
	return nil
}

func (s *Shell) showDay(ctx context.Context) error {
	r := schedule.Schedule{Planner: s.Planner, ShowID: true, Out: s.out}
	return r.Do(ctx)
}

func (s *Shell) day(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "today":
			s.Planner.Today()
		case "next", "+":
			s.Planner.NextDay()
		case "prev", "-":
			s.Planner.PrevDay()
		default:
			if err := s.Planner.SelectDate(args[0]); err != nil {
				return err
			}
		}
	}
	return s.showDay(ctx)
}

func (s *Shell) cal(_ context.Context, args []string) error {
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "next", "+":
			s.Planner.NextMonth()
		case "prev", "-":
			s.Planner.PrevMonth()
		default:
			return errors.New("usage: cal [next|prev]")
		}
	}
	s.pp().Calendar(s.Planner.Calendar())
	return nil
}

func (s *Shell) add(ctx context.Context, args []string) error {
	var (
		interactive bool
		d           task.Draft
		priority    string
		duration    string
	)
	fs := s.flags("add")
	fs.BoolVarP(&interactive, "interactive", "i", false, "Fill in the form field by field.")
	fs.StringVar(&d.StartTime, "start", "", "Start time, HH:MM.")
	fs.StringVar(&duration, "duration", "", "Duration, e.g. 45, 90m or 1h30m.")
	fs.StringVar(&d.Assignee, "assignee", "", "Person responsible.")
	fs.StringVar(&priority, "priority", "", "low, medium or high.")
	fs.BoolVar(&d.Routine, "routine", false, "Copy to the next day on rollover.")
	fs.IntVar(&d.NotifyMinutesBefore, "notify", 0, "Remind this many minutes before the start.")
	fs.StringVar(&d.Notes, "notes", "", "Notes.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d.Title = strings.Join(fs.Args(), " ")

	p, err := task.ParsePriority(priority)
	if err != nil {
		return err
	}
	d.Priority = p
	if duration != "" {
		if d.DurationMinutes, err = timeutil.ParseMinutes(duration); err != nil {
			return err
		}
	}
	if interactive {
		if err := s.promptDraft(&d); err != nil {
			return err
		}
	}

	t, err := s.Planner.Add(ctx, d)
	if err != nil {
		return err
	}
	s.printf("added %s %s at %s\n", t.ID, t.Title, t.StartTime)
	return nil
}

func (s *Shell) show(_ context.Context, args []string) error {
	if err := need(args, 1, "show <id>"); err != nil {
		return err
	}
	t, err := s.Planner.Get(args[0])
	if err != nil {
		return err
	}
	s.pp().Task(t, s.Planner.IsOverdue(t))
	return nil
}

func (s *Shell) done(ctx context.Context, args []string) error {
	if err := need(args, 1, "done <id>"); err != nil {
		return err
	}
	return s.report(s.Planner.SetStatus(ctx, args[0], task.Done))
}

func (s *Shell) toggle(ctx context.Context, args []string) error {
	if err := need(args, 1, "toggle <id>"); err != nil {
		return err
	}
	return s.report(s.Planner.Toggle(ctx, args[0]))
}

func (s *Shell) status(ctx context.Context, args []string) error {
	if err := need(args, 2, "status <id> <todo|in-progress|done>"); err != nil {
		return err
	}
	st, err := task.ParseStatus(args[1])
	if err != nil {
		return err
	}
	return s.report(s.Planner.SetStatus(ctx, args[0], st))
}

func (s *Shell) move(ctx context.Context, args []string) error {
	if err := need(args, 2, "move <id> <HH:MM>"); err != nil {
		return err
	}
	return s.report(s.Planner.Reschedule(ctx, args[0], args[1]))
}

func (s *Shell) report(t task.Task, err error) error {
	if err != nil {
		return err
	}
	state := string(t.Status)
	if t.IsDone() {
		state += " by " + t.CompletedBy
	}
	s.printf("%s %s at %s: %s\n", t.ID, t.Title, t.StartTime, state)
	return nil
}

func (s *Shell) edit(ctx context.Context, args []string) error {
	var (
		title, assignee, priority, duration string
		notifyBefore                        int
		routine                             bool
	)
	fs := s.flags("edit")
	fs.StringVar(&title, "title", "", "New title.")
	fs.StringVar(&assignee, "assignee", "", "New assignee.")
	fs.StringVar(&priority, "priority", "", "low, medium or high.")
	fs.StringVar(&duration, "duration", "", "New duration, e.g. 45, 90m or 1h30m.")
	fs.BoolVar(&routine, "routine", false, "Whether the task repeats daily.")
	fs.IntVar(&notifyBefore, "notify", 0, "Reminder lead time in minutes.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := need(fs.Args(), 1, s.commands["edit"].usage); err != nil {
		return err
	}

	var patch task.Patch
	if fs.Changed("title") {
		patch.Title = &title
	}
	if fs.Changed("assignee") {
		patch.Assignee = &assignee
	}
	if fs.Changed("priority") {
		p, err := task.ParsePriority(priority)
		if err != nil {
			return err
		}
		patch.Priority = &p
	}
	if fs.Changed("duration") {
		minutes, err := timeutil.ParseMinutes(duration)
		if err != nil {
			return err
		}
		patch.DurationMinutes = &minutes
	}
	if fs.Changed("routine") {
		patch.Routine = &routine
	}
	if fs.Changed("notify") {
		patch.NotifyMinutesBefore = &notifyBefore
	}
	if patch.Empty() {
		return errors.New("nothing to change")
	}
	return s.report(s.Planner.Update(ctx, fs.Arg(0), patch))
}

func (s *Shell) note(ctx context.Context, args []string) error {
	if err := need(args, 1, "note <id> <text>"); err != nil {
		return err
	}
	_, err := s.Planner.SetNotes(ctx, args[0], strings.Join(args[1:], " "))
	return err
}

func (s *Shell) comment(ctx context.Context, args []string) error {
	if err := need(args, 2, "comment <id> <text>"); err != nil {
		return err
	}
	t, err := s.Planner.Comment(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	s.printf("%s has %d comment(s)\n", t.ID, len(t.Comments))
	return nil
}

func (s *Shell) remove(ctx context.Context, args []string) error {
	if err := need(args, 1, "rm <id>"); err != nil {
		return err
	}
	t, err := s.Planner.RequestDelete(args[0])
	if err != nil {
		return err
	}
	ok, err := s.confirm(fmt.Sprintf("Delete %q", t.Title))
	if err != nil || !ok {
		_ = s.Planner.CancelDelete()
		if err == nil {
			s.printf("kept %s\n", t.Title)
		}
		return err
	}
	removed, ok, err := s.Planner.ConfirmDelete(ctx)
	if err != nil {
		return err
	}
	if !ok {
		s.printf("%s was already gone\n", t.Title)
		return nil
	}
	s.printf("deleted %s\n", removed.Title)
	return nil
}

func (s *Shell) attach(ctx context.Context, args []string) error {
	if err := need(args, 2, "attach <id> <path>"); err != nil {
		return err
	}
	id := args[0]
	if _, err := s.Planner.Get(id); err != nil {
		return err
	}
	src := app.FileFromPath(strings.Join(args[1:], " "))
	errc := s.Planner.AttachFile(ctx, id, src)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := <-errc; err != nil {
			s.printf("%s\n", color.New(color.FgRed).Sprintf("attach %s failed: %v", src.Name, err))
			return
		}
		s.printf("attached %s to %s\n", src.Name, id)
	}()
	return nil
}

func (s *Shell) detach(ctx context.Context, args []string) error {
	if err := need(args, 2, "detach <id> <attachment-id>"); err != nil {
		return err
	}
	t, err := s.Planner.RemoveAttachment(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	s.printf("%s has %d attachment(s)\n", t.ID, len(t.Attachments))
	return nil
}

func (s *Shell) save(_ context.Context, args []string) error {
	if err := need(args, 2, "save <id> <attachment-id> [path]"); err != nil {
		return err
	}
	a, data, err := s.Planner.AttachmentContent(args[0], args[1])
	if err != nil {
		return err
	}
	path := a.Name
	if len(args) > 2 {
		path = strings.Join(args[2:], " ")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	s.printf("wrote %d bytes to %s\n", len(data), path)
	return nil
}

func (s *Shell) filter(ctx context.Context, args []string) error {
	if len(args) == 1 && strings.EqualFold(args[0], "clear") {
		s.Planner.SetFilter(sched.AllPeople, sched.AllKinds)
		return s.showDay(ctx)
	}
	current := s.Planner.Filter()
	person := current.Person
	kind := string(current.Kind)
	fs := s.flags("filter")
	fs.StringVarP(&person, "person", "p", person, "Assignee or creator to show.")
	fs.StringVarP(&kind, "kind", "t", kind, "all, routine or one-off.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// "filter Hanako Sato" is shorthand for --person.
	if rest := fs.Args(); len(rest) > 0 {
		person = strings.Join(rest, " ")
	}
	k, err := sched.ParseKind(kind)
	if err != nil {
		return err
	}
	s.Planner.SetFilter(person, k)
	return s.showDay(ctx)
}

func (s *Shell) people(context.Context, []string) error {
	s.pp().List(s.Planner.People())
	return nil
}

func (s *Shell) legend(context.Context, []string) error {
	s.pp().Legend(glyph.Defaults())
	return nil
}

func (s *Shell) user(_ context.Context, args []string) error {
	if len(args) > 0 {
		s.Planner.SetUser(strings.Join(args, " "))
	}
	s.printf("acting as %s\n", s.Planner.User())
	return nil
}

func (s *Shell) rollover(ctx context.Context, _ []string) error {
	plan, err := s.Planner.BeginRollover(ctx)
	if err != nil {
		return err
	}
	s.pp().Rollover(plan)

	ok, err := s.confirm(fmt.Sprintf("Roll %s over to %s", plan.From, plan.To))
	if err != nil || !ok {
		_ = s.Planner.CancelRollover()
		if err == nil {
			s.printf("rollover cancelled\n")
		}
		return err
	}
	res, err := s.Planner.CommitRollover(ctx)
	if err != nil {
		_ = s.Planner.CancelRollover()
		return err
	}
	sum := res.Plan.Summary()
	s.printf("rolled over to %s: %d copied, %d cleared\n", sum.To, sum.Cloned, len(res.Removed))
	if err := s.Planner.FinishRollover(); err != nil {
		return err
	}
	return s.showDay(ctx)
}

func (s *Shell) toasts(context.Context, []string) error {
	active := s.Planner.Toasts(s.Planner.Now())
	if len(active) == 0 {
		s.printf("no reminders\n")
		return nil
	}
	pp := s.pp()
	pp.ShowID = true
	pp.Toasts(active)
	return nil
}

func (s *Shell) dismiss(_ context.Context, args []string) error {
	if err := need(args, 1, "dismiss <toast-id>"); err != nil {
		return err
	}
	if !s.Planner.DismissToast(args[0]) {
		return fmt.Errorf("no reminder %q", args[0])
	}
	return nil
}
