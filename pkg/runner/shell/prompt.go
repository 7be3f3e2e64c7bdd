package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	sched "tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch strings.TrimSpace(str) {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// terminal reports whether the shell is attached to a tty, which promptui
// needs for its raw-mode widgets.
func (s *Shell) terminal() bool {
	f, ok := s.In.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *Shell) confirm(label string) (bool, error) {
	if s.Confirm != nil {
		return s.Confirm(label)
	}
	if !s.terminal() {
		s.printf("%s [y/N] ", label)
		line, err := s.readLine()
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(line) == "" {
			return false, nil
		}
		return ParseBool(line)
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(s.reader),
		Stdout:    nopCloser{s.out},
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	}
	return false, err
}

// promptDraft walks through the creation form field by field.
func (s *Shell) promptDraft(d *task.Draft) error {
	if !s.terminal() {
		return errors.New("shell: interactive add needs a terminal")
	}
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}

	title := promptui.Prompt{
		Label:     "Title",
		Default:   d.Title,
		Templates: templates,
		Stdin:     io.NopCloser(s.reader),
		Stdout:    nopCloser{s.out},
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("empty")
			}
			return nil
		},
	}
	v, err := title.Run()
	if err != nil {
		return err
	}
	d.Title = v

	options := sched.TimeOptions()
	startAt := 0
	for i, o := range options {
		if o == task.DefaultStart {
			startAt = i
		}
	}
	start := promptui.Select{
		Label:    "Start",
		Items:    options,
		Size:     12,
		HideHelp: true,
		Stdin:    io.NopCloser(s.reader),
		Stdout:   nopCloser{s.out},
		Searcher: func(input string, index int) bool {
			return strings.HasPrefix(options[index], strings.TrimSpace(input))
		},
	}
	_, d.StartTime, err = start.RunCursorAt(startAt, startAt)
	if err != nil {
		return err
	}

	durations := []string{}
	for _, m := range []int{15, 30, 45, 60, 90, 120} {
		durations = append(durations, timeutil.FormatMinutes(m))
	}
	duration := promptui.Select{
		Label:    "Duration",
		Items:    durations,
		HideHelp: true,
		Stdin:    io.NopCloser(s.reader),
		Stdout:   nopCloser{s.out},
	}
	_, raw, err := duration.Run()
	if err != nil {
		return err
	}
	if d.DurationMinutes, err = timeutil.ParseMinutes(raw); err != nil {
		return err
	}

	priority := promptui.Select{
		Label:    "Priority",
		Items:    []task.Priority{task.Low, task.Medium, task.High},
		HideHelp: true,
		Stdin:    io.NopCloser(s.reader),
		Stdout:   nopCloser{s.out},
	}
	i, _, err := priority.RunCursorAt(1, 0)
	if err != nil {
		return err
	}
	d.Priority = []task.Priority{task.Low, task.Medium, task.High}[i]

	routine, err := s.confirm("Repeat daily")
	if err != nil {
		return err
	}
	d.Routine = routine
	return nil
}

func (s *Shell) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
