package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"gitlab.com/stark-bootcamp.net/internal/client/editor"
	"gitlab.com/stark-bootcamp.net/internal/client/feedback"
	"gitlab.com/stark-bootcamp.net/internal/client/judge"
	"gitlab.com/stark-bootcamp.net/internal/client/timer"
)

const shellHelp = `Commands:
  load [id]          fetch a problem (seeds the starter code)
  lang <name>        switch language (python, cpp, java, c, javascript)
  open <path>        replace the code with a file
  save <path>        write the code to a file
  append <line>...   add lines to the code
  clear              empty the code
  show               print the code with line numbers
  run                run against the first test case
  submit             grade every test case and submit
  time               show the remaining time
  leaderboard        show the standings
  quit               leave the editor`

type countdown interface {
	Remaining() int
	Expired() bool
}

// shell is the line-oriented editor session.
type shell struct {
	ctl         *editor.Controller
	clock       countdown
	out         io.Writer
	term        *feedback.Console
	afterSubmit func(ctx context.Context) error
	leaderboard func(ctx context.Context) error
}

var errQuit = errors.New("quit")

func (s *shell) run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	s.term.Plain(`Type "help" for commands.`)
	for {
		fmt.Fprintf(s.out, "%s> ", s.ctl.Buffer().Language)
		if !sc.Scan() {
			return sc.Err()
		}
		args, err := shlex.Split(sc.Text())
		if err != nil {
			s.term.Line(feedback.Error, "Error: "+err.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}
		if err := s.exec(ctx, args); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Debug("Shell command failed", "command", args[0], "error", err)
		}
	}
}

func (s *shell) exec(ctx context.Context, args []string) error {
	switch args[0] {
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "quit", "exit":
		return errQuit
	case "load":
		id := cfg.Contest.ProblemID
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				s.term.Line(feedback.Error, "Error: problem id must be a number")
				return err
			}
			id = n
		}
		_, err := s.ctl.LoadProblem(ctx, id)
		return err
	case "lang":
		if len(args) < 2 {
			s.term.Plain(s.ctl.Buffer().Language)
			return nil
		}
		if err := s.ctl.SetLanguage(args[1]); err != nil {
			s.term.Line(feedback.Error, "Error: "+err.Error())
			return err
		}
		s.term.Plain(s.ctl.Buffer().StatusLine())
	case "open":
		if len(args) < 2 {
			return s.usage("open <path>")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			s.term.Line(feedback.Error, "Error: "+err.Error())
			return err
		}
		s.ctl.SetCode(string(data))
		s.term.Plain(s.ctl.Buffer().StatusLine())
	case "save":
		if len(args) < 2 {
			return s.usage("save <path>")
		}
		if err := os.WriteFile(args[1], []byte(s.ctl.Buffer().Code), 0o644); err != nil {
			s.term.Line(feedback.Error, "Error: "+err.Error())
			return err
		}
	case "append":
		code := s.ctl.Buffer().Code
		for _, line := range args[1:] {
			if code != "" {
				code += "\n"
			}
			code += line
		}
		s.ctl.SetCode(code)
		s.term.Plain(s.ctl.Buffer().StatusLine())
	case "clear":
		s.ctl.SetCode("")
	case "show":
		fmt.Fprint(s.out, s.ctl.Buffer().Numbered())
		s.term.Plain(s.ctl.Buffer().StatusLine())
	case "run":
		_, err := s.ctl.Run(ctx)
		return err
	case "submit":
		if _, err := s.ctl.Submit(ctx); err != nil {
			return err
		}
		if s.afterSubmit != nil {
			return s.afterSubmit(ctx)
		}
	case "time":
		if s.clock == nil {
			return nil
		}
		remaining := s.clock.Remaining()
		s.term.Render(timer.Format(remaining), timer.SeverityFor(remaining, cfg.Timers.WarningAt, cfg.Timers.CriticalAt))
	case "leaderboard":
		if s.leaderboard != nil {
			return s.leaderboard(ctx)
		}
	case "languages":
		s.term.Plain(strings.Join(judge.Languages(), ", "))
	default:
		s.term.Line(feedback.Warning, fmt.Sprintf("Unknown command %q, type \"help\"", args[0]))
	}
	return nil
}

func (s *shell) usage(text string) error {
	s.term.Line(feedback.Warning, "Usage: "+text)
	return errors.New("usage: " + text)
}
