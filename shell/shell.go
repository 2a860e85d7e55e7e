package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Shell reads menu choices and operands line by line and prints results.
type Shell struct {
	lib         Library
	sc          *bufio.Scanner
	out         io.Writer
	printer     Printer
	interactive bool
}

// New returns a shell reading from in. Menus and prompts are only printed
// when interactive is true.
func New(lib Library, in io.Reader, out io.Writer, printer Printer, interactive bool) *Shell {
	return &Shell{
		lib:         lib,
		sc:          bufio.NewScanner(in),
		out:         out,
		printer:     printer,
		interactive: interactive,
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// field is one prompted operand.
type field struct {
	prompt string
	set    func(a *Args, v string) error
}

func text(prompt string, dst func(a *Args) *string) field {
	return field{prompt: prompt, set: func(a *Args, v string) error {
		*dst(a) = v
		return nil
	}}
}

func number(prompt string, dst func(a *Args) *int) field {
	return field{prompt: prompt, set: func(a *Args, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid number %q for %s", v, strings.TrimSuffix(prompt, ": "))
		}
		*dst(a) = n
		return nil
	}}
}

var (
	bookID   = text("Enter Book ID: ", func(a *Args) *string { return &a.BookID })
	memberID = text("Enter Member ID: ", func(a *Args) *string { return &a.MemberID })
)

var commandFields = map[Command][]field{
	AddBook: {
		bookID,
		text("Enter Title: ", func(a *Args) *string { return &a.Title }),
		text("Enter Author: ", func(a *Args) *string { return &a.Author }),
		text("Enter ISBN: ", func(a *Args) *string { return &a.ISBN }),
		number("Enter Publication Year: ", func(a *Args) *int { return &a.Year }),
		number("Enter Total Copies: ", func(a *Args) *int { return &a.Copies }),
	},
	AddMember: {
		memberID,
		text("Enter Name: ", func(a *Args) *string { return &a.Name }),
		text("Enter Email: ", func(a *Args) *string { return &a.Email }),
		text("Enter Phone: ", func(a *Args) *string { return &a.Phone }),
	},
	IssueBook:   {memberID, bookID},
	ReturnBook:  {memberID, bookID},
	SearchBooks: {text("Search by title/author/ISBN: ", func(a *Args) *string { return &a.Query })},
	ViewMember:  {memberID},
	LoanHistory: {memberID},
}

// Run loops until Exit is chosen, the input ends, or ctx is cancelled.
// Errors from individual commands are printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.menu()
		line, ok := s.readLine()
		if !ok {
			return s.sc.Err()
		}
		if line == "" {
			continue
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid choice!")
			continue
		}

		args, ok, err := s.readArgs(cmd)
		if !ok {
			return s.sc.Err()
		}
		if err != nil {
			s.printer.Error(s.out, cmd, err)
			continue
		}

		res, err := Dispatch(ctx, s.lib, cmd, args)
		if err != nil {
			s.printer.Error(s.out, cmd, err)
			continue
		}
		s.printer.Result(s.out, res)
		if cmd == Exit {
			return nil
		}
	}
}

func (s *Shell) menu() {
	if !s.interactive {
		return
	}
	fmt.Fprintln(s.out, "\n=== LIBRARY MANAGEMENT SYSTEM ===")
	for _, c := range menuOrder {
		fmt.Fprintf(s.out, "%d. %s\n", int(c), c)
	}
	fmt.Fprint(s.out, "Enter your choice: ")
}

// readArgs prompts for every operand of cmd. ok is false when input ended.
// A malformed number is reported after all prompts have been answered so the
// remaining lines are not misread as menu choices.
func (s *Shell) readArgs(cmd Command) (Args, bool, error) {
	var (
		a        Args
		firstErr error
	)
	for _, f := range commandFields[cmd] {
		if s.interactive {
			fmt.Fprint(s.out, f.prompt)
		}
		v, ok := s.readLine()
		if !ok {
			return a, false, nil
		}
		if err := f.set(&a, v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return a, true, firstErr
}

func (s *Shell) readLine() (string, bool) {
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}
